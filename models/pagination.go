package models

// Page is a paginated result window.
type Page struct {
	Items   interface{} `json:"items"`
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	PerPage int         `json:"per_page"`
	Pages   int         `json:"pages"`
}

// NewPage wraps a result slice with its pagination metadata.
func NewPage(items interface{}, total int64, page, perPage int) *Page {
	pages := 0
	if perPage > 0 {
		pages = int((total + int64(perPage) - 1) / int64(perPage))
	}
	return &Page{Items: items, Total: total, Page: page, PerPage: perPage, Pages: pages}
}
