package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"buskpod/middleware"
	"buskpod/services/booking"
	"buskpod/utils"

	"github.com/gin-gonic/gin"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// parsePagination reads page/per_page query params, defaulting to 20 and
// capping per_page at 100.
func parsePagination(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

func currentUserID(c *gin.Context) string {
	return c.GetString(middleware.ContextUserID)
}

func currentAdminID(c *gin.Context) string {
	return c.GetString(middleware.ContextAdminID)
}

// respondBookingError maps the booking error taxonomy onto HTTP statuses.
func respondBookingError(c *gin.Context, err error) {
	var be *booking.Error
	if errors.As(err, &be) {
		status := http.StatusInternalServerError
		switch be.Code {
		case booking.CodeNotFound:
			status = http.StatusNotFound
		case booking.CodeConflict:
			status = http.StatusConflict
		case booking.CodeInvalidInput:
			status = http.StatusBadRequest
		case booking.CodeForbidden:
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"error": be.Message})
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "internal server error", err.Error())
}
