package handlers

import (
	"errors"
	"net/http"
	"strconv"

	podRepo "buskpod/database/repository/pod"
	"buskpod/services/pod"
	"buskpod/utils"

	"github.com/gin-gonic/gin"
)

// PodHandler serves the public pod catalogue and admin pod management.
type PodHandler struct {
	Pods pod.PodService
}

func (h *PodHandler) List(c *gin.Context) {
	filters := podRepo.ListFilters{
		City: c.Query("city"),
		Mall: c.Query("mall"),
	}
	if v := c.Query("min_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filters.MinPrice = f
		}
	}
	if v := c.Query("max_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filters.MaxPrice = f
		}
	}

	page, perPage := parsePagination(c)
	result, err := h.Pods.List(filters, page, perPage)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list pods", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *PodHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "query parameter 'q' is required")
		return
	}
	page, perPage := parsePagination(c)
	result, err := h.Pods.Search(query, page, perPage)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to search pods", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *PodHandler) Get(c *gin.Context) {
	p, err := h.Pods.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, pod.ErrPodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch pod", err.Error())
		return
	}
	c.JSON(http.StatusOK, p)
}

// Availability returns free and booked slots for a pod on a date.
func (h *PodHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "query parameter 'date' is required (YYYY-MM-DD)")
		return
	}
	avail, err := h.Pods.Availability(c.Param("id"), date)
	if err != nil {
		if errors.Is(err, pod.ErrPodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute availability", err.Error())
		return
	}
	c.JSON(http.StatusOK, avail)
}

type podInput struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Mall         string   `json:"mall"`
	City         string   `json:"city"`
	Address      string   `json:"address"`
	Images       []string `json:"images"`
	Amenities    []string `json:"amenities"`
	PricePerHour float64  `json:"price_per_hour"`
	Capacity     int      `json:"capacity"`
}

func (in podInput) toRequest() pod.CreatePodRequest {
	return pod.CreatePodRequest{
		Name:         in.Name,
		Description:  in.Description,
		Mall:         in.Mall,
		City:         in.City,
		Address:      in.Address,
		Images:       in.Images,
		Amenities:    in.Amenities,
		PricePerHour: in.PricePerHour,
		Capacity:     in.Capacity,
	}
}

func (h *PodHandler) Create(c *gin.Context) {
	var input podInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if input.Name == "" || input.Mall == "" || input.City == "" || input.PricePerHour <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "name, mall, city and a positive price_per_hour are required")
		return
	}
	p, err := h.Pods.Create(input.toRequest())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create pod", err.Error())
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *PodHandler) Update(c *gin.Context) {
	var input podInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	p, err := h.Pods.Update(c.Param("id"), input.toRequest())
	if err != nil {
		if errors.Is(err, pod.ErrPodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to update pod", err.Error())
		return
	}
	c.JSON(http.StatusOK, p)
}

// Delete soft-deletes the pod; its booking history remains intact.
func (h *PodHandler) Delete(c *gin.Context) {
	if err := h.Pods.Deactivate(c.Param("id")); err != nil {
		if errors.Is(err, pod.ErrPodNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete pod", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pod deactivated"})
}
