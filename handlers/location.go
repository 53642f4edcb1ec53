package handlers

import (
	"errors"
	"net/http"

	"buskpod/services/location"
	"buskpod/utils"

	"github.com/gin-gonic/gin"
)

// LocationHandler serves the busking location directory.
type LocationHandler struct {
	Locations location.LocationService
}

func (h *LocationHandler) States(c *gin.Context) {
	states, err := h.Locations.States()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list states", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"states": states})
}

func (h *LocationHandler) Cities(c *gin.Context) {
	cities, err := h.Locations.Cities(c.Query("state"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list cities", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"cities": cities})
}

func (h *LocationHandler) ByCity(c *gin.Context) {
	page, perPage := parsePagination(c)
	result, err := h.Locations.ListByCity(c.Query("city"), page, perPage)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list locations", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *LocationHandler) Grouped(c *gin.Context) {
	grouped, err := h.Locations.Grouped()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to group locations", err.Error())
		return
	}
	c.JSON(http.StatusOK, grouped)
}

func (h *LocationHandler) Get(c *gin.Context) {
	loc, err := h.Locations.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, location.ErrLocationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch location", err.Error())
		return
	}
	c.JSON(http.StatusOK, loc)
}
