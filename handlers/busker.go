package handlers

import (
	"errors"
	"net/http"

	"buskpod/models"
	"buskpod/services/busker"
	"buskpod/utils"

	"github.com/gin-gonic/gin"
)

// BuskerHandler serves performer profile endpoints.
type BuskerHandler struct {
	Buskers busker.BuskerService
	Uploads *UploadHandler
}

func (h *BuskerHandler) Register(c *gin.Context) {
	var input struct {
		StageName       string   `json:"stage_name" binding:"required"`
		Bio             string   `json:"bio"`
		Genres          []string `json:"genres"`
		ExperienceYears int      `json:"experience_years"`
		CitiesPerformed []string `json:"cities_performed"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Buskers.Register(busker.RegisterRequest{
		UserID:          currentUserID(c),
		StageName:       input.StageName,
		Bio:             input.Bio,
		Genres:          input.Genres,
		ExperienceYears: input.ExperienceYears,
		CitiesPerformed: input.CitiesPerformed,
	})
	if err != nil {
		if errors.Is(err, busker.ErrProfileExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to create busker profile", err.Error())
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *BuskerHandler) Me(c *gin.Context) {
	b, err := h.Buskers.GetByUserID(currentUserID(c))
	if err != nil {
		if errors.Is(err, busker.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load busker profile", err.Error())
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BuskerHandler) Update(c *gin.Context) {
	var input struct {
		StageName       *string  `json:"stage_name"`
		Bio             *string  `json:"bio"`
		Genres          []string `json:"genres"`
		ExperienceYears *int     `json:"experience_years"`
		CitiesPerformed []string `json:"cities_performed"`
		IsAvailable     *bool    `json:"is_available"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Buskers.Update(currentUserID(c), busker.UpdateRequest{
		StageName:       input.StageName,
		Bio:             input.Bio,
		Genres:          input.Genres,
		ExperienceYears: input.ExperienceYears,
		CitiesPerformed: input.CitiesPerformed,
		IsAvailable:     input.IsAvailable,
	})
	if err != nil {
		if errors.Is(err, busker.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to update busker profile", err.Error())
		return
	}
	c.JSON(http.StatusOK, b)
}

// UploadIDProof stores an identity document and queues the profile for review.
func (h *BuskerHandler) UploadIDProof(c *gin.Context) {
	proofType := models.IDProofType(c.PostForm("proof_type"))
	switch proofType {
	case models.IDProofIC, models.IDProofPassport, models.IDProofDrivingLicense:
	default:
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "proof_type must be ic, passport or driving_license")
		return
	}

	url, err := h.Uploads.storeFormFile(c, "file", "busker-id-proofs")
	if err != nil {
		respondUploadError(c, err)
		return
	}

	b, err := h.Buskers.AttachIDProof(currentUserID(c), url, proofType)
	if err != nil {
		if errors.Is(err, busker.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to save id proof", err.Error())
		return
	}
	c.JSON(http.StatusOK, b)
}
