package handlers

import (
	"errors"
	"net/http"

	"buskpod/services/user"
	"buskpod/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler serves profile endpoints for the authenticated user.
type UserHandler struct {
	Users user.UserService
}

func (h *UserHandler) Profile(c *gin.Context) {
	u, err := h.Users.GetByID(currentUserID(c))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load profile", err.Error())
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var input struct {
		FullName        *string `json:"full_name"`
		Phone           *string `json:"phone"`
		ProfileImageURL *string `json:"profile_image_url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	u, err := h.Users.UpdateProfile(currentUserID(c), input.FullName, input.Phone, input.ProfileImageURL)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update profile", err.Error())
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var input struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Users.ChangePassword(currentUserID(c), input.CurrentPassword, input.NewPassword); err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "current password is incorrect"})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to change password", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

// Deactivate disables the caller's account and ends the session.
func (h *UserHandler) Deactivate(c *gin.Context) {
	if err := h.Users.Deactivate(currentUserID(c)); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to deactivate account", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deactivated"})
}
