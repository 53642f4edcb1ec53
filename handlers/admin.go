package handlers

import (
	"errors"
	"net/http"

	"buskpod/models"
	"buskpod/services/admin"
	"buskpod/services/busker"
	"buskpod/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves back-office endpoints.
type AdminHandler struct {
	Admins  admin.AdminService
	Buskers busker.BuskerService
}

// Login authenticates a back-office account.
func (h *AdminHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	a, token, err := h.Admins.Login(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, admin.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "login failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": a, "access_token": token, "token_type": "bearer"})
}

// Dashboard returns platform-wide counters.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.Admins.Dashboard()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load dashboard", err.Error())
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, perPage := parsePagination(c)
	var isActive *bool
	if v := c.Query("is_active"); v != "" {
		b := v == "true"
		isActive = &b
	}
	result, err := h.Admins.ListUsers(c.Query("q"), c.Query("user_type"), isActive, page, perPage)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list users", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

// SetUserActive suspends or reactivates an account.
func (h *AdminHandler) SetUserActive(c *gin.Context) {
	var input struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	u, err := h.Admins.SetUserActive(c.Param("id"), *input.IsActive)
	if err != nil {
		if errors.Is(err, admin.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to update user", err.Error())
		return
	}
	c.JSON(http.StatusOK, u)
}

// PendingBuskers lists busker profiles awaiting verification, oldest first.
func (h *AdminHandler) PendingBuskers(c *gin.Context) {
	buskers, err := h.Buskers.ListPendingVerification()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list pending buskers", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"buskers": buskers})
}

// VerifyBusker approves or rejects a busker profile.
func (h *AdminHandler) VerifyBusker(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Admins.VerifyBusker(c.Param("id"), currentAdminID(c), input.Status, input.Notes)
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrBuskerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, admin.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to verify busker", err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, b)
}

// CreateAdmin registers a back-office account.
func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	var input struct {
		Email       string   `json:"email" binding:"required,email"`
		Password    string   `json:"password" binding:"required,min=8"`
		FullName    string   `json:"full_name" binding:"required"`
		Role        string   `json:"role" binding:"required"`
		Permissions []string `json:"permissions"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	switch models.AdminRole(input.Role) {
	case models.AdminRoleSuperAdmin, models.AdminRoleAdmin, models.AdminRoleModerator:
	default:
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "role must be super_admin, admin or moderator")
		return
	}

	a, err := h.Admins.CreateAdmin(admin.CreateAdminRequest{
		Email:       input.Email,
		Password:    input.Password,
		FullName:    input.FullName,
		Role:        models.AdminRole(input.Role),
		Permissions: input.Permissions,
	}, currentAdminID(c))
	if err != nil {
		if errors.Is(err, admin.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to create admin", err.Error())
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *AdminHandler) ListAdmins(c *gin.Context) {
	admins, err := h.Admins.ListAdmins()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list admins", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"admins": admins})
}

// DeleteAdmin removes a back-office account; self-deletion is refused.
func (h *AdminHandler) DeleteAdmin(c *gin.Context) {
	if err := h.Admins.DeleteAdmin(c.Param("id"), currentAdminID(c)); err != nil {
		switch {
		case errors.Is(err, admin.ErrSelfDelete):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, admin.ErrAdminNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to delete admin", err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "admin deleted"})
}
