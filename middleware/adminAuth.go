package middleware

import (
	"net/http"

	adminRepo "buskpod/database/repository/admin"
	"buskpod/models"
	"buskpod/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthAdminMiddleware authenticates back-office accounts and stores the
// admin id and role in the request context.
func JWTAuthAdminMiddleware(repo adminRepo.AdminRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed authorization header"})
			return
		}

		claims, err := utils.ExtractClaims(tokenString)
		if err != nil || claims.AccountType != "admin" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		cached := utils.GetCachedAuthToken(claims.Subject)
		if cached == "" || cached != utils.HashToken(tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired or revoked"})
			return
		}

		admin, err := repo.GetByID(claims.Subject)
		if err != nil || admin == nil || !admin.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin account not found or disabled"})
			return
		}

		c.Set(ContextAdminID, admin.ID)
		c.Set(ContextAdminRole, string(admin.Role))
		c.Set("admin", admin)
		c.Next()
	}
}

// RequirePermission gates a route on an admin permission string such as
// "bookings.verify". Must run after JWTAuthAdminMiddleware.
func RequirePermission(perm string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, ok := c.Get("admin")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		admin, ok := value.(*models.AdminUser)
		if !ok || !admin.HasPermission(perm) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}
		c.Next()
	}
}
