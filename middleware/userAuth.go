package middleware

import (
	"net/http"
	"strings"

	"buskpod/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middlewares.
const (
	ContextUserID      = "userID"
	ContextAccountType = "accountType"
	ContextAdminID     = "adminID"
	ContextAdminRole   = "adminRole"
)

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// JWTAuthUserMiddleware authenticates platform users. The token must be valid
// and its hash must match the cached session for the subject, so logout and
// re-login revoke older tokens.
func JWTAuthUserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed authorization header"})
			return
		}

		claims, err := utils.ExtractClaims(tokenString)
		if err != nil || claims.AccountType == "admin" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		cached := utils.GetCachedAuthToken(claims.Subject)
		if cached == "" || cached != utils.HashToken(tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired or revoked"})
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextAccountType, claims.AccountType)
		c.Next()
	}
}
