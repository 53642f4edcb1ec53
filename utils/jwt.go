package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"buskpod/config"

	"github.com/golang-jwt/jwt"
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "buskpod-dev-secret"
	}
	return []byte(secret)
}

// GenerateAccessToken creates a signed JWT with the given subject, email,
// account type ("user", "busker" or "admin") and optional admin role.
func GenerateAccessToken(subject, email, accountType, role string) (string, error) {
	duration := time.Duration(config.AppConfig.AccessTokenExpireMinutes) * time.Minute
	claims := jwt.MapClaims{
		"sub":       subject,
		"email":     email,
		"user_type": accountType,
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(duration).Unix(),
	}
	if role != "" {
		claims["role"] = role
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// GenerateRefreshToken creates a long-lived refresh token for the subject.
func GenerateRefreshToken(subject string) (string, error) {
	duration := time.Duration(config.AppConfig.RefreshTokenExpireDays) * 24 * time.Hour
	claims := jwt.MapClaims{
		"sub":  subject,
		"type": "refresh",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// TokenClaims holds the subset of claims the middleware cares about.
type TokenClaims struct {
	Subject     string
	Email       string
	AccountType string
	Role        string
}

// ExtractClaims validates a token string and returns its claims.
func ExtractClaims(tokenString string) (*TokenClaims, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	tc := &TokenClaims{Subject: sub}
	if email, ok := claims["email"].(string); ok {
		tc.Email = email
	}
	if ut, ok := claims["user_type"].(string); ok {
		tc.AccountType = ut
	}
	if role, ok := claims["role"].(string); ok {
		tc.Role = role
	}
	return tc, nil
}
