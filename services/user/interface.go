package user

import "buskpod/models"

// RegisterRequest carries the input for a new account.
type RegisterRequest struct {
	Email    string
	Password string
	FullName string
	Phone    string
	UserType models.AccountType
}

// AuthTokens is the login/refresh response payload.
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// UserService manages accounts and authentication.
type UserService interface {
	Register(req RegisterRequest) (*models.User, *AuthTokens, error)
	Login(email, password string) (*models.User, *AuthTokens, error)
	Refresh(refreshToken string) (*AuthTokens, error)
	Logout(accessToken string) error
	GetByID(id string) (*models.User, error)
	UpdateProfile(id string, fullName, phone, profileImageURL *string) (*models.User, error)
	ChangePassword(id, currentPassword, newPassword string) error
	ResetPassword(email, newPassword string) error
	Deactivate(id string) error
}
