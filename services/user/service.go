package user

import (
	"errors"
	"fmt"
	"time"

	"buskpod/config"
	userRepo "buskpod/database/repository/user"
	"buskpod/models"
	"buskpod/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// DefaultUserService is the production implementation of UserService.
type DefaultUserService struct {
	Repo userRepo.UserRepository
	now  func() time.Time

	// revokeSession drops the cached access-token hash for a subject.
	revokeSession func(subjectID string) error
}

func NewDefaultUserService(repo userRepo.UserRepository) *DefaultUserService {
	return &DefaultUserService{
		Repo:          repo,
		now:           time.Now,
		revokeSession: utils.RevokeCachedAuthToken,
	}
}

// Register creates an account and returns it logged in.
func (s *DefaultUserService) Register(req RegisterRequest) (*models.User, *AuthTokens, error) {
	if req.UserType == "" {
		req.UserType = models.AccountTypeUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("error hashing password: %w", err)
	}

	now := s.now()
	u := &models.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		IsActive:     true,
		UserType:     req.UserType,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Insert(u); err != nil {
		if errors.Is(err, userRepo.ErrDuplicateEmail) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, fmt.Errorf("error creating user: %w", err)
	}

	tokens, err := s.issueTokens(u)
	if err != nil {
		return nil, nil, err
	}
	return u, tokens, nil
}

// Login checks credentials and issues a token pair.
func (s *DefaultUserService) Login(email, password string) (*models.User, *AuthTokens, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, nil, fmt.Errorf("error fetching user: %w", err)
	}
	if u == nil {
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, nil, ErrAccountDisabled
	}

	now := s.now()
	u.LastLogin = &now
	if err := s.Repo.Update(u); err != nil {
		utils.GetLogger().Warn("failed to record last login", zap.String("userId", u.ID), zap.Error(err))
	}

	tokens, err := s.issueTokens(u)
	if err != nil {
		return nil, nil, err
	}
	return u, tokens, nil
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (s *DefaultUserService) Refresh(refreshToken string) (*AuthTokens, error) {
	claims, err := utils.ExtractClaims(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	u, err := s.Repo.GetByID(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	if u == nil || !u.IsActive {
		return nil, ErrInvalidToken
	}
	return s.issueTokens(u)
}

// Logout revokes the cached session so the access token no longer authenticates.
func (s *DefaultUserService) Logout(accessToken string) error {
	claims, err := utils.ExtractClaims(accessToken)
	if err != nil {
		return ErrInvalidToken
	}
	return s.revokeSession(claims.Subject)
}

func (s *DefaultUserService) GetByID(id string) (*models.User, error) {
	u, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// UpdateProfile applies the non-nil fields to the user's profile.
func (s *DefaultUserService) UpdateProfile(id string, fullName, phone, profileImageURL *string) (*models.User, error) {
	u, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if fullName != nil {
		u.FullName = *fullName
	}
	if phone != nil {
		u.Phone = *phone
	}
	if profileImageURL != nil {
		u.ProfileImageURL = *profileImageURL
	}
	u.UpdatedAt = s.now()
	if err := s.Repo.Update(u); err != nil {
		return nil, fmt.Errorf("error updating profile: %w", err)
	}
	return u, nil
}

// ChangePassword verifies the current password before setting a new one.
func (s *DefaultUserService) ChangePassword(id, currentPassword, newPassword string) error {
	u, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = s.now()
	if err := s.Repo.Update(u); err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	return nil
}

// ResetPassword sets a new password for the account with the given email and
// revokes its cached session. There is no OTP step; the reset is direct.
func (s *DefaultUserService) ResetPassword(email, newPassword string) error {
	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		return fmt.Errorf("error fetching user: %w", err)
	}
	if u == nil {
		return ErrUserNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = s.now()
	if err := s.Repo.Update(u); err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if err := s.revokeSession(u.ID); err != nil {
		utils.GetLogger().Warn("failed to revoke session after password reset", zap.String("userId", u.ID), zap.Error(err))
	}
	return nil
}

// Deactivate disables the account. Bookings and history are retained.
func (s *DefaultUserService) Deactivate(id string) error {
	u, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.Repo.SetActive(u.ID, false); err != nil {
		return fmt.Errorf("error deactivating user: %w", err)
	}
	return nil
}

// issueTokens builds the JWT pair and caches the access-token hash. The auth
// middleware rejects tokens whose cached hash is missing or different, so a
// logout or re-login invalidates earlier tokens immediately.
func (s *DefaultUserService) issueTokens(u *models.User) (*AuthTokens, error) {
	access, err := utils.GenerateAccessToken(u.ID, u.Email, string(u.UserType), "")
	if err != nil {
		return nil, fmt.Errorf("error generating access token: %w", err)
	}
	refresh, err := utils.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, fmt.Errorf("error generating refresh token: %w", err)
	}

	ttl := time.Duration(config.AppConfig.AccessTokenExpireMinutes) * time.Minute
	if err := utils.CacheAuthToken(u.ID, utils.HashToken(access), ttl); err != nil {
		return nil, fmt.Errorf("error caching auth token: %w", err)
	}

	return &AuthTokens{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, nil
}
