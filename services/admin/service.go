package admin

import (
	"errors"
	"fmt"
	"time"

	"buskpod/config"
	adminRepo "buskpod/database/repository/admin"
	bookingRepo "buskpod/database/repository/booking"
	buskerRepo "buskpod/database/repository/busker"
	eventRepo "buskpod/database/repository/event"
	userRepo "buskpod/database/repository/user"
	"buskpod/models"
	"buskpod/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrSelfDelete         = errors.New("admins cannot delete their own account")
	ErrUserNotFound       = errors.New("user not found")
	ErrBuskerNotFound     = errors.New("busker not found")
	ErrInvalidStatus      = errors.New("verification status must be approved or rejected")
)

// DashboardStats is the admin overview payload.
type DashboardStats struct {
	TotalUsers       int64   `json:"total_users"`
	ActiveUsers      int64   `json:"active_users"`
	TotalBuskers     int64   `json:"total_buskers"`
	ActiveBuskers    int64   `json:"active_buskers"`
	TotalBookings    int64   `json:"total_bookings"`
	TotalEvents      int64   `json:"total_events"`
	ConfirmedRevenue float64 `json:"confirmed_revenue"`
}

// CreateAdminRequest carries input for a new back-office account.
type CreateAdminRequest struct {
	Email       string
	Password    string
	FullName    string
	Role        models.AdminRole
	Permissions []string
}

// AdminService covers back-office authentication and oversight.
type AdminService interface {
	Login(email, password string) (*models.AdminUser, string, error)
	GetByID(id string) (*models.AdminUser, error)
	Dashboard() (*DashboardStats, error)
	ListUsers(search, userType string, isActive *bool, page, perPage int) (*models.Page, error)
	SetUserActive(userID string, active bool) (*models.User, error)
	VerifyBusker(buskerID, adminID, status, notes string) (*models.Busker, error)
	CreateAdmin(req CreateAdminRequest, createdBy string) (*models.AdminUser, error)
	ListAdmins() ([]models.AdminUser, error)
	DeleteAdmin(id, requesterID string) error
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Admins   adminRepo.AdminRepository
	Users    userRepo.UserRepository
	Buskers  buskerRepo.BuskerRepository
	Bookings bookingRepo.BookingRepository
	Events   eventRepo.EventRepository
	now      func() time.Time
}

func NewDefaultAdminService(admins adminRepo.AdminRepository, users userRepo.UserRepository, buskers buskerRepo.BuskerRepository, bookings bookingRepo.BookingRepository, events eventRepo.EventRepository) *DefaultAdminService {
	return &DefaultAdminService{
		Admins:   admins,
		Users:    users,
		Buskers:  buskers,
		Bookings: bookings,
		Events:   events,
		now:      time.Now,
	}
}

// Login authenticates an admin and returns a role-bearing access token.
func (s *DefaultAdminService) Login(email, password string) (*models.AdminUser, string, error) {
	a, err := s.Admins.GetByEmail(email)
	if err != nil {
		return nil, "", fmt.Errorf("error fetching admin: %w", err)
	}
	if a == nil || !a.IsActive {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	now := s.now()
	a.LastLogin = &now
	if err := s.Admins.Update(a); err != nil {
		return nil, "", fmt.Errorf("error recording admin login: %w", err)
	}

	token, err := utils.GenerateAccessToken(a.ID, a.Email, "admin", string(a.Role))
	if err != nil {
		return nil, "", fmt.Errorf("error generating admin token: %w", err)
	}
	ttl := time.Duration(config.AppConfig.AccessTokenExpireMinutes) * time.Minute
	if err := utils.CacheAuthToken(a.ID, utils.HashToken(token), ttl); err != nil {
		return nil, "", fmt.Errorf("error caching admin token: %w", err)
	}
	return a, token, nil
}

func (s *DefaultAdminService) GetByID(id string) (*models.AdminUser, error) {
	a, err := s.Admins.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("error fetching admin: %w", err)
	}
	if a == nil {
		return nil, ErrAdminNotFound
	}
	return a, nil
}

// Dashboard aggregates platform-wide counters for the admin overview.
func (s *DefaultAdminService) Dashboard() (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalUsers, err = s.Users.CountAll(); err != nil {
		return nil, fmt.Errorf("error counting users: %w", err)
	}
	if stats.ActiveUsers, err = s.Users.CountActiveSince(s.now().AddDate(0, -1, 0)); err != nil {
		return nil, fmt.Errorf("error counting active users: %w", err)
	}
	if stats.TotalBuskers, err = s.Buskers.CountAll(); err != nil {
		return nil, fmt.Errorf("error counting buskers: %w", err)
	}
	if stats.ActiveBuskers, err = s.Buskers.CountActive(); err != nil {
		return nil, fmt.Errorf("error counting active buskers: %w", err)
	}
	if stats.TotalBookings, err = s.Bookings.CountAll(); err != nil {
		return nil, fmt.Errorf("error counting bookings: %w", err)
	}
	if stats.TotalEvents, err = s.Events.CountAll(); err != nil {
		return nil, fmt.Errorf("error counting events: %w", err)
	}
	if stats.ConfirmedRevenue, err = s.Bookings.SumConfirmedRevenue(); err != nil {
		return nil, fmt.Errorf("error summing revenue: %w", err)
	}
	return stats, nil
}

func (s *DefaultAdminService) ListUsers(search, userType string, isActive *bool, page, perPage int) (*models.Page, error) {
	users, total, err := s.Users.List(search, userType, isActive, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return models.NewPage(users, total, page, perPage), nil
}

// SetUserActive suspends or reactivates a platform account.
func (s *DefaultAdminService) SetUserActive(userID string, active bool) (*models.User, error) {
	u, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if err := s.Users.SetActive(userID, active); err != nil {
		return nil, fmt.Errorf("error updating user: %w", err)
	}
	u.IsActive = active
	return u, nil
}

// VerifyBusker applies an approval decision to a busker profile.
func (s *DefaultAdminService) VerifyBusker(buskerID, adminID, status, notes string) (*models.Busker, error) {
	b, err := s.Buskers.GetByID(buskerID)
	if err != nil {
		return nil, fmt.Errorf("error fetching busker: %w", err)
	}
	if b == nil {
		return nil, ErrBuskerNotFound
	}

	switch models.VerificationStatus(status) {
	case models.VerificationApproved, models.VerificationRejected:
		b.VerificationStatus = models.VerificationStatus(status)
	default:
		return nil, ErrInvalidStatus
	}

	now := s.now()
	b.VerifiedAt = &now
	b.VerifiedBy = adminID
	b.VerificationNotes = notes
	b.UpdatedAt = now
	if err := s.Buskers.Update(b); err != nil {
		return nil, fmt.Errorf("error updating busker: %w", err)
	}
	return b, nil
}

// CreateAdmin registers a back-office account with an explicit permission set.
func (s *DefaultAdminService) CreateAdmin(req CreateAdminRequest, createdBy string) (*models.AdminUser, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	now := s.now()
	a := &models.AdminUser{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         req.Role,
		Permissions:  req.Permissions,
		IsActive:     true,
		CreatedBy:    createdBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Admins.Insert(a); err != nil {
		if errors.Is(err, adminRepo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("error creating admin: %w", err)
	}
	return a, nil
}

func (s *DefaultAdminService) ListAdmins() ([]models.AdminUser, error) {
	admins, err := s.Admins.ListAll()
	if err != nil {
		return nil, fmt.Errorf("error listing admins: %w", err)
	}
	return admins, nil
}

// DeleteAdmin removes a back-office account. Self-deletion is refused.
func (s *DefaultAdminService) DeleteAdmin(id, requesterID string) error {
	if id == requesterID {
		return ErrSelfDelete
	}
	a, err := s.Admins.GetByID(id)
	if err != nil {
		return fmt.Errorf("error fetching admin: %w", err)
	}
	if a == nil {
		return ErrAdminNotFound
	}
	if err := s.Admins.Delete(id); err != nil {
		return fmt.Errorf("error deleting admin: %w", err)
	}
	return nil
}
