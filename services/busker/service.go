package busker

import (
	"errors"
	"fmt"
	"time"

	buskerRepo "buskpod/database/repository/busker"
	"buskpod/models"

	"github.com/google/uuid"
)

var (
	ErrProfileExists   = errors.New("busker profile already exists for this user")
	ErrProfileNotFound = errors.New("busker profile not found")
)

// RegisterRequest carries the performer profile fields.
type RegisterRequest struct {
	UserID          string
	StageName       string
	Bio             string
	Genres          []string
	ExperienceYears int
	CitiesPerformed []string
}

// UpdateRequest carries optional profile updates; nil fields are untouched.
type UpdateRequest struct {
	StageName       *string
	Bio             *string
	Genres          []string
	ExperienceYears *int
	CitiesPerformed []string
	IsAvailable     *bool
}

// BuskerService manages performer profiles.
type BuskerService interface {
	Register(req RegisterRequest) (*models.Busker, error)
	GetByUserID(userID string) (*models.Busker, error)
	Update(userID string, req UpdateRequest) (*models.Busker, error)
	AttachIDProof(userID, proofURL string, proofType models.IDProofType) (*models.Busker, error)
	List(verificationStatus string, isAvailable *bool, page, perPage int) (*models.Page, error)
	ListPendingVerification() ([]models.Busker, error)
}

// DefaultBuskerService is the production implementation.
type DefaultBuskerService struct {
	Repo buskerRepo.BuskerRepository
	now  func() time.Time
}

func NewDefaultBuskerService(repo buskerRepo.BuskerRepository) *DefaultBuskerService {
	return &DefaultBuskerService{Repo: repo, now: time.Now}
}

// Register creates a performer profile in the pending verification state.
func (s *DefaultBuskerService) Register(req RegisterRequest) (*models.Busker, error) {
	existing, err := s.Repo.GetByUserID(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("error checking busker profile: %w", err)
	}
	if existing != nil {
		return nil, ErrProfileExists
	}

	now := s.now()
	b := &models.Busker{
		ID:                 uuid.New().String(),
		UserID:             req.UserID,
		StageName:          req.StageName,
		Bio:                req.Bio,
		Genres:             req.Genres,
		ExperienceYears:    req.ExperienceYears,
		CitiesPerformed:    req.CitiesPerformed,
		VerificationStatus: models.VerificationPending,
		IsAvailable:        true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.Repo.Insert(b); err != nil {
		return nil, fmt.Errorf("error creating busker profile: %w", err)
	}
	return b, nil
}

func (s *DefaultBuskerService) GetByUserID(userID string) (*models.Busker, error) {
	b, err := s.Repo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching busker profile: %w", err)
	}
	if b == nil {
		return nil, ErrProfileNotFound
	}
	return b, nil
}

// Update applies the non-nil fields to the caller's profile.
func (s *DefaultBuskerService) Update(userID string, req UpdateRequest) (*models.Busker, error) {
	b, err := s.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if req.StageName != nil {
		b.StageName = *req.StageName
	}
	if req.Bio != nil {
		b.Bio = *req.Bio
	}
	if req.Genres != nil {
		b.Genres = req.Genres
	}
	if req.ExperienceYears != nil {
		b.ExperienceYears = *req.ExperienceYears
	}
	if req.CitiesPerformed != nil {
		b.CitiesPerformed = req.CitiesPerformed
	}
	if req.IsAvailable != nil {
		b.IsAvailable = *req.IsAvailable
	}
	b.UpdatedAt = s.now()
	if err := s.Repo.Update(b); err != nil {
		return nil, fmt.Errorf("error updating busker profile: %w", err)
	}
	return b, nil
}

// AttachIDProof records an uploaded identity document and resets the profile
// to pending review.
func (s *DefaultBuskerService) AttachIDProof(userID, proofURL string, proofType models.IDProofType) (*models.Busker, error) {
	b, err := s.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	b.IDProofURL = proofURL
	b.IDProofType = proofType
	b.VerificationStatus = models.VerificationPending
	b.UpdatedAt = s.now()
	if err := s.Repo.Update(b); err != nil {
		return nil, fmt.Errorf("error saving id proof: %w", err)
	}
	return b, nil
}

func (s *DefaultBuskerService) List(verificationStatus string, isAvailable *bool, page, perPage int) (*models.Page, error) {
	buskers, total, err := s.Repo.List(verificationStatus, isAvailable, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("error listing buskers: %w", err)
	}
	return models.NewPage(buskers, total, page, perPage), nil
}

// ListPendingVerification returns profiles awaiting review, oldest first.
func (s *DefaultBuskerService) ListPendingVerification() ([]models.Busker, error) {
	buskers, err := s.Repo.ListPending()
	if err != nil {
		return nil, fmt.Errorf("error listing pending buskers: %w", err)
	}
	return buskers, nil
}
