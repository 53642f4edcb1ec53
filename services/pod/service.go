package pod

import (
	"errors"
	"fmt"
	"time"

	podRepo "buskpod/database/repository/pod"
	"buskpod/models"
	"buskpod/services/scheduling"

	"github.com/google/uuid"
)

// ErrPodNotFound is returned when a pod id does not resolve to an active pod.
var ErrPodNotFound = errors.New("pod not found")

// CreatePodRequest carries admin input for a new pod.
type CreatePodRequest struct {
	Name         string
	Description  string
	Mall         string
	City         string
	Address      string
	Images       []string
	Amenities    []string
	PricePerHour float64
	Capacity     int
}

// PodService covers the public catalogue and admin pod management.
type PodService interface {
	List(filters podRepo.ListFilters, page, perPage int) (*models.Page, error)
	Search(query string, page, perPage int) (*models.Page, error)
	GetByID(id string) (*models.Pod, error)
	Availability(podID, date string) (*models.PodAvailability, error)
	Create(req CreatePodRequest) (*models.Pod, error)
	Update(id string, req CreatePodRequest) (*models.Pod, error)
	Deactivate(id string) error
}

// DefaultPodService is the production implementation.
type DefaultPodService struct {
	Repo      podRepo.PodRepository
	Scheduler *scheduling.Service
	now       func() time.Time
}

func NewDefaultPodService(repo podRepo.PodRepository, scheduler *scheduling.Service) *DefaultPodService {
	return &DefaultPodService{Repo: repo, Scheduler: scheduler, now: time.Now}
}

func (s *DefaultPodService) List(filters podRepo.ListFilters, page, perPage int) (*models.Page, error) {
	pods, total, err := s.Repo.List(filters, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("error listing pods: %w", err)
	}
	return models.NewPage(pods, total, page, perPage), nil
}

func (s *DefaultPodService) Search(query string, page, perPage int) (*models.Page, error) {
	pods, total, err := s.Repo.Search(query, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("error searching pods: %w", err)
	}
	return models.NewPage(pods, total, page, perPage), nil
}

func (s *DefaultPodService) GetByID(id string) (*models.Pod, error) {
	p, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("error fetching pod: %w", err)
	}
	if p == nil || !p.IsActive {
		return nil, ErrPodNotFound
	}
	return p, nil
}

// Availability returns the free and booked slots for a pod on a date.
func (s *DefaultPodService) Availability(podID, date string) (*models.PodAvailability, error) {
	avail, err := s.Scheduler.Availability(podID, date)
	if err != nil {
		if errors.Is(err, scheduling.ErrPodNotFound) {
			return nil, ErrPodNotFound
		}
		return nil, err
	}
	return avail, nil
}

func (s *DefaultPodService) Create(req CreatePodRequest) (*models.Pod, error) {
	now := s.now()
	p := &models.Pod{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Description:  req.Description,
		Mall:         req.Mall,
		City:         req.City,
		Address:      req.Address,
		Images:       req.Images,
		Amenities:    req.Amenities,
		PricePerHour: req.PricePerHour,
		Capacity:     req.Capacity,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Insert(p); err != nil {
		return nil, fmt.Errorf("error creating pod: %w", err)
	}
	return p, nil
}

func (s *DefaultPodService) Update(id string, req CreatePodRequest) (*models.Pod, error) {
	p, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Description != "" {
		p.Description = req.Description
	}
	if req.Mall != "" {
		p.Mall = req.Mall
	}
	if req.City != "" {
		p.City = req.City
	}
	if req.Address != "" {
		p.Address = req.Address
	}
	if req.Images != nil {
		p.Images = req.Images
	}
	if req.Amenities != nil {
		p.Amenities = req.Amenities
	}
	if req.PricePerHour > 0 {
		p.PricePerHour = req.PricePerHour
	}
	if req.Capacity > 0 {
		p.Capacity = req.Capacity
	}
	p.UpdatedAt = s.now()
	if err := s.Repo.Update(p); err != nil {
		return nil, fmt.Errorf("error updating pod: %w", err)
	}
	return p, nil
}

// Deactivate soft-deletes a pod; existing bookings are untouched.
func (s *DefaultPodService) Deactivate(id string) error {
	p, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.Repo.SetActive(p.ID, false); err != nil {
		return fmt.Errorf("error deactivating pod: %w", err)
	}
	return nil
}
