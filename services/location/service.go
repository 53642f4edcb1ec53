package location

import (
	"errors"
	"fmt"

	locationRepo "buskpod/database/repository/location"
	"buskpod/models"
)

// ErrLocationNotFound is returned when a location id does not resolve.
var ErrLocationNotFound = errors.New("busking location not found")

// LocationService exposes the curated busking location directory.
type LocationService interface {
	States() ([]string, error)
	Cities(state string) ([]string, error)
	ListByCity(city string, page, perPage int) (*models.Page, error)
	Grouped() (map[string][]models.BuskingLocation, error)
	GetByID(id string) (*models.BuskingLocation, error)
}

// DefaultLocationService is the production implementation.
type DefaultLocationService struct {
	Repo locationRepo.LocationRepository
}

func NewDefaultLocationService(repo locationRepo.LocationRepository) *DefaultLocationService {
	return &DefaultLocationService{Repo: repo}
}

func (s *DefaultLocationService) States() ([]string, error) {
	states, err := s.Repo.ListStates()
	if err != nil {
		return nil, fmt.Errorf("error listing states: %w", err)
	}
	return states, nil
}

func (s *DefaultLocationService) Cities(state string) ([]string, error) {
	cities, err := s.Repo.ListCities(state)
	if err != nil {
		return nil, fmt.Errorf("error listing cities: %w", err)
	}
	return cities, nil
}

func (s *DefaultLocationService) ListByCity(city string, page, perPage int) (*models.Page, error) {
	locations, total, err := s.Repo.ListByCity(city, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("error listing locations: %w", err)
	}
	return models.NewPage(locations, total, page, perPage), nil
}

func (s *DefaultLocationService) Grouped() (map[string][]models.BuskingLocation, error) {
	grouped, err := s.Repo.ListGrouped()
	if err != nil {
		return nil, fmt.Errorf("error grouping locations: %w", err)
	}
	return grouped, nil
}

func (s *DefaultLocationService) GetByID(id string) (*models.BuskingLocation, error) {
	loc, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("error fetching location: %w", err)
	}
	if loc == nil {
		return nil, ErrLocationNotFound
	}
	return loc, nil
}
