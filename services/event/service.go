package event

import (
	"errors"
	"fmt"
	"time"

	eventRepo "buskpod/database/repository/event"
	"buskpod/models"
	"buskpod/services/booking"
	"buskpod/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxReferenceRetries = 5

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrEventSoldOut    = errors.New("not enough tickets remaining")
	ErrInvalidTickets  = errors.New("tickets count must be at least 1")
	ErrBookingNotFound = errors.New("event booking not found")
)

// CreateEventRequest carries admin input for a new event.
type CreateEventRequest struct {
	Title       string
	Description string
	ImageURL    string
	Venue       string
	City        string
	Address     string
	EventDate   string // "YYYY-MM-DD"
	StartTime   string // "HH:MM"
	EndTime     string // "HH:MM"
	TicketPrice float64
	MaxCapacity int
	Category    string
}

// EventService covers the public event catalogue and ticket booking.
type EventService interface {
	List(search string, page, perPage int) (*models.Page, error)
	GetByID(id string) (*models.Event, error)
	BookTickets(userID, eventID string, ticketsCount int, paymentMethod string) (*models.EventBooking, error)
	MyBookings(userID string, page, perPage int) (*models.Page, error)
	Create(req CreateEventRequest, adminID string) (*models.Event, error)
	Update(id string, req CreateEventRequest) (*models.Event, error)
	SetPublished(id string, published bool) (*models.Event, error)
}

// DefaultEventService is the production implementation.
type DefaultEventService struct {
	Repo eventRepo.EventRepository
	now  func() time.Time
}

func NewDefaultEventService(repo eventRepo.EventRepository) *DefaultEventService {
	return &DefaultEventService{Repo: repo, now: time.Now}
}

// List returns published events, optionally filtered by a search term.
func (s *DefaultEventService) List(search string, page, perPage int) (*models.Page, error) {
	events, total, err := s.Repo.List(true, search, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	return models.NewPage(events, total, page, perPage), nil
}

func (s *DefaultEventService) GetByID(id string) (*models.Event, error) {
	ev, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("error fetching event: %w", err)
	}
	if ev == nil || !ev.IsPublished {
		return nil, ErrEventNotFound
	}
	return ev, nil
}

// BookTickets purchases tickets for a published event. The capacity guard
// lives in the counter update, so concurrent purchases cannot oversell.
func (s *DefaultEventService) BookTickets(userID, eventID string, ticketsCount int, paymentMethod string) (*models.EventBooking, error) {
	if ticketsCount < 1 {
		return nil, ErrInvalidTickets
	}
	ev, err := s.GetByID(eventID)
	if err != nil {
		return nil, err
	}
	if ev.MaxCapacity > 0 && ev.CurrentBookings+ticketsCount > ev.MaxCapacity {
		return nil, ErrEventSoldOut
	}

	if err := s.Repo.IncrementTicketsSold(eventID, ticketsCount); err != nil {
		if errors.Is(err, eventRepo.ErrSoldOut) {
			return nil, ErrEventSoldOut
		}
		return nil, fmt.Errorf("error reserving tickets: %w", err)
	}

	now := s.now()
	bk := &models.EventBooking{
		ID:            uuid.New().String(),
		UserID:        userID,
		EventID:       eventID,
		TicketsCount:  ticketsCount,
		TotalAmount:   float64(ticketsCount) * ev.TicketPrice,
		Status:        models.BookingConfirmed,
		PaymentMethod: paymentMethod,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for attempt := 0; attempt < maxReferenceRetries; attempt++ {
		ref, err := booking.NewReference("EVT")
		if err != nil {
			return nil, err
		}
		bk.BookingReference = ref

		err = s.Repo.InsertBooking(bk)
		if err == nil {
			return bk, nil
		}
		if errors.Is(err, eventRepo.ErrDuplicateReference) {
			continue
		}
		s.returnTickets(eventID, ticketsCount)
		return nil, fmt.Errorf("error creating event booking: %w", err)
	}
	s.returnTickets(eventID, ticketsCount)
	return nil, fmt.Errorf("error creating event booking: reference collisions exhausted %d retries", maxReferenceRetries)
}

// returnTickets hands reserved seats back after a failed booking insert so the
// capacity counter cannot drift above the tickets actually sold.
func (s *DefaultEventService) returnTickets(eventID string, count int) {
	if err := s.Repo.DecrementTicketsSold(eventID, count); err != nil {
		utils.GetLogger().Warn("failed to return reserved tickets",
			zap.String("eventId", eventID), zap.Int("count", count), zap.Error(err))
	}
}

func (s *DefaultEventService) MyBookings(userID string, page, perPage int) (*models.Page, error) {
	bookings, total, err := s.Repo.FindBookingsByUser(userID, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("error listing event bookings: %w", err)
	}
	return models.NewPage(bookings, total, page, perPage), nil
}

// Create registers an unpublished event.
func (s *DefaultEventService) Create(req CreateEventRequest, adminID string) (*models.Event, error) {
	now := s.now()
	ev := &models.Event{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Venue:       req.Venue,
		City:        req.City,
		Address:     req.Address,
		EventDate:   req.EventDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		TicketPrice: req.TicketPrice,
		MaxCapacity: req.MaxCapacity,
		Category:    req.Category,
		CreatedBy:   adminID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Insert(ev); err != nil {
		return nil, fmt.Errorf("error creating event: %w", err)
	}
	return ev, nil
}

func (s *DefaultEventService) Update(id string, req CreateEventRequest) (*models.Event, error) {
	ev, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("error fetching event: %w", err)
	}
	if ev == nil {
		return nil, ErrEventNotFound
	}
	if req.Title != "" {
		ev.Title = req.Title
	}
	if req.Description != "" {
		ev.Description = req.Description
	}
	if req.ImageURL != "" {
		ev.ImageURL = req.ImageURL
	}
	if req.Venue != "" {
		ev.Venue = req.Venue
	}
	if req.City != "" {
		ev.City = req.City
	}
	if req.Address != "" {
		ev.Address = req.Address
	}
	if req.EventDate != "" {
		ev.EventDate = req.EventDate
	}
	if req.StartTime != "" {
		ev.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		ev.EndTime = req.EndTime
	}
	if req.TicketPrice > 0 {
		ev.TicketPrice = req.TicketPrice
	}
	if req.MaxCapacity > 0 {
		ev.MaxCapacity = req.MaxCapacity
	}
	if req.Category != "" {
		ev.Category = req.Category
	}
	ev.UpdatedAt = s.now()
	if err := s.Repo.Update(ev); err != nil {
		return nil, fmt.Errorf("error updating event: %w", err)
	}
	return ev, nil
}

func (s *DefaultEventService) SetPublished(id string, published bool) (*models.Event, error) {
	ev, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("error fetching event: %w", err)
	}
	if ev == nil {
		return nil, ErrEventNotFound
	}
	ev.IsPublished = published
	ev.UpdatedAt = s.now()
	if err := s.Repo.Update(ev); err != nil {
		return nil, fmt.Errorf("error publishing event: %w", err)
	}
	return ev, nil
}
