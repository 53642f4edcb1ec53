package booking

import (
	"errors"
	"fmt"
	"time"

	bookingRepo "buskpod/database/repository/booking"
	locationRepo "buskpod/database/repository/location"
	podRepo "buskpod/database/repository/pod"
	"buskpod/models"
	"buskpod/services/scheduling"
	"buskpod/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxReferenceRetries = 5

// Notifier delivers booking notifications to the user. Implementations must
// not block the request path; delivery failures are logged, never returned.
type Notifier interface {
	BookingCreated(booking *models.PodBooking)
	BookingStatusChanged(booking *models.PodBooking)
}

// CreateBookingRequest carries the input for a new pod booking.
type CreateBookingRequest struct {
	UserID        string
	PodID         string
	LocationID    string
	BookingDate   string // "YYYY-MM-DD"
	TimeSlots     []models.TimeSlot
	PaymentMethod string
	Notes         string
}

// BookingService manages the pod booking lifecycle.
type BookingService interface {
	Create(req CreateBookingRequest) (*models.PodBooking, error)
	GetByID(id, userID string) (*models.PodBooking, error)
	ListForUser(userID, status string, page, perPage int) (*models.Page, error)
	Cancel(id, userID string) (*models.PodBooking, error)
	UploadPaymentProof(id, userID, screenshotURL, paymentReference string) (*models.PodBooking, error)
	VerifyPayment(id, adminID, decision string) (*models.PodBooking, error)
	ListAll(filters bookingRepo.AdminFilters, page, perPage int) (*models.Page, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo      bookingRepo.BookingRepository
	Pods      podRepo.PodRepository
	Locations locationRepo.LocationRepository
	Notifier  Notifier
	Hours     scheduling.Hours

	// now is injectable so date and cancellation-window checks are testable.
	now func() time.Time
}

// NewDefaultBookingService wires a booking service with the real clock.
func NewDefaultBookingService(repo bookingRepo.BookingRepository, pods podRepo.PodRepository, locations locationRepo.LocationRepository, notifier Notifier) *DefaultBookingService {
	return &DefaultBookingService{
		Repo:      repo,
		Pods:      pods,
		Locations: locations,
		Notifier:  notifier,
		Hours:     scheduling.OperatingHours(),
		now:       time.Now,
	}
}

// Create validates the request, checks slot conflicts, and persists the
// booking. The slot-claim unique index makes the final insert the authority
// on conflicts, so a concurrent duplicate still fails cleanly.
func (s *DefaultBookingService) Create(req CreateBookingRequest) (*models.PodBooking, error) {
	pod, err := s.Pods.GetByID(req.PodID)
	if err != nil {
		return nil, fmt.Errorf("error fetching pod: %w", err)
	}
	if pod == nil || !pod.IsActive {
		return nil, NewNotFoundError("pod not found")
	}

	if _, err := time.ParseInLocation("2006-01-02", req.BookingDate, s.now().Location()); err != nil {
		return nil, NewInvalidInputError("booking date must be in YYYY-MM-DD format")
	}
	today := s.now().Format("2006-01-02")
	if req.BookingDate <= today {
		return nil, NewInvalidInputError("booking date must be in the future")
	}

	if err := scheduling.ValidateSlots(req.TimeSlots); err != nil {
		return nil, NewInvalidInputError(err.Error())
	}
	opensAt := fmt.Sprintf("%02d:00", s.Hours.Open)
	closesAt := fmt.Sprintf("%02d:00", s.Hours.Close)
	for _, slot := range req.TimeSlots {
		if slot.Start < opensAt || slot.End > closesAt {
			return nil, NewInvalidInputError(fmt.Sprintf("time slot %s-%s is outside operating hours %s-%s", slot.Start, slot.End, opensAt, closesAt))
		}
	}

	existing, err := s.Repo.FindForPodDate(req.PodID, req.BookingDate, models.ActiveBookingStatuses)
	if err != nil {
		return nil, fmt.Errorf("error checking existing bookings: %w", err)
	}
	if err := scheduling.CheckConflicts(req.TimeSlots, scheduling.OccupiedSlots(existing)); err != nil {
		return nil, NewConflictError(err.Error())
	}

	var total float64
	for _, slot := range req.TimeSlots {
		total += slot.Price
	}

	now := s.now()
	bk := &models.PodBooking{
		ID:            uuid.New().String(),
		UserID:        req.UserID,
		PodID:         req.PodID,
		LocationID:    req.LocationID,
		BookingDate:   req.BookingDate,
		TimeSlots:     req.TimeSlots,
		TotalAmount:   total,
		Status:        models.BookingPending,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: models.PaymentPending,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if req.LocationID != "" && s.Locations != nil {
		loc, err := s.Locations.GetByID(req.LocationID)
		if err != nil {
			return nil, fmt.Errorf("error fetching location: %w", err)
		}
		if loc != nil {
			bk.MallName = loc.LocationName
			bk.State = loc.State
			bk.City = loc.City
			bk.FullAddress = loc.FullAddress
			bk.BuskingAreaDescription = loc.BuskingAreaDescription
		}
	}

	// Retry with a fresh reference on a unique-index collision.
	for attempt := 0; attempt < maxReferenceRetries; attempt++ {
		ref, err := NewReference("BOOK")
		if err != nil {
			return nil, err
		}
		bk.BookingReference = ref

		err = s.Repo.Insert(bk)
		if err == nil {
			s.notifyCreated(bk)
			return bk, nil
		}
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			return nil, NewConflictError("one of the selected time slots is already booked")
		}
		if errors.Is(err, bookingRepo.ErrDuplicateReference) {
			continue
		}
		return nil, fmt.Errorf("error creating booking: %w", err)
	}
	return nil, fmt.Errorf("error creating booking: reference collisions exhausted %d retries", maxReferenceRetries)
}

func (s *DefaultBookingService) GetByID(id, userID string) (*models.PodBooking, error) {
	bk, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("error fetching booking: %w", err)
	}
	if bk == nil {
		return nil, NewNotFoundError("booking not found")
	}
	if userID != "" && bk.UserID != userID {
		return nil, NewForbiddenError("booking belongs to another user")
	}
	return bk, nil
}

func (s *DefaultBookingService) ListForUser(userID, status string, page, perPage int) (*models.Page, error) {
	bookings, total, err := s.Repo.FindByUser(userID, status, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	return models.NewPage(bookings, total, page, perPage), nil
}

// Cancel transitions a booking to cancelled and frees its slot claims.
// Cancellation closes 24 hours before midnight of the booking date.
func (s *DefaultBookingService) Cancel(id, userID string) (*models.PodBooking, error) {
	bk, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("error fetching booking: %w", err)
	}
	if bk == nil {
		return nil, NewNotFoundError("booking not found")
	}
	if bk.UserID != userID {
		return nil, NewForbiddenError("booking belongs to another user")
	}
	switch bk.Status {
	case models.BookingCancelled:
		return nil, NewConflictError("booking is already cancelled")
	case models.BookingCompleted:
		return nil, NewConflictError("completed bookings cannot be cancelled")
	}

	dayStart, err := time.ParseInLocation("2006-01-02", bk.BookingDate, s.now().Location())
	if err != nil {
		return nil, fmt.Errorf("error parsing booking date %q: %w", bk.BookingDate, err)
	}
	deadline := dayStart.Add(-24 * time.Hour)
	if !s.now().Before(deadline) {
		return nil, NewForbiddenError("bookings can only be cancelled at least 24 hours before the booking date")
	}

	bk.Status = models.BookingCancelled
	if err := s.Repo.Update(bk); err != nil {
		return nil, fmt.Errorf("error cancelling booking: %w", err)
	}
	if err := s.Repo.ReleaseClaims(bk.ID); err != nil {
		utils.GetLogger().Warn("failed to release slot claims", zap.String("bookingId", bk.ID), zap.Error(err))
	}
	s.notifyStatus(bk)
	return bk, nil
}

// UploadPaymentProof records the payment screenshot on a pending booking.
func (s *DefaultBookingService) UploadPaymentProof(id, userID, screenshotURL, paymentReference string) (*models.PodBooking, error) {
	bk, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("error fetching booking: %w", err)
	}
	if bk == nil {
		return nil, NewNotFoundError("booking not found")
	}
	if bk.UserID != userID {
		return nil, NewForbiddenError("booking belongs to another user")
	}
	if bk.Status == models.BookingCancelled || bk.Status == models.BookingCompleted {
		return nil, NewConflictError("booking is not awaiting payment")
	}

	now := s.now()
	bk.PaymentScreenshotURL = screenshotURL
	if paymentReference != "" {
		bk.PaymentReference = paymentReference
	}
	bk.PaymentUploadedAt = &now
	if err := s.Repo.Update(bk); err != nil {
		return nil, fmt.Errorf("error saving payment proof: %w", err)
	}
	return bk, nil
}

// VerifyPayment applies an admin's payment decision. "verified" confirms the
// booking; "rejected" cancels it and frees its slots.
func (s *DefaultBookingService) VerifyPayment(id, adminID, decision string) (*models.PodBooking, error) {
	bk, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("error fetching booking: %w", err)
	}
	if bk == nil {
		return nil, NewNotFoundError("booking not found")
	}
	if bk.PaymentStatus != models.PaymentPending {
		return nil, NewConflictError("payment has already been reviewed")
	}

	now := s.now()
	switch decision {
	case string(models.PaymentVerified):
		bk.Status = models.BookingConfirmed
		bk.PaymentStatus = models.PaymentVerified
	case string(models.PaymentRejected):
		bk.Status = models.BookingCancelled
		bk.PaymentStatus = models.PaymentRejected
	default:
		return nil, NewInvalidInputError("verification status must be verified or rejected")
	}
	bk.PaymentVerifiedAt = &now
	bk.PaymentVerifiedBy = adminID

	if err := s.Repo.Update(bk); err != nil {
		return nil, fmt.Errorf("error updating booking: %w", err)
	}
	if bk.PaymentStatus == models.PaymentRejected {
		if err := s.Repo.ReleaseClaims(bk.ID); err != nil {
			utils.GetLogger().Warn("failed to release slot claims", zap.String("bookingId", bk.ID), zap.Error(err))
		}
	}
	s.notifyStatus(bk)
	return bk, nil
}

func (s *DefaultBookingService) ListAll(filters bookingRepo.AdminFilters, page, perPage int) (*models.Page, error) {
	bookings, total, err := s.Repo.FindAll(filters, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	return models.NewPage(bookings, total, page, perPage), nil
}

func (s *DefaultBookingService) notifyCreated(bk *models.PodBooking) {
	if s.Notifier != nil {
		s.Notifier.BookingCreated(bk)
	}
}

func (s *DefaultBookingService) notifyStatus(bk *models.PodBooking) {
	if s.Notifier != nil {
		s.Notifier.BookingStatusChanged(bk)
	}
}
