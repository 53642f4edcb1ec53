package scheduling

import (
	"errors"
	"fmt"
	"regexp"

	"buskpod/config"
	"buskpod/models"
)

// ErrPodNotFound is returned when availability is requested for an unknown pod.
var ErrPodNotFound = errors.New("pod not found")

var timeRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ConflictError reports a requested slot that is already occupied.
type ConflictError struct {
	Slot models.TimeSlot
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time slot %s-%s is already booked", e.Slot.Start, e.Slot.End)
}

// Hours are the daily operating hours of every pod (24h clock).
type Hours struct {
	Open  int
	Close int
}

// OperatingHours returns the configured pod hours, defaulting to 09:00-21:00.
func OperatingHours() Hours {
	h := Hours{Open: config.AppConfig.PodOpenHour, Close: config.AppConfig.PodCloseHour}
	if h.Open == 0 && h.Close == 0 {
		h = Hours{Open: 9, Close: 21}
	}
	return h
}

// AllSlots generates the full hourly slot grid for one day at the given price.
// Slots are contiguous: each slot's end equals the next slot's start.
func AllSlots(hours Hours, pricePerHour float64) []models.TimeSlot {
	slots := make([]models.TimeSlot, 0, hours.Close-hours.Open)
	for h := hours.Open; h < hours.Close; h++ {
		slots = append(slots, models.TimeSlot{
			Start: fmt.Sprintf("%02d:00", h),
			End:   fmt.Sprintf("%02d:00", h+1),
			Price: pricePerHour,
		})
	}
	return slots
}

// ValidateSlots checks that every slot is a well-formed "HH:MM" interval with
// start before end. Lexicographic comparison is correct for zero-padded times.
func ValidateSlots(slots []models.TimeSlot) error {
	if len(slots) == 0 {
		return errors.New("at least one time slot is required")
	}
	for _, slot := range slots {
		if !timeRe.MatchString(slot.Start) || !timeRe.MatchString(slot.End) {
			return fmt.Errorf("invalid time format in slot %s-%s, expected HH:MM", slot.Start, slot.End)
		}
		if slot.Start >= slot.End {
			return fmt.Errorf("slot start %s must be before end %s", slot.Start, slot.End)
		}
	}
	return nil
}

// OccupiedSlots flattens the time slots of the given bookings.
func OccupiedSlots(bookings []models.PodBooking) []models.TimeSlot {
	var occupied []models.TimeSlot
	for _, b := range bookings {
		occupied = append(occupied, b.TimeSlots...)
	}
	return occupied
}

// CheckConflicts compares each requested slot against the occupied ones and
// returns a ConflictError for the first collision. Two slots collide only when
// both start and end match exactly; partial overlap is not a conflict.
func CheckConflicts(requested, occupied []models.TimeSlot) error {
	taken := make(map[string]struct{}, len(occupied))
	for _, slot := range occupied {
		taken[slot.Start+"-"+slot.End] = struct{}{}
	}
	for _, slot := range requested {
		if _, ok := taken[slot.Start+"-"+slot.End]; ok {
			return &ConflictError{Slot: slot}
		}
	}
	return nil
}

// BookingFinder loads the bookings that occupy slots for a pod on a date.
type BookingFinder interface {
	FindForPodDate(podID, date string, statuses []models.BookingStatus) ([]models.PodBooking, error)
}

// PodGetter loads a pod by id.
type PodGetter interface {
	GetByID(id string) (*models.Pod, error)
}

// Service computes per-day availability for pods.
type Service struct {
	Bookings BookingFinder
	Pods     PodGetter
	Hours    Hours
}

// NewService constructs a scheduling service with the configured hours.
func NewService(bookings BookingFinder, pods PodGetter) *Service {
	return &Service{Bookings: bookings, Pods: pods, Hours: OperatingHours()}
}

// Availability returns the free and occupied slots for a pod on a date.
// It is computed fresh from pending and confirmed bookings on every call.
func (s *Service) Availability(podID, date string) (*models.PodAvailability, error) {
	pod, err := s.Pods.GetByID(podID)
	if err != nil {
		return nil, fmt.Errorf("error fetching pod %s: %w", podID, err)
	}
	if pod == nil || !pod.IsActive {
		return nil, ErrPodNotFound
	}

	bookings, err := s.Bookings.FindForPodDate(podID, date, models.ActiveBookingStatuses)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings for pod %s: %w", podID, err)
	}

	occupied := OccupiedSlots(bookings)
	taken := make(map[string]struct{}, len(occupied))
	for _, slot := range occupied {
		taken[slot.Start+"-"+slot.End] = struct{}{}
	}

	available := make([]models.TimeSlot, 0)
	for _, slot := range AllSlots(s.Hours, pod.PricePerHour) {
		if _, ok := taken[slot.Start+"-"+slot.End]; !ok {
			available = append(available, slot)
		}
	}
	if occupied == nil {
		occupied = []models.TimeSlot{}
	}

	return &models.PodAvailability{
		Date:           date,
		AvailableSlots: available,
		BookedSlots:    occupied,
	}, nil
}
