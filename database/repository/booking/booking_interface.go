package bookingRepo

import "buskpod/models"

// AdminFilters narrows the admin booking listing.
type AdminFilters struct {
	Status        string
	PaymentStatus string
	DateFrom      string // "YYYY-MM-DD", inclusive
	DateTo        string // "YYYY-MM-DD", inclusive
}

// BookingRepository defines persistence operations for pod bookings.
//
// Insert claims every slot of the booking through a unique index before
// persisting the record, so the conflict check and the insert behave as one
// atomic step under concurrent writers.
type BookingRepository interface {
	Insert(booking *models.PodBooking) error
	GetByID(id string) (*models.PodBooking, error)
	Update(booking *models.PodBooking) error
	ReleaseClaims(bookingID string) error
	FindForPodDate(podID, date string, statuses []models.BookingStatus) ([]models.PodBooking, error)
	FindByUser(userID, status string, page, perPage int) ([]models.PodBooking, int64, error)
	FindAll(filters AdminFilters, page, perPage int) ([]models.PodBooking, int64, error)
	FindConfirmedBefore(date string) ([]models.PodBooking, error)
	CountAll() (int64, error)
	SumConfirmedRevenue() (float64, error)
}
