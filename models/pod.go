package models

import "time"

// BookingStatus is the lifecycle state of a pod booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// ActiveBookingStatuses are the statuses that occupy time slots.
var ActiveBookingStatuses = []BookingStatus{BookingPending, BookingConfirmed}

// PaymentStatus tracks admin review of the payment proof.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentVerified PaymentStatus = "verified"
	PaymentRejected PaymentStatus = "rejected"
)

// TimeSlot is one priced interval within a booking day.
// Start and End are zero-padded 24-hour "HH:MM" strings.
type TimeSlot struct {
	Start string  `bson:"start" json:"start"`
	End   string  `bson:"end" json:"end"`
	Price float64 `bson:"price" json:"price"`
}

// Pod is a bookable performance space within a venue.
type Pod struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Description  string    `bson:"description,omitempty" json:"description,omitempty"`
	Mall         string    `bson:"mall" json:"mall"`
	City         string    `bson:"city" json:"city"`
	Address      string    `bson:"address" json:"address"`
	Images       []string  `bson:"images,omitempty" json:"images,omitempty"`
	Amenities    []string  `bson:"amenities,omitempty" json:"amenities,omitempty"`
	PricePerHour float64   `bson:"pricePerHour" json:"price_per_hour"`
	Capacity     int       `bson:"capacity,omitempty" json:"capacity,omitempty"`
	IsActive     bool      `bson:"isActive" json:"is_active"`
	Rating       float64   `bson:"rating" json:"rating"`
	ReviewCount  int       `bson:"reviewCount" json:"review_count"`
	CreatedAt    time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updated_at"`
}

// PodBooking occupies all of its time slots on its booking date for its pod.
// Bookings are never deleted; state transitions only.
type PodBooking struct {
	ID               string        `bson:"id" json:"id"`
	BookingReference string        `bson:"bookingReference" json:"booking_reference"`
	UserID           string        `bson:"userId" json:"user_id"`
	PodID            string        `bson:"podId" json:"pod_id"`
	LocationID       string        `bson:"locationId,omitempty" json:"location_id,omitempty"`

	// Location details, denormalized at creation time.
	MallName               string `bson:"mallName,omitempty" json:"mall_name,omitempty"`
	State                  string `bson:"state,omitempty" json:"state,omitempty"`
	City                   string `bson:"city,omitempty" json:"city,omitempty"`
	FullAddress            string `bson:"fullAddress,omitempty" json:"full_address,omitempty"`
	BuskingAreaDescription string `bson:"buskingAreaDescription,omitempty" json:"busking_area_description,omitempty"`

	BookingDate string        `bson:"bookingDate" json:"booking_date"` // "YYYY-MM-DD"
	TimeSlots   []TimeSlot    `bson:"timeSlots" json:"time_slots"`
	TotalAmount float64       `bson:"totalAmount" json:"total_amount"`
	Status      BookingStatus `bson:"status" json:"status"`

	PaymentMethod        string        `bson:"paymentMethod,omitempty" json:"payment_method,omitempty"`
	PaymentReference     string        `bson:"paymentReference,omitempty" json:"payment_reference,omitempty"`
	PaymentScreenshotURL string        `bson:"paymentScreenshotUrl,omitempty" json:"payment_screenshot_url,omitempty"`
	PaymentStatus        PaymentStatus `bson:"paymentStatus" json:"payment_status"`
	PaymentUploadedAt    *time.Time    `bson:"paymentUploadedAt,omitempty" json:"payment_uploaded_at,omitempty"`
	PaymentVerifiedAt    *time.Time    `bson:"paymentVerifiedAt,omitempty" json:"payment_verified_at,omitempty"`
	PaymentVerifiedBy    string        `bson:"paymentVerifiedBy,omitempty" json:"payment_verified_by,omitempty"`

	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}

// SlotClaim is the uniqueness guard for one slot on one pod/date. A unique
// index on (podId, bookingDate, start, end) makes check-then-insert atomic:
// two concurrent requests for the same slot cannot both claim it.
type SlotClaim struct {
	PodID       string    `bson:"podId" json:"pod_id"`
	BookingDate string    `bson:"bookingDate" json:"booking_date"`
	Start       string    `bson:"start" json:"start"`
	End         string    `bson:"end" json:"end"`
	BookingID   string    `bson:"bookingId" json:"booking_id"`
	CreatedAt   time.Time `bson:"createdAt" json:"created_at"`
}

// PodAvailability is the response of the availability endpoint.
type PodAvailability struct {
	Date           string     `json:"date"`
	AvailableSlots []TimeSlot `json:"available_slots"`
	BookedSlots    []TimeSlot `json:"booked_slots"`
}
