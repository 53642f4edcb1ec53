package models

import "time"

// Event is an admin-published ticketed show.
type Event struct {
	ID              string    `bson:"id" json:"id"`
	Title           string    `bson:"title" json:"title"`
	Description     string    `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL        string    `bson:"imageUrl,omitempty" json:"image_url,omitempty"`
	Venue           string    `bson:"venue" json:"venue"`
	City            string    `bson:"city" json:"city"`
	Address         string    `bson:"address,omitempty" json:"address,omitempty"`
	EventDate       string    `bson:"eventDate" json:"event_date"` // "YYYY-MM-DD"
	StartTime       string    `bson:"startTime" json:"start_time"` // "HH:MM"
	EndTime         string    `bson:"endTime" json:"end_time"`     // "HH:MM"
	TicketPrice     float64   `bson:"ticketPrice" json:"ticket_price"`
	MaxCapacity     int       `bson:"maxCapacity,omitempty" json:"max_capacity,omitempty"`
	CurrentBookings int       `bson:"currentBookings" json:"current_bookings"`
	Category        string    `bson:"category,omitempty" json:"category,omitempty"`
	IsPublished     bool      `bson:"isPublished" json:"is_published"`
	CreatedBy       string    `bson:"createdBy" json:"created_by"`
	CreatedAt       time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updated_at"`
}

// EventBooking is a ticket purchase for an event.
type EventBooking struct {
	ID               string        `bson:"id" json:"id"`
	BookingReference string        `bson:"bookingReference" json:"booking_reference"`
	UserID           string        `bson:"userId" json:"user_id"`
	EventID          string        `bson:"eventId" json:"event_id"`
	TicketsCount     int           `bson:"ticketsCount" json:"tickets_count"`
	TotalAmount      float64       `bson:"totalAmount" json:"total_amount"`
	Status           BookingStatus `bson:"status" json:"status"`
	PaymentMethod    string        `bson:"paymentMethod,omitempty" json:"payment_method,omitempty"`
	PaymentReference string        `bson:"paymentReference,omitempty" json:"payment_reference,omitempty"`
	CreatedAt        time.Time     `bson:"createdAt" json:"created_at"`
	UpdatedAt        time.Time     `bson:"updatedAt" json:"updated_at"`
}
