package handlers

import (
	"errors"
	"net/http"

	"buskpod/services/event"
	"buskpod/utils"

	"github.com/gin-gonic/gin"
)

// EventHandler serves the event catalogue and ticket booking.
type EventHandler struct {
	Events event.EventService
}

func (h *EventHandler) List(c *gin.Context) {
	page, perPage := parsePagination(c)
	result, err := h.Events.List(c.Query("q"), page, perPage)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list events", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *EventHandler) Get(c *gin.Context) {
	ev, err := h.Events.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch event", err.Error())
		return
	}
	c.JSON(http.StatusOK, ev)
}

// BookTickets purchases tickets for the authenticated user.
func (h *EventHandler) BookTickets(c *gin.Context) {
	var input struct {
		TicketsCount  int    `json:"tickets_count" binding:"required"`
		PaymentMethod string `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	bk, err := h.Events.BookTickets(currentUserID(c), c.Param("id"), input.TicketsCount, input.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, event.ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, event.ErrEventSoldOut):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, event.ErrInvalidTickets):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to book tickets", err.Error())
		}
		return
	}
	c.JSON(http.StatusCreated, bk)
}

func (h *EventHandler) MyBookings(c *gin.Context) {
	page, perPage := parsePagination(c)
	result, err := h.Events.MyBookings(currentUserID(c), page, perPage)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list event bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

type eventInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	Venue       string  `json:"venue"`
	City        string  `json:"city"`
	Address     string  `json:"address"`
	EventDate   string  `json:"event_date"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	TicketPrice float64 `json:"ticket_price"`
	MaxCapacity int     `json:"max_capacity"`
	Category    string  `json:"category"`
}

func (in eventInput) toRequest() event.CreateEventRequest {
	return event.CreateEventRequest{
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Venue:       in.Venue,
		City:        in.City,
		Address:     in.Address,
		EventDate:   in.EventDate,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		TicketPrice: in.TicketPrice,
		MaxCapacity: in.MaxCapacity,
		Category:    in.Category,
	}
}

func (h *EventHandler) Create(c *gin.Context) {
	var input eventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if input.Title == "" || input.Venue == "" || input.EventDate == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "title, venue and event_date are required")
		return
	}
	ev, err := h.Events.Create(input.toRequest(), currentAdminID(c))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create event", err.Error())
		return
	}
	c.JSON(http.StatusCreated, ev)
}

func (h *EventHandler) Update(c *gin.Context) {
	var input eventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	ev, err := h.Events.Update(c.Param("id"), input.toRequest())
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to update event", err.Error())
		return
	}
	c.JSON(http.StatusOK, ev)
}

func (h *EventHandler) SetPublished(c *gin.Context) {
	var input struct {
		Published *bool `json:"published" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	ev, err := h.Events.SetPublished(c.Param("id"), *input.Published)
	if err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to publish event", err.Error())
		return
	}
	c.JSON(http.StatusOK, ev)
}
