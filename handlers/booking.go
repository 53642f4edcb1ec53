package handlers

import (
	"net/http"

	bookingRepo "buskpod/database/repository/booking"
	"buskpod/models"
	"buskpod/services/booking"
	"buskpod/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves the pod booking lifecycle.
type BookingHandler struct {
	Bookings booking.BookingService
}

// Create books pod time slots for the authenticated user.
func (h *BookingHandler) Create(c *gin.Context) {
	var input struct {
		PodID         string            `json:"pod_id" binding:"required"`
		LocationID    string            `json:"location_id"`
		BookingDate   string            `json:"booking_date" binding:"required"`
		TimeSlots     []models.TimeSlot `json:"time_slots" binding:"required"`
		PaymentMethod string            `json:"payment_method"`
		Notes         string            `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	bk, err := h.Bookings.Create(booking.CreateBookingRequest{
		UserID:        currentUserID(c),
		PodID:         input.PodID,
		LocationID:    input.LocationID,
		BookingDate:   input.BookingDate,
		TimeSlots:     input.TimeSlots,
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bk)
}

func (h *BookingHandler) Get(c *gin.Context) {
	bk, err := h.Bookings.GetByID(c.Param("id"), currentUserID(c))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, bk)
}

func (h *BookingHandler) MyBookings(c *gin.Context) {
	page, perPage := parsePagination(c)
	result, err := h.Bookings.ListForUser(currentUserID(c), c.Query("status"), page, perPage)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	bk, err := h.Bookings.Cancel(c.Param("id"), currentUserID(c))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, bk)
}

// SubmitPaymentProof records a previously uploaded screenshot URL on the booking.
func (h *BookingHandler) SubmitPaymentProof(c *gin.Context) {
	var input struct {
		ScreenshotURL    string `json:"screenshot_url" binding:"required"`
		PaymentReference string `json:"payment_reference"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	bk, err := h.Bookings.UploadPaymentProof(c.Param("id"), currentUserID(c), input.ScreenshotURL, input.PaymentReference)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, bk)
}

// ListAll is the admin booking listing with status/payment/date filters.
func (h *BookingHandler) ListAll(c *gin.Context) {
	page, perPage := parsePagination(c)
	filters := bookingRepo.AdminFilters{
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
		DateFrom:      c.Query("date_from"),
		DateTo:        c.Query("date_to"),
	}
	result, err := h.Bookings.ListAll(filters, page, perPage)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// VerifyPayment applies the admin's payment decision to a booking.
func (h *BookingHandler) VerifyPayment(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	bk, err := h.Bookings.VerifyPayment(c.Param("id"), currentAdminID(c), input.Status)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, bk)
}
