package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/NovaAI-innovation/backend12/internal/domain"
	"github.com/NovaAI-innovation/backend12/internal/service"
)

// BookingHandler serves the public booking submission endpoint.
type BookingHandler struct {
	Bookings *service.BookingService
}

func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	return &BookingHandler{Bookings: bookings}
}

// Submit records a booking request.
func (h *BookingHandler) Submit(c *gin.Context) {
	var req struct {
		Name      string `json:"name" binding:"required"`
		Email     string `json:"email" binding:"required"`
		EventDate string `json:"event_date" binding:"required"`
		Message   string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "name, email, and event_date are required."})
		return
	}

	eventDate, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "event_date must be YYYY-MM-DD."})
		return
	}

	booking, err := h.Bookings.Submit(c.Request.Context(), domain.Booking{
		Name:      req.Name,
		Email:     req.Email,
		EventDate: eventDate,
		Message:   req.Message,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         booking.ID,
		"name":       booking.Name,
		"email":      booking.Email,
		"event_date": booking.EventDate.Format("2006-01-02"),
		"message":    booking.Message,
		"created_at": booking.CreatedAt,
	})
}
