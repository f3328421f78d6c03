package handlers

import (
	"errors"
	"net/http"

	"fitnexus_backend/internal/services"
	"fitnexus_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler holds the booking service.
type BookingHandler struct {
	bookingService services.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bs services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bs}
}

// CreatePaymentIntent charges the member and records the booking.
func (h *BookingHandler) CreatePaymentIntent(c *gin.Context) {
	var req services.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreatePaymentIntent: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	result, err := h.bookingService.CreateBookingWithPayment(c.Request.Context(), req)
	if err != nil {
		utils.LogError(err, "CreatePaymentIntent: Error from bookingService")
		switch {
		case errors.Is(err, services.ErrBookingValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		case errors.Is(err, services.ErrPaymentIncomplete):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodePaymentFailed,
				"Payment failed or incomplete", ""))
		case errors.Is(err, services.ErrPaymentProvider):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodePaymentFailed,
				"Payment provider error.", "Internal error"))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Failed to save booking.", "Internal error"))
		}
		return
	}

	if result.RequiresAction {
		c.JSON(http.StatusOK, gin.H{
			"requiresAction":            true,
			"paymentIntentClientSecret": result.ClientSecret,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"bookingId":       result.Booking.ID,
		"paymentIntentId": result.Booking.PaymentIntentID,
	})
}

// GetBookings lists a member's bookings, newest first.
func (h *BookingHandler) GetBookings(c *gin.Context) {
	email := c.Query("email")
	if utils.IsEmpty(email) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Query parameter 'email' is required.", ""))
		return
	}

	bookings, err := h.bookingService.GetBookingsByEmail(email)
	if err != nil {
		utils.LogError(err, "GetBookings: Error from bookingService")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Failed to fetch bookings.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetMostBookedClasses returns the six most-booked classes.
func (h *BookingHandler) GetMostBookedClasses(c *gin.Context) {
	ranking, err := h.bookingService.GetMostBookedClasses()
	if err != nil {
		utils.LogError(err, "GetMostBookedClasses: Error from bookingService")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Failed to fetch featured classes.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, ranking)
}
