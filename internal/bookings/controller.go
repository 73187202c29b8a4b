package bookings

import (
	"errors"
	"net/http"

	"cinebook/internal/cinemas"
	"cinebook/internal/shared/utils/response"
	"cinebook/internal/showings"
	"cinebook/internal/users"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func currentUser(ctx *gin.Context) (uuid.UUID, bool, bool) {
	raw, exists := ctx.Get("user_id")
	if !exists {
		return uuid.Nil, false, false
	}
	userID, err := uuid.Parse(raw.(string))
	if err != nil {
		return uuid.Nil, false, false
	}

	role, _ := ctx.Get("user_role")
	isAdmin := role == string(users.RoleAdmin)
	return userID, isAdmin, true
}

func (c *Controller) CreateBooking(ctx *gin.Context) {
	userID, _, ok := currentUser(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := c.service.CreateBooking(ctx.Request.Context(), userID, &req)
	if err != nil {
		c.respondBookingError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking created successfully", booking, nil)
}

// respondBookingError maps domain errors to HTTP codes: validation failures
// to 400, lost seat races to 409 with the claimed seat IDs, unknown entities
// to 404.
func (c *Controller) respondBookingError(ctx *gin.Context, err error) {
	var conflict *SeatConflictError
	switch {
	case errors.As(err, &conflict):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Some seats are already booked", gin.H{
			"claimed_seat_ids": conflict.SeatIDStrings(),
		}, nil)
	case errors.Is(err, showings.ErrShowingNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Showing not found", nil, nil)
	case errors.Is(err, cinemas.ErrSeatNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Seat not found", nil, err.Error())
	case errors.Is(err, ErrIdempotencyKeyReused):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Idempotency key already used for a different request", nil, nil)
	case errors.Is(err, ErrNoSeatsSelected),
		errors.Is(err, ErrDuplicateSeat),
		errors.Is(err, ErrSeatNotOnScreen),
		errors.Is(err, ErrSeatInactive),
		errors.Is(err, ErrInvalidTicketType),
		errors.Is(err, ErrMissingTicketType),
		errors.Is(err, ErrShowingStarted):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking request", nil, err.Error())
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create booking", nil, nil)
	}
}

func (c *Controller) GetBooking(ctx *gin.Context) {
	userID, isAdmin, ok := currentUser(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	booking, err := c.service.GetBooking(ctx.Request.Context(), userID, isAdmin, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
		case errors.Is(err, ErrBookingNotOwned):
			response.RespondJSON(ctx, "error", http.StatusForbidden, "You do not have access to this booking", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get booking", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

func (c *Controller) GetUserBookings(ctx *gin.Context) {
	userID, _, ok := currentUser(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var query BookingHistoryQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.GetUserBookings(ctx.Request.Context(), userID, query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get bookings", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", result, nil)
}

func (c *Controller) CancelBooking(ctx *gin.Context) {
	userID, isAdmin, ok := currentUser(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	if err := c.service.CancelBooking(ctx.Request.Context(), userID, isAdmin, bookingID); err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
		case errors.Is(err, ErrBookingNotOwned):
			response.RespondJSON(ctx, "error", http.StatusForbidden, "You do not have access to this booking", nil, nil)
		case errors.Is(err, ErrBookingCancelled):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Booking is already cancelled", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to cancel booking", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking cancelled successfully", nil, nil)
}

func (c *Controller) GetQRTicket(ctx *gin.Context) {
	userID, isAdmin, ok := currentUser(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	ticket, err := c.service.GetQRTicket(ctx.Request.Context(), userID, isAdmin, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
		case errors.Is(err, ErrBookingNotOwned):
			response.RespondJSON(ctx, "error", http.StatusForbidden, "You do not have access to this booking", nil, nil)
		case errors.Is(err, ErrBookingCancelled):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Cancelled bookings have no ticket", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to issue ticket", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Ticket issued successfully", ticket, nil)
}
