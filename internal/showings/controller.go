package showings

import (
	"errors"
	"net/http"

	"cinebook/internal/movies"
	"cinebook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) CreateShowing(ctx *gin.Context) {
	var req CreateShowingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	showing, err := c.service.CreateShowing(ctx.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, movies.ErrMovieNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Movie not found", nil, nil)
		case errors.Is(err, ErrShowingOverlap):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Showing overlaps an existing showing on this screen", nil, nil)
		case errors.Is(err, ErrShowingInPast):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Showing start time must be in the future", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create showing", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Showing created successfully", showing, nil)
}

func (c *Controller) GetShowing(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid showing ID", nil, nil)
		return
	}

	showing, err := c.service.GetShowingByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrShowingNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Showing not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get showing", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Showing retrieved successfully", showing, nil)
}

func (c *Controller) GetBookedSeats(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid showing ID", nil, nil)
		return
	}

	booked, err := c.service.GetBookedSeats(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrShowingNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Showing not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get booked seats", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booked seats retrieved successfully", booked, nil)
}

func (c *Controller) ReplaceMovieSchedule(ctx *gin.Context) {
	movieID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid movie ID", nil, nil)
		return
	}

	var req ReplaceScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	schedule, err := c.service.ReplaceMovieSchedule(ctx.Request.Context(), movieID, &req)
	if err != nil {
		switch {
		case errors.Is(err, movies.ErrMovieNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Movie not found", nil, nil)
		case errors.Is(err, ErrShowingHasBookings):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Cannot remove a showing with live bookings", nil, err.Error())
		case errors.Is(err, ErrShowingOverlap):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Schedule contains overlapping showings", nil, nil)
		case errors.Is(err, ErrShowingInPast):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "New showings must start in the future", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Failed to update schedule", nil, err.Error())
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Schedule updated successfully", schedule, nil)
}

func (c *Controller) DeleteShowing(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid showing ID", nil, nil)
		return
	}

	if err := c.service.DeleteShowing(ctx.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrShowingNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Showing not found", nil, nil)
		case errors.Is(err, ErrShowingHasBookings):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Showing has live bookings and cannot be deleted", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to delete showing", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Showing deleted successfully", nil, nil)
}
