package cinemas

import (
	"errors"
	"net/http"

	"cinebook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) CreateCinema(ctx *gin.Context) {
	var req CreateCinemaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	cinema, err := c.service.CreateCinema(ctx.Request.Context(), &req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create cinema", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Cinema created successfully", cinema, nil)
}

func (c *Controller) ListCinemas(ctx *gin.Context) {
	cinemas, err := c.service.ListCinemas(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list cinemas", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Cinemas retrieved successfully", cinemas, nil)
}

func (c *Controller) GetCinema(ctx *gin.Context) {
	cinema, err := c.service.GetCinema(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, ErrCinemaNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Cinema not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get cinema", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Cinema retrieved successfully", cinema, nil)
}

func (c *Controller) CreateScreen(ctx *gin.Context) {
	var req CreateScreenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	screen, err := c.service.CreateScreen(ctx.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidScreenSize):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid screen size", nil, nil)
		case errors.Is(err, ErrCinemaNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Cinema not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create screen", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Screen created successfully", screen.ToResponse(), nil)
}

func (c *Controller) GetScreen(ctx *gin.Context) {
	screen, err := c.service.GetScreen(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, ErrScreenNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Screen not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get screen", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Screen retrieved successfully", screen.ToResponse(), nil)
}

func (c *Controller) GetScreenSeats(ctx *gin.Context) {
	seats, err := c.service.GetScreenSeats(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, ErrScreenNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Screen not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get seats", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seats retrieved successfully", seats, nil)
}

func (c *Controller) UpdateSeat(ctx *gin.Context) {
	var req UpdateSeatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	err := c.service.SetSeatActive(ctx.Request.Context(), ctx.Param("id"), *req.IsActive)
	if err != nil {
		if errors.Is(err, ErrSeatNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Seat not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update seat", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat updated successfully", nil, nil)
}
