package bookings

import (
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles booking routes. Everything requires authentication.
type Router struct {
	controller *Controller
	config     *config.Config
}

func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

func (bookingRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuthWithConfig(bookingRouter.config))
	{
		bookings.POST("", bookingRouter.controller.CreateBooking)
		bookings.GET("/:id", bookingRouter.controller.GetBooking)
		bookings.GET("/:id/qr", bookingRouter.controller.GetQRTicket)
		bookings.POST("/:id/cancel", bookingRouter.controller.CancelBooking)
	}

	userBookings := rg.Group("/users/bookings")
	userBookings.Use(middleware.JWTAuthWithConfig(bookingRouter.config))
	{
		userBookings.GET("", bookingRouter.controller.GetUserBookings)
	}
}
