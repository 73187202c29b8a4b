package cinemas

import (
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles cinema, screen and seat routes
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

// SetupRoutes registers all cinema routes. Reads are public, writes are
// restricted to admins.
func (cinemaRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	cinemas := rg.Group("/cinemas")
	{
		cinemas.GET("", cinemaRouter.controller.ListCinemas)
		cinemas.GET("/:id", cinemaRouter.controller.GetCinema)

		admin := cinemas.Group("")
		admin.Use(middleware.JWTAuthWithConfig(cinemaRouter.config), middleware.RequireAdmin())
		{
			admin.POST("", cinemaRouter.controller.CreateCinema)
		}
	}

	screens := rg.Group("/screens")
	{
		screens.GET("/:id", cinemaRouter.controller.GetScreen)
		screens.GET("/:id/seats", cinemaRouter.controller.GetScreenSeats)

		admin := screens.Group("")
		admin.Use(middleware.JWTAuthWithConfig(cinemaRouter.config), middleware.RequireAdmin())
		{
			admin.POST("", cinemaRouter.controller.CreateScreen)
		}
	}

	seats := rg.Group("/seats")
	seats.Use(middleware.JWTAuthWithConfig(cinemaRouter.config), middleware.RequireAdmin())
	{
		seats.PATCH("/:id", cinemaRouter.controller.UpdateSeat)
	}
}
