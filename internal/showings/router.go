package showings

import (
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles showing schedule routes
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

// SetupRoutes registers showing routes. The schedule replacement endpoint is
// registered under /movies/:id/showings because it is addressed by movie.
func (showingRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	showings := rg.Group("/showings")
	{
		showings.GET("/:id", showingRouter.controller.GetShowing)
		showings.GET("/:id/booked-seats", showingRouter.controller.GetBookedSeats)

		admin := showings.Group("")
		admin.Use(middleware.JWTAuthWithConfig(showingRouter.config), middleware.RequireAdmin())
		{
			admin.POST("", showingRouter.controller.CreateShowing)
			admin.DELETE("/:id", showingRouter.controller.DeleteShowing)
		}
	}

	movieSchedule := rg.Group("/movies/:id/showings")
	movieSchedule.Use(middleware.JWTAuthWithConfig(showingRouter.config), middleware.RequireAdmin())
	{
		movieSchedule.PUT("", showingRouter.controller.ReplaceMovieSchedule)
	}
}
