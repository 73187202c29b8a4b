package movies

import (
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles movie catalog routes
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

// SetupRoutes registers all movie routes. Browsing is public, catalog
// management is admin only.
func (movieRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	movies := rg.Group("/movies")
	{
		movies.GET("", movieRouter.controller.ListMovies)
		movies.GET("/:id", movieRouter.controller.GetMovie)

		admin := movies.Group("")
		admin.Use(middleware.JWTAuthWithConfig(movieRouter.config), middleware.RequireAdmin())
		{
			admin.POST("", movieRouter.controller.CreateMovie)
			admin.PUT("/:id", movieRouter.controller.UpdateMovie)
			admin.DELETE("/:id", movieRouter.controller.DeleteMovie)
		}
	}
}
