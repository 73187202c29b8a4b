package routes

import (
	"context"
	"net/http"
	"time"

	"cinebook/internal/auth"
	"cinebook/internal/bookings"
	"cinebook/internal/cinemas"
	"cinebook/internal/movies"
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/database"
	"cinebook/internal/showings"
	"cinebook/pkg/cache"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Router wires repositories, services and controllers together and registers
// every route. Cross-package service dependencies are injected here through
// adapters so the domain packages stay cycle-free.
type Router struct {
	config    *config.Config
	db        *database.DB
	publisher bookings.NotificationPublisher

	cacheService   cache.Service
	showingService showings.Service
	bookingService bookings.Service
}

func NewRouter(cfg *config.Config, db *database.DB, publisher bookings.NotificationPublisher) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		publisher: publisher,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.cacheService = cache.NewService(r.db.GetRedisClient())

	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)

		cinemaRepo := cinemas.NewRepository(r.db.GetPostgreSQL())
		movieRepo := movies.NewRepository(r.db.GetPostgreSQL())
		showingRepo := showings.NewRepository(r.db.GetPostgreSQL())
		bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())

		cinemaService := cinemas.NewService(cinemaRepo)

		movieService := movies.NewService(movieRepo)
		movieService.SetCacheService(r.cacheService)

		showingService := showings.NewService(showingRepo, movieRepo)
		showingService.SetCacheService(r.cacheService)
		r.showingService = showingService

		bookingService := bookings.NewService(bookingRepo, showingRepo, cinemaRepo, r.config.QR.Secret)
		bookingService.SetCacheService(r.cacheService)
		if r.publisher != nil {
			bookingService.SetNotificationPublisher(r.publisher)
		}
		r.bookingService = bookingService

		// Cross-package wiring through adapters.
		movieService.SetShowingProvider(&showingProviderAdapter{service: showingService})
		showingService.SetBookingProvider(&bookingProviderAdapter{service: bookingService})

		cinemas.NewRouter(cinemas.NewController(cinemaService), r.config).SetupRoutes(api)
		movies.NewRouter(movies.NewController(movieService), r.config).SetupRoutes(api)
		showings.NewRouter(showings.NewController(showingService), r.config).SetupRoutes(api)
		bookings.NewRouter(bookings.NewController(bookingService), r.config).SetupRoutes(api)
	}
}

func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "cinebook-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "cinebook-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	auth.NewRouter(authController, r.config).SetupRoutes(rg)
}

// showingProviderAdapter narrows the showings service to what the movies
// package needs.
type showingProviderAdapter struct {
	service showings.Service
}

func (a *showingProviderAdapter) GetUpcomingByMovie(movieID uuid.UUID, limit int) ([]movies.ShowingSummary, error) {
	responses, err := a.service.GetUpcomingByMovie(context.Background(), movieID, limit)
	if err != nil {
		return nil, err
	}

	summaries := make([]movies.ShowingSummary, len(responses))
	for i, resp := range responses {
		summaries[i] = movies.ShowingSummary{
			ID:        resp.ID,
			ScreenID:  resp.ScreenID,
			StartTime: resp.StartTime,
			EndTime:   resp.EndTime,
		}
	}
	return summaries, nil
}

// bookingProviderAdapter narrows the bookings service to what the showings
// package needs.
type bookingProviderAdapter struct {
	service bookings.Service
}

func (a *bookingProviderAdapter) CountLiveByShowing(showingID uuid.UUID) (int64, error) {
	return a.service.CountLiveByShowing(context.Background(), showingID)
}

func (a *bookingProviderAdapter) GetClaimedSeatIDs(showingID uuid.UUID) ([]uuid.UUID, error) {
	return a.service.GetClaimedSeatIDs(context.Background(), showingID)
}
