package movies

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"cinebook/internal/shared/constants"
	"cinebook/pkg/cache"
	"cinebook/pkg/logger"

	"github.com/google/uuid"
)

var ErrMovieHasShowings = errors.New("movie has scheduled showings")

type Service interface {
	SetShowingProvider(provider ShowingProvider)
	SetCacheService(cacheService cache.Service)

	CreateMovie(ctx context.Context, req *CreateMovieRequest) (*MovieResponse, error)
	GetMovieByID(ctx context.Context, id uuid.UUID) (*MovieResponse, error)
	GetAllMovies(ctx context.Context, query MovieListQuery) (*PaginatedMovies, error)
	UpdateMovie(ctx context.Context, id uuid.UUID, req *UpdateMovieRequest) (*MovieResponse, error)
	DeleteMovie(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo            Repository
	showingProvider ShowingProvider
	cacheService    cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetShowingProvider(provider ShowingProvider) {
	s.showingProvider = provider
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) setCache(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Set(ctx, key, value, ttl); err != nil {
		logger.Warn("failed to cache movie data", "key", key, "error", err)
	}
}

func (s *service) getCache(ctx context.Context, key string, dest interface{}) error {
	if s.cacheService == nil {
		return cache.ErrCacheMiss
	}
	return s.cacheService.Get(ctx, key, dest)
}

func (s *service) invalidateMovieCache(ctx context.Context, movieID *uuid.UUID) {
	if s.cacheService == nil {
		return
	}

	patterns := []string{constants.PATTERN_INVALIDATE_MOVIES_ALL}
	if movieID != nil {
		patterns = append(patterns, constants.PATTERN_INVALIDATE_MOVIE_DETAIL+movieID.String()+"*")
	}

	for _, pattern := range patterns {
		if err := s.cacheService.DeletePattern(ctx, pattern); err != nil {
			logger.Warn("failed to invalidate movie cache", "pattern", pattern, "error", err)
		}
	}
}

func (s *service) CreateMovie(ctx context.Context, req *CreateMovieRequest) (*MovieResponse, error) {
	movie := &Movie{
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Genre:           req.Genre,
		Rating:          req.Rating,
		PosterURL:       req.PosterURL,
		ReleaseDate:     req.ReleaseDate,
	}

	if err := s.repo.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}

	s.invalidateMovieCache(ctx, nil)

	response := movie.ToResponse()
	return &response, nil
}

func (s *service) GetMovieByID(ctx context.Context, id uuid.UUID) (*MovieResponse, error) {
	cacheKey := constants.BuildMovieDetailKey(id.String())

	var cached MovieResponse
	if err := s.getCache(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	movie, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := movie.ToResponse()
	s.populateShowings(&response, id)

	s.setCache(ctx, cacheKey, response, constants.TTL_MOVIE_DETAIL)

	return &response, nil
}

func (s *service) GetAllMovies(ctx context.Context, query MovieListQuery) (*PaginatedMovies, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}
	if query.Limit > 100 {
		query.Limit = 100
	}

	cacheKey := constants.BuildMovieListKey(query.Page, query.Limit, query.Genre)

	// Search results are not cached, the key space would be unbounded.
	if query.Search == "" {
		var cached PaginatedMovies
		if err := s.getCache(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	movies, totalCount, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get movies: %w", err)
	}

	responses := make([]MovieResponse, len(movies))
	for i := range movies {
		responses[i] = movies[i].ToResponse()
	}

	result := &PaginatedMovies{
		Movies:     responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(query.Limit))),
	}

	if query.Search == "" {
		s.setCache(ctx, cacheKey, result, constants.TTL_MOVIE_LIST)
	}

	return result, nil
}

func (s *service) UpdateMovie(ctx context.Context, id uuid.UUID, req *UpdateMovieRequest) (*MovieResponse, error) {
	updates := make(map[string]interface{})

	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.DurationMinutes != nil {
		updates["duration_minutes"] = *req.DurationMinutes
	}
	if req.Genre != nil {
		updates["genre"] = *req.Genre
	}
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}
	if req.PosterURL != nil {
		updates["poster_url"] = *req.PosterURL
	}
	if req.ReleaseDate != nil {
		updates["release_date"] = *req.ReleaseDate
	}

	if len(updates) == 0 {
		movie, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		response := movie.ToResponse()
		return &response, nil
	}

	updates["updated_at"] = time.Now()

	movie, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	s.invalidateMovieCache(ctx, &id)

	response := movie.ToResponse()
	return &response, nil
}

func (s *service) DeleteMovie(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	// A movie with scheduled future showings cannot be removed.
	if s.showingProvider != nil {
		showings, err := s.showingProvider.GetUpcomingByMovie(id, 1)
		if err != nil {
			return fmt.Errorf("failed to check showings: %w", err)
		}
		if len(showings) > 0 {
			return ErrMovieHasShowings
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateMovieCache(ctx, &id)
	return nil
}

func (s *service) populateShowings(response *MovieResponse, movieID uuid.UUID) {
	if s.showingProvider == nil {
		return
	}

	showings, err := s.showingProvider.GetUpcomingByMovie(movieID, 50)
	if err != nil {
		logger.Warn("failed to load showings for movie", "movie_id", movieID.String(), "error", err)
		return
	}

	response.Showings = showings
}
