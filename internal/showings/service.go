package showings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinebook/internal/movies"
	"cinebook/internal/shared/constants"
	"cinebook/pkg/cache"
	"cinebook/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrShowingOverlap     = errors.New("showing overlaps an existing showing on this screen")
	ErrShowingHasBookings = errors.New("showing has live bookings")
	ErrShowingInPast      = errors.New("showing start time is in the past")
)

// MovieCatalog supplies movie records. Satisfied by movies.Repository.
type MovieCatalog interface {
	GetByID(ctx context.Context, id uuid.UUID) (*movies.Movie, error)
}

type Service interface {
	SetBookingProvider(provider BookingProvider)
	SetCacheService(cacheService cache.Service)

	CreateShowing(ctx context.Context, req *CreateShowingRequest) (*ShowingResponse, error)
	GetShowingByID(ctx context.Context, id uuid.UUID) (*ShowingResponse, error)
	GetBookedSeats(ctx context.Context, showingID uuid.UUID) (*BookedSeatsResponse, error)
	GetUpcomingByMovie(ctx context.Context, movieID uuid.UUID, limit int) ([]ShowingResponse, error)
	ReplaceMovieSchedule(ctx context.Context, movieID uuid.UUID, req *ReplaceScheduleRequest) ([]ShowingResponse, error)
	DeleteShowing(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo            Repository
	catalog         MovieCatalog
	bookingProvider BookingProvider
	cacheService    cache.Service
}

func NewService(repo Repository, catalog MovieCatalog) Service {
	return &service{
		repo:    repo,
		catalog: catalog,
	}
}

func (s *service) SetBookingProvider(provider BookingProvider) {
	s.bookingProvider = provider
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) invalidateScheduleCache(ctx context.Context, movieID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	pattern := constants.PATTERN_INVALIDATE_SHOWING_BY_MOVIE + movieID.String() + "*"
	if err := s.cacheService.DeletePattern(ctx, pattern); err != nil {
		logger.Warn("failed to invalidate showing cache", "pattern", pattern, "error", err)
	}
}

func (s *service) CreateShowing(ctx context.Context, req *CreateShowingRequest) (*ShowingResponse, error) {
	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, movies.ErrMovieNotFound
	}
	screenID, err := uuid.Parse(req.ScreenID)
	if err != nil {
		return nil, fmt.Errorf("invalid screen id: %w", err)
	}

	if req.StartTime.Before(time.Now()) {
		return nil, ErrShowingInPast
	}

	movie, err := s.catalog.GetByID(ctx, movieID)
	if err != nil {
		return nil, err
	}

	endTime := req.StartTime.Add(time.Duration(movie.DurationMinutes) * time.Minute)

	overlapping, err := s.repo.FindOverlapping(ctx, screenID, req.StartTime, endTime, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check overlap: %w", err)
	}
	if len(overlapping) > 0 {
		return nil, ErrShowingOverlap
	}

	showing := &Showing{
		StartTime:    req.StartTime,
		EndTime:      endTime,
		UniformPrice: req.UniformPrice,
		ScreenID:     screenID,
		MovieID:      movieID,
	}

	if err := s.repo.Create(ctx, showing); err != nil {
		return nil, fmt.Errorf("failed to create showing: %w", err)
	}

	s.invalidateScheduleCache(ctx, movieID)

	resp := showing.ToResponse()
	return &resp, nil
}

func (s *service) GetShowingByID(ctx context.Context, id uuid.UUID) (*ShowingResponse, error) {
	showing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := showing.ToResponse()
	return &resp, nil
}

// GetBookedSeats returns the seat IDs currently claimed by live bookings for
// the showing. The booking transaction re-checks on write, so a short cache
// window is safe.
func (s *service) GetBookedSeats(ctx context.Context, showingID uuid.UUID) (*BookedSeatsResponse, error) {
	if _, err := s.repo.GetByID(ctx, showingID); err != nil {
		return nil, err
	}

	if s.bookingProvider == nil {
		return nil, errors.New("booking provider not available")
	}

	cacheKey := constants.BuildShowingSeatStateKey(showingID.String())
	if s.cacheService != nil {
		var cached BookedSeatsResponse
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	seatIDs, err := s.bookingProvider.GetClaimedSeatIDs(showingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get claimed seats: %w", err)
	}

	ids := make([]string, len(seatIDs))
	for i, id := range seatIDs {
		ids[i] = id.String()
	}

	resp := &BookedSeatsResponse{
		ShowingID: showingID.String(),
		SeatIDs:   ids,
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, resp, constants.TTL_SHOWING_SEAT_STATE); err != nil {
			logger.Warn("failed to cache seat state", "key", cacheKey, "error", err)
		}
	}

	return resp, nil
}

func (s *service) GetUpcomingByMovie(ctx context.Context, movieID uuid.UUID, limit int) ([]ShowingResponse, error) {
	showings, err := s.repo.GetFutureByMovie(ctx, movieID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get showings: %w", err)
	}

	responses := make([]ShowingResponse, len(showings))
	for i := range showings {
		responses[i] = showings[i].ToResponse()
	}
	return responses, nil
}

// ReplaceMovieSchedule diffs the submitted schedule against the movie's
// existing future showings, keyed by (screen, start time). Matching showings
// keep their IDs, so their bookings are untouched. A showing that would be
// removed is rejected if it has live bookings.
func (s *service) ReplaceMovieSchedule(ctx context.Context, movieID uuid.UUID, req *ReplaceScheduleRequest) ([]ShowingResponse, error) {
	movie, err := s.catalog.GetByID(ctx, movieID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetFutureByMovie(ctx, movieID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load current schedule: %w", err)
	}

	type scheduleKey struct {
		screenID uuid.UUID
		start    int64
	}

	existingByKey := make(map[scheduleKey]*Showing, len(existing))
	for i := range existing {
		key := scheduleKey{existing[i].ScreenID, existing[i].StartTime.Unix()}
		existingByKey[key] = &existing[i]
	}

	duration := time.Duration(movie.DurationMinutes) * time.Minute

	var toCreate, toUpdate []Showing
	seen := make(map[scheduleKey]bool, len(req.Showings))

	for _, entry := range req.Showings {
		screenID, err := uuid.Parse(entry.ScreenID)
		if err != nil {
			return nil, fmt.Errorf("invalid screen id %q", entry.ScreenID)
		}

		key := scheduleKey{screenID, entry.StartTime.Unix()}
		if seen[key] {
			return nil, fmt.Errorf("duplicate schedule entry for screen %s at %s", entry.ScreenID, entry.StartTime)
		}
		seen[key] = true

		if current, ok := existingByKey[key]; ok {
			updated := *current
			updated.UniformPrice = entry.UniformPrice
			updated.EndTime = current.StartTime.Add(duration)
			toUpdate = append(toUpdate, updated)
			continue
		}

		if entry.StartTime.Before(time.Now()) {
			return nil, ErrShowingInPast
		}

		toCreate = append(toCreate, Showing{
			StartTime:    entry.StartTime,
			EndTime:      entry.StartTime.Add(duration),
			UniformPrice: entry.UniformPrice,
			ScreenID:     screenID,
			MovieID:      movieID,
		})
	}

	var toDeleteIDs []uuid.UUID
	for key, showing := range existingByKey {
		if seen[key] {
			continue
		}
		if s.bookingProvider != nil {
			count, err := s.bookingProvider.CountLiveByShowing(showing.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to check bookings for showing %s: %w", showing.ID, err)
			}
			if count > 0 {
				return nil, fmt.Errorf("%w: showing %s", ErrShowingHasBookings, showing.ID)
			}
		}
		toDeleteIDs = append(toDeleteIDs, showing.ID)
	}

	for i := range toCreate {
		overlapping, err := s.repo.FindOverlapping(ctx, toCreate[i].ScreenID, toCreate[i].StartTime, toCreate[i].EndTime, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to check overlap: %w", err)
		}
		for _, other := range overlapping {
			if isScheduledForRemoval(other.ID, toDeleteIDs) {
				continue
			}
			return nil, ErrShowingOverlap
		}
	}

	if err := s.repo.ApplySchedule(ctx, toCreate, toUpdate, toDeleteIDs); err != nil {
		return nil, fmt.Errorf("failed to apply schedule: %w", err)
	}

	s.invalidateScheduleCache(ctx, movieID)

	return s.GetUpcomingByMovie(ctx, movieID, 0)
}

func (s *service) DeleteShowing(ctx context.Context, id uuid.UUID) error {
	showing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if s.bookingProvider != nil {
		count, err := s.bookingProvider.CountLiveByShowing(id)
		if err != nil {
			return fmt.Errorf("failed to check bookings: %w", err)
		}
		if count > 0 {
			return ErrShowingHasBookings
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateScheduleCache(ctx, showing.MovieID)
	return nil
}

func isScheduledForRemoval(id uuid.UUID, toDeleteIDs []uuid.UUID) bool {
	for _, deleteID := range toDeleteIDs {
		if deleteID == id {
			return true
		}
	}
	return false
}
