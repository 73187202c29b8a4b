package showings

import (
	"context"
	"testing"
	"time"

	"cinebook/internal/movies"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, showing *Showing) error {
	args := m.Called(ctx, showing)
	return args.Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Showing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Showing), args.Error(1)
}

func (m *mockRepository) GetFutureByMovie(ctx context.Context, movieID uuid.UUID, limit int) ([]Showing, error) {
	args := m.Called(ctx, movieID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Showing), args.Error(1)
}

func (m *mockRepository) FindOverlapping(ctx context.Context, screenID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]Showing, error) {
	args := m.Called(ctx, screenID, start, end, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Showing), args.Error(1)
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRepository) ApplySchedule(ctx context.Context, toCreate []Showing, toUpdate []Showing, toDeleteIDs []uuid.UUID) error {
	args := m.Called(ctx, toCreate, toUpdate, toDeleteIDs)
	return args.Error(0)
}

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) GetByID(ctx context.Context, id uuid.UUID) (*movies.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*movies.Movie), args.Error(1)
}

type mockBookingProvider struct {
	mock.Mock
}

func (m *mockBookingProvider) CountLiveByShowing(showingID uuid.UUID) (int64, error) {
	args := m.Called(showingID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingProvider) GetClaimedSeatIDs(showingID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(showingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func TestCreateShowing_RejectsOverlap(t *testing.T) {
	repo := new(mockRepository)
	catalog := new(mockCatalog)
	svc := NewService(repo, catalog)

	movieID := uuid.New()
	screenID := uuid.New()
	start := time.Now().Add(24 * time.Hour)

	catalog.On("GetByID", mock.Anything, movieID).
		Return(&movies.Movie{ID: movieID, DurationMinutes: 120}, nil)
	repo.On("FindOverlapping", mock.Anything, screenID, start, start.Add(120*time.Minute), (*uuid.UUID)(nil)).
		Return([]Showing{{ID: uuid.New()}}, nil)

	_, err := svc.CreateShowing(context.Background(), &CreateShowingRequest{
		MovieID:   movieID.String(),
		ScreenID:  screenID.String(),
		StartTime: start,
	})
	assert.ErrorIs(t, err, ErrShowingOverlap)
}

func TestCreateShowing_DerivesEndTimeFromDuration(t *testing.T) {
	repo := new(mockRepository)
	catalog := new(mockCatalog)
	svc := NewService(repo, catalog)

	movieID := uuid.New()
	screenID := uuid.New()
	start := time.Now().Add(24 * time.Hour).Truncate(time.Minute)

	catalog.On("GetByID", mock.Anything, movieID).
		Return(&movies.Movie{ID: movieID, DurationMinutes: 95}, nil)
	repo.On("FindOverlapping", mock.Anything, screenID, start, start.Add(95*time.Minute), (*uuid.UUID)(nil)).
		Return([]Showing{}, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*showings.Showing")).
		Run(func(args mock.Arguments) {
			showing := args.Get(1).(*Showing)
			assert.Equal(t, start.Add(95*time.Minute), showing.EndTime)
		}).
		Return(nil)

	resp, err := svc.CreateShowing(context.Background(), &CreateShowingRequest{
		MovieID:   movieID.String(),
		ScreenID:  screenID.String(),
		StartTime: start,
	})
	require.NoError(t, err)
	assert.Equal(t, start.Add(95*time.Minute), resp.EndTime)
}

func TestReplaceMovieSchedule_KeepsMatchingShowings(t *testing.T) {
	repo := new(mockRepository)
	catalog := new(mockCatalog)
	provider := new(mockBookingProvider)

	svc := NewService(repo, catalog)
	svc.SetBookingProvider(provider)

	movieID := uuid.New()
	screenID := uuid.New()
	start := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	keptID := uuid.New()

	catalog.On("GetByID", mock.Anything, movieID).
		Return(&movies.Movie{ID: movieID, DurationMinutes: 100}, nil)
	repo.On("GetFutureByMovie", mock.Anything, movieID, 0).
		Return([]Showing{{
			ID:        keptID,
			ScreenID:  screenID,
			StartTime: start,
			EndTime:   start.Add(100 * time.Minute),
			MovieID:   movieID,
		}}, nil).Once()

	price := 1200
	var capturedUpdate []Showing
	repo.On("ApplySchedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			assert.Empty(t, args.Get(1))
			capturedUpdate = args.Get(2).([]Showing)
			assert.Empty(t, args.Get(3))
		}).
		Return(nil)
	repo.On("GetFutureByMovie", mock.Anything, movieID, 0).
		Return([]Showing{}, nil)

	_, err := svc.ReplaceMovieSchedule(context.Background(), movieID, &ReplaceScheduleRequest{
		Showings: []ScheduleEntry{
			{ScreenID: screenID.String(), StartTime: start, UniformPrice: &price},
		},
	})
	require.NoError(t, err)

	// The matching showing keeps its ID, its bookings stay attached.
	require.Len(t, capturedUpdate, 1)
	assert.Equal(t, keptID, capturedUpdate[0].ID)
	assert.Equal(t, &price, capturedUpdate[0].UniformPrice)
	provider.AssertNotCalled(t, "CountLiveByShowing", mock.Anything)
}

func TestReplaceMovieSchedule_RejectsRemovingBookedShowing(t *testing.T) {
	repo := new(mockRepository)
	catalog := new(mockCatalog)
	provider := new(mockBookingProvider)

	svc := NewService(repo, catalog)
	svc.SetBookingProvider(provider)

	movieID := uuid.New()
	bookedID := uuid.New()
	start := time.Now().Add(48 * time.Hour)

	catalog.On("GetByID", mock.Anything, movieID).
		Return(&movies.Movie{ID: movieID, DurationMinutes: 100}, nil)
	repo.On("GetFutureByMovie", mock.Anything, movieID, 0).
		Return([]Showing{{
			ID:        bookedID,
			ScreenID:  uuid.New(),
			StartTime: start,
			MovieID:   movieID,
		}}, nil)
	provider.On("CountLiveByShowing", bookedID).Return(int64(3), nil)

	// Empty schedule would remove the booked showing.
	_, err := svc.ReplaceMovieSchedule(context.Background(), movieID, &ReplaceScheduleRequest{
		Showings: []ScheduleEntry{},
	})
	assert.ErrorIs(t, err, ErrShowingHasBookings)
	repo.AssertNotCalled(t, "ApplySchedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReplaceMovieSchedule_RemovesUnbookedShowing(t *testing.T) {
	repo := new(mockRepository)
	catalog := new(mockCatalog)
	provider := new(mockBookingProvider)

	svc := NewService(repo, catalog)
	svc.SetBookingProvider(provider)

	movieID := uuid.New()
	staleID := uuid.New()
	start := time.Now().Add(48 * time.Hour)

	catalog.On("GetByID", mock.Anything, movieID).
		Return(&movies.Movie{ID: movieID, DurationMinutes: 100}, nil)
	repo.On("GetFutureByMovie", mock.Anything, movieID, 0).
		Return([]Showing{{
			ID:        staleID,
			ScreenID:  uuid.New(),
			StartTime: start,
			MovieID:   movieID,
		}}, nil).Once()
	provider.On("CountLiveByShowing", staleID).Return(int64(0), nil)
	repo.On("ApplySchedule", mock.Anything, mock.Anything, mock.Anything, []uuid.UUID{staleID}).
		Return(nil)
	repo.On("GetFutureByMovie", mock.Anything, movieID, 0).
		Return([]Showing{}, nil)

	_, err := svc.ReplaceMovieSchedule(context.Background(), movieID, &ReplaceScheduleRequest{
		Showings: []ScheduleEntry{},
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDeleteShowing_GuardedByLiveBookings(t *testing.T) {
	repo := new(mockRepository)
	catalog := new(mockCatalog)
	provider := new(mockBookingProvider)

	svc := NewService(repo, catalog)
	svc.SetBookingProvider(provider)

	showingID := uuid.New()
	repo.On("GetByID", mock.Anything, showingID).
		Return(&Showing{ID: showingID, MovieID: uuid.New()}, nil)
	provider.On("CountLiveByShowing", showingID).Return(int64(1), nil)

	err := svc.DeleteShowing(context.Background(), showingID)
	assert.ErrorIs(t, err, ErrShowingHasBookings)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
