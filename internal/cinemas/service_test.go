package cinemas

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) CreateCinema(ctx context.Context, cinema *Cinema) error {
	args := m.Called(ctx, cinema)
	return args.Error(0)
}

func (m *mockRepository) GetCinemaByID(ctx context.Context, id uuid.UUID) (*Cinema, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Cinema), args.Error(1)
}

func (m *mockRepository) ListCinemas(ctx context.Context) ([]Cinema, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Cinema), args.Error(1)
}

func (m *mockRepository) CreateScreenWithSeats(ctx context.Context, screen *Screen, seats []Seat) error {
	args := m.Called(ctx, screen, seats)
	return args.Error(0)
}

func (m *mockRepository) GetScreenByID(ctx context.Context, id uuid.UUID) (*Screen, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Screen), args.Error(1)
}

func (m *mockRepository) ListScreensByCinema(ctx context.Context, cinemaID uuid.UUID) ([]Screen, error) {
	args := m.Called(ctx, cinemaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Screen), args.Error(1)
}

func (m *mockRepository) GetSeatsByScreen(ctx context.Context, screenID uuid.UUID) ([]Seat, error) {
	args := m.Called(ctx, screenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Seat), args.Error(1)
}

func (m *mockRepository) GetSeatsByIDs(ctx context.Context, ids []uuid.UUID) ([]Seat, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Seat), args.Error(1)
}

func (m *mockRepository) UpdateSeatActive(ctx context.Context, seatID uuid.UUID, active bool) error {
	args := m.Called(ctx, seatID, active)
	return args.Error(0)
}

func TestGridDimensions(t *testing.T) {
	tests := []struct {
		size    ScreenSize
		rows    int
		columns int
	}{
		{ScreenSizeLarge, 10, 20},
		{ScreenSizeMedium, 10, 12},
		{ScreenSizeSmall, 7, 10},
	}

	for _, tt := range tests {
		rows, columns := tt.size.GridDimensions()
		assert.Equal(t, tt.rows, rows)
		assert.Equal(t, tt.columns, columns)
	}
}

func TestCreateScreen_ProvisionsFullGrid(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)

	cinemaID := uuid.New()
	repo.On("GetCinemaByID", mock.Anything, cinemaID).Return(&Cinema{ID: cinemaID}, nil)

	var captured []Seat
	repo.On("CreateScreenWithSeats", mock.Anything, mock.AnythingOfType("*cinemas.Screen"), mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).([]Seat)
		}).
		Return(nil)

	screen, err := svc.CreateScreen(context.Background(), &CreateScreenRequest{
		Number:   "3",
		Size:     "SMALL",
		CinemaID: cinemaID.String(),
	})
	require.NoError(t, err)

	assert.Equal(t, 7, screen.Rows)
	assert.Equal(t, 10, screen.Columns)
	assert.Equal(t, 70, screen.Capacity)
	require.Len(t, captured, 70)

	// First and last seats of the grid.
	assert.Equal(t, "A", captured[0].Row)
	assert.Equal(t, 1, captured[0].Column)
	assert.Equal(t, "G", captured[69].Row)
	assert.Equal(t, 10, captured[69].Column)
	assert.True(t, captured[0].IsActive)

	repo.AssertExpectations(t)
}

func TestCreateScreen_InvalidSize(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)

	_, err := svc.CreateScreen(context.Background(), &CreateScreenRequest{
		Number:   "1",
		Size:     "HUGE",
		CinemaID: uuid.NewString(),
	})
	assert.ErrorIs(t, err, ErrInvalidScreenSize)
}

func TestCreateScreen_CinemaMissing(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)

	cinemaID := uuid.New()
	repo.On("GetCinemaByID", mock.Anything, cinemaID).Return(nil, ErrCinemaNotFound)

	_, err := svc.CreateScreen(context.Background(), &CreateScreenRequest{
		Number:   "1",
		Size:     "LARGE",
		CinemaID: cinemaID.String(),
	})
	assert.ErrorIs(t, err, ErrCinemaNotFound)
}

func TestSeatLabel(t *testing.T) {
	seat := &Seat{Row: "C", Column: 12}
	assert.Equal(t, "C12", seat.Label())
}
