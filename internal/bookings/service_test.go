package bookings

import (
	"context"
	"testing"
	"time"

	"cinebook/internal/cinemas"
	"cinebook/internal/showings"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) CreateBookingTx(ctx context.Context, booking *Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *mockRepository) GetByIdempotencyKey(ctx context.Context, key string) (*Booking, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *mockRepository) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	args := m.Called(ctx, reference)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) GetClaimedSeatIDs(ctx context.Context, showingID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, showingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *mockRepository) CountLiveByShowing(ctx context.Context, showingID uuid.UUID) (int64, error) {
	args := m.Called(ctx, showingID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepository) GetUserBookings(ctx context.Context, userID uuid.UUID, page, limit int) ([]Booking, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]Booking), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepository) CancelBooking(ctx context.Context, bookingID uuid.UUID) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

type mockShowingGetter struct {
	mock.Mock
}

func (m *mockShowingGetter) GetByID(ctx context.Context, id uuid.UUID) (*showings.Showing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*showings.Showing), args.Error(1)
}

type mockSeatCatalog struct {
	mock.Mock
}

func (m *mockSeatCatalog) GetSeatsByIDs(ctx context.Context, ids []uuid.UUID) ([]cinemas.Seat, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cinemas.Seat), args.Error(1)
}

type fixture struct {
	repo      *mockRepository
	showings  *mockShowingGetter
	seats     *mockSeatCatalog
	svc       Service
	userID    uuid.UUID
	showingID uuid.UUID
	screenID  uuid.UUID
	seatA1    cinemas.Seat
	seatA2    cinemas.Seat
	seatB1    cinemas.Seat
}

func newFixture(uniformPrice *int) *fixture {
	f := &fixture{
		repo:      new(mockRepository),
		showings:  new(mockShowingGetter),
		seats:     new(mockSeatCatalog),
		userID:    uuid.New(),
		showingID: uuid.New(),
		screenID:  uuid.New(),
	}
	f.svc = NewService(f.repo, f.showings, f.seats, "test-secret")

	f.seatA1 = cinemas.Seat{ID: uuid.New(), Row: "A", Column: 1, IsActive: true, ScreenID: f.screenID}
	f.seatA2 = cinemas.Seat{ID: uuid.New(), Row: "A", Column: 2, IsActive: true, ScreenID: f.screenID}
	f.seatB1 = cinemas.Seat{ID: uuid.New(), Row: "B", Column: 1, IsActive: true, ScreenID: f.screenID}

	f.showings.On("GetByID", mock.Anything, f.showingID).Return(&showings.Showing{
		ID:           f.showingID,
		ScreenID:     f.screenID,
		StartTime:    time.Now().Add(24 * time.Hour),
		UniformPrice: uniformPrice,
	}, nil)

	return f
}

func TestCreateBooking_MixedTariffTotal(t *testing.T) {
	f := newFixture(nil)

	f.seats.On("GetSeatsByIDs", mock.Anything, mock.Anything).
		Return([]cinemas.Seat{f.seatA1, f.seatA2, f.seatB1}, nil)
	f.repo.On("ReferenceExists", mock.Anything, mock.AnythingOfType("string")).
		Return(false, nil)

	var persisted *Booking
	f.repo.On("CreateBookingTx", mock.Anything, mock.AnythingOfType("*bookings.Booking")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*Booking)
		}).
		Return(nil)

	resp, err := f.svc.CreateBooking(context.Background(), f.userID, &CreateBookingRequest{
		ShowingID: f.showingID.String(),
		SeatIDs:   []string{f.seatA1.ID.String(), f.seatA2.ID.String(), f.seatB1.ID.String()},
		SeatTickets: []SeatTicket{
			{SeatID: f.seatA1.ID.String(), TicketType: "GENERAL"},
			{SeatID: f.seatA2.ID.String(), TicketType: "STUDENT"},
			{SeatID: f.seatB1.ID.String(), TicketType: "CHILD"},
		},
	})
	require.NoError(t, err)

	// 1800 + 1600 + 1000
	assert.Equal(t, 4400, resp.TotalPrice)
	assert.Regexp(t, `^[A-Z]{3}[0-9]{3}$`, resp.BookingReference)
	assert.Equal(t, StatusConfirmed, resp.Status)

	require.NotNil(t, persisted)
	require.Len(t, persisted.Seats, 3)
	assert.Equal(t, 1800, persisted.Seats[0].Price)
	assert.Equal(t, 1600, persisted.Seats[1].Price)
	assert.Equal(t, 1000, persisted.Seats[2].Price)
	for _, seat := range persisted.Seats {
		assert.Equal(t, f.showingID, seat.ShowingID)
		assert.False(t, seat.Released)
	}
	require.NotNil(t, persisted.Payment)
	assert.Equal(t, 4400, persisted.Payment.Amount)
	assert.Equal(t, "JPY", persisted.Payment.Currency)
	assert.Equal(t, PaymentPending, persisted.Payment.Status)
}

func TestCreateBooking_UniformPriceOverridesTickets(t *testing.T) {
	uniform := 1200
	f := newFixture(&uniform)

	f.seats.On("GetSeatsByIDs", mock.Anything, mock.Anything).
		Return([]cinemas.Seat{f.seatA1, f.seatA2, f.seatB1}, nil)
	f.repo.On("ReferenceExists", mock.Anything, mock.AnythingOfType("string")).
		Return(false, nil)
	f.repo.On("CreateBookingTx", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.svc.CreateBooking(context.Background(), f.userID, &CreateBookingRequest{
		ShowingID: f.showingID.String(),
		SeatIDs:   []string{f.seatA1.ID.String(), f.seatA2.ID.String(), f.seatB1.ID.String()},
		SeatTickets: []SeatTicket{
			{SeatID: f.seatA1.ID.String(), TicketType: "CHILD"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3600, resp.TotalPrice)
	for _, seat := range resp.Seats {
		assert.Equal(t, 1200, seat.Price)
	}
}

func TestCreateBooking_SeatConflictSurfacesClaimedSeats(t *testing.T) {
	f := newFixture(nil)

	f.seats.On("GetSeatsByIDs", mock.Anything, mock.Anything).
		Return([]cinemas.Seat{f.seatA1}, nil)
	f.repo.On("ReferenceExists", mock.Anything, mock.AnythingOfType("string")).
		Return(false, nil)
	f.repo.On("CreateBookingTx", mock.Anything, mock.Anything).
		Return(&SeatConflictError{ShowingID: f.showingID, SeatIDs: []uuid.UUID{f.seatA1.ID}})

	_, err := f.svc.CreateBooking(context.Background(), f.userID, &CreateBookingRequest{
		ShowingID: f.showingID.String(),
		SeatIDs:   []string{f.seatA1.ID.String()},
		SeatTickets: []SeatTicket{
			{SeatID: f.seatA1.ID.String(), TicketType: "GENERAL"},
		},
	})

	var conflict *SeatConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []uuid.UUID{f.seatA1.ID}, conflict.SeatIDs)
}

func TestCreateBooking_InvalidTicketTypeFailsBeforePersist(t *testing.T) {
	f := newFixture(nil)

	_, err := f.svc.CreateBooking(context.Background(), f.userID, &CreateBookingRequest{
		ShowingID: f.showingID.String(),
		SeatIDs:   []string{f.seatA1.ID.String()},
		SeatTickets: []SeatTicket{
			{SeatID: f.seatA1.ID.String(), TicketType: "SENIOR"},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidTicketType)
	f.repo.AssertNotCalled(t, "CreateBookingTx", mock.Anything, mock.Anything)
}

func TestCreateBooking_MissingTicketTypeRejected(t *testing.T) {
	f := newFixture(nil)

	// Tariff-priced showing, seat A2 has no ticket type.
	_, err := f.svc.CreateBooking(context.Background(), f.userID, &CreateBookingRequest{
		ShowingID: f.showingID.String(),
		SeatIDs:   []string{f.seatA1.ID.String(), f.seatA2.ID.String()},
		SeatTickets: []SeatTicket{
			{SeatID: f.seatA1.ID.String(), TicketType: "GENERAL"},
		},
	})
	assert.ErrorIs(t, err, ErrMissingTicketType)
	f.repo.AssertNotCalled(t, "CreateBookingTx", mock.Anything, mock.Anything)
}

func TestCreateBooking_DuplicateSeatRejected(t *testing.T) {
	f := newFixture(nil)

	_, err := f.svc.CreateBooking(context.Background(), f.userID, &CreateBookingRequest{
		ShowingID: f.showingID.String(),
		SeatIDs:   []string{f.seatA1.ID.String(), f.seatA1.ID.String()},
	})
	assert.ErrorIs(t, err, ErrDuplicateSeat)
	f.repo.AssertNotCalled(t, "CreateBookingTx", mock.Anything, mock.Anything)
}

func TestCreateBooking_SeatFromOtherScreenRejected(t *testing.T) {
	f := newFixture(nil)

	stray := cinemas.Seat{ID: uuid.New(), Row: "A", Column: 1, IsActive: true, ScreenID: uuid.New()}
	f.seats.On("GetSeatsByIDs", mock.Anything, mock.Anything).
		Return([]cinemas.Seat{stray}, nil)

	_, err := f.svc.CreateBooking(context.Background(), f.userID, &CreateBookingRequest{
		ShowingID: f.showingID.String(),
		SeatIDs:   []string{stray.ID.String()},
		SeatTickets: []SeatTicket{
			{SeatID: stray.ID.String(), TicketType: "GENERAL"},
		},
	})
	assert.ErrorIs(t, err, ErrSeatNotOnScreen)
	f.repo.AssertNotCalled(t, "CreateBookingTx", mock.Anything, mock.Anything)
}

func TestCreateBooking_InactiveSeatRejected(t *testing.T) {
	f := newFixture(nil)

	dead := cinemas.Seat{ID: uuid.New(), Row: "A", Column: 1, IsActive: false, ScreenID: f.screenID}
	f.seats.On("GetSeatsByIDs", mock.Anything, mock.Anything).
		Return([]cinemas.Seat{dead}, nil)

	_, err := f.svc.CreateBooking(context.Background(), f.userID, &CreateBookingRequest{
		ShowingID: f.showingID.String(),
		SeatIDs:   []string{dead.ID.String()},
		SeatTickets: []SeatTicket{
			{SeatID: dead.ID.String(), TicketType: "GENERAL"},
		},
	})
	assert.ErrorIs(t, err, ErrSeatInactive)
}

func TestCreateBooking_PastShowingRejected(t *testing.T) {
	repo := new(mockRepository)
	showingStore := new(mockShowingGetter)
	seats := new(mockSeatCatalog)
	svc := NewService(repo, showingStore, seats, "test-secret")

	showingID := uuid.New()
	seatID := uuid.New()
	showingStore.On("GetByID", mock.Anything, showingID).Return(&showings.Showing{
		ID:        showingID,
		StartTime: time.Now().Add(-time.Hour),
	}, nil)

	_, err := svc.CreateBooking(context.Background(), uuid.New(), &CreateBookingRequest{
		ShowingID: showingID.String(),
		SeatIDs:   []string{seatID.String()},
	})
	assert.ErrorIs(t, err, ErrShowingStarted)
	repo.AssertNotCalled(t, "CreateBookingTx", mock.Anything, mock.Anything)
}

func TestCreateBooking_IdempotentReplayReturnsOriginal(t *testing.T) {
	f := newFixture(nil)

	key := "client-key-1234"
	originalID := uuid.New()
	original := &Booking{
		ID:               originalID,
		BookingReference: "QWE456",
		UserID:           f.userID,
		ShowingID:        f.showingID,
		TotalPrice:       1800,
		Status:           StatusConfirmed,
		IdempotencyKey:   &key,
	}

	f.repo.On("GetByIdempotencyKey", mock.Anything, key).Return(original, nil)
	f.repo.On("GetByID", mock.Anything, originalID).Return(original, nil)

	resp, err := f.svc.CreateBooking(context.Background(), f.userID, &CreateBookingRequest{
		ShowingID:      f.showingID.String(),
		SeatIDs:        []string{f.seatA1.ID.String()},
		IdempotencyKey: key,
	})
	require.NoError(t, err)
	assert.Equal(t, "QWE456", resp.BookingReference)
	f.repo.AssertNotCalled(t, "CreateBookingTx", mock.Anything, mock.Anything)
}

func TestCreateBooking_IdempotencyKeyOfOtherUserRejected(t *testing.T) {
	f := newFixture(nil)

	key := "client-key-1234"
	original := &Booking{
		ID:        uuid.New(),
		UserID:    uuid.New(), // someone else
		ShowingID: f.showingID,
	}
	f.repo.On("GetByIdempotencyKey", mock.Anything, key).Return(original, nil)

	_, err := f.svc.CreateBooking(context.Background(), f.userID, &CreateBookingRequest{
		ShowingID:      f.showingID.String(),
		SeatIDs:        []string{f.seatA1.ID.String()},
		IdempotencyKey: key,
	})
	assert.ErrorIs(t, err, ErrIdempotencyKeyReused)
}

func TestCancelBooking_ReleasesSeats(t *testing.T) {
	f := newFixture(nil)

	bookingID := uuid.New()
	f.repo.On("GetByID", mock.Anything, bookingID).Return(&Booking{
		ID:        bookingID,
		UserID:    f.userID,
		ShowingID: f.showingID,
		Status:    StatusConfirmed,
	}, nil)
	f.repo.On("CancelBooking", mock.Anything, bookingID).Return(nil)

	err := f.svc.CancelBooking(context.Background(), f.userID, false, bookingID)
	require.NoError(t, err)
	f.repo.AssertCalled(t, "CancelBooking", mock.Anything, bookingID)
}

func TestCancelBooking_OnlyOwnerOrAdmin(t *testing.T) {
	f := newFixture(nil)

	bookingID := uuid.New()
	owner := uuid.New()
	f.repo.On("GetByID", mock.Anything, bookingID).Return(&Booking{
		ID:     bookingID,
		UserID: owner,
		Status: StatusConfirmed,
	}, nil)

	err := f.svc.CancelBooking(context.Background(), f.userID, false, bookingID)
	assert.ErrorIs(t, err, ErrBookingNotOwned)

	f.repo.On("CancelBooking", mock.Anything, bookingID).Return(nil)
	err = f.svc.CancelBooking(context.Background(), f.userID, true, bookingID)
	assert.NoError(t, err)
}

func TestCancelBooking_AlreadyCancelled(t *testing.T) {
	f := newFixture(nil)

	bookingID := uuid.New()
	f.repo.On("GetByID", mock.Anything, bookingID).Return(&Booking{
		ID:     bookingID,
		UserID: f.userID,
		Status: StatusCancelled,
	}, nil)

	err := f.svc.CancelBooking(context.Background(), f.userID, false, bookingID)
	assert.ErrorIs(t, err, ErrBookingCancelled)
}

func TestGetBooking_SortsSeatsByRowThenColumn(t *testing.T) {
	f := newFixture(nil)

	bookingID := uuid.New()
	b2 := cinemas.Seat{ID: uuid.New(), Row: "B", Column: 2}
	a10 := cinemas.Seat{ID: uuid.New(), Row: "A", Column: 10}
	a2 := cinemas.Seat{ID: uuid.New(), Row: "A", Column: 2}

	f.repo.On("GetByID", mock.Anything, bookingID).Return(&Booking{
		ID:     bookingID,
		UserID: f.userID,
		Status: StatusConfirmed,
		Seats: []BookingSeat{
			{SeatID: b2.ID, Seat: &b2, Price: 1800, TicketType: TicketGeneral},
			{SeatID: a10.ID, Seat: &a10, Price: 1800, TicketType: TicketGeneral},
			{SeatID: a2.ID, Seat: &a2, Price: 1800, TicketType: TicketGeneral},
		},
	}, nil)

	resp, err := f.svc.GetBooking(context.Background(), f.userID, false, bookingID)
	require.NoError(t, err)
	require.Len(t, resp.Seats, 3)
	assert.Equal(t, "A2", resp.Seats[0].Label)
	assert.Equal(t, "A10", resp.Seats[1].Label)
	assert.Equal(t, "B2", resp.Seats[2].Label)
}
