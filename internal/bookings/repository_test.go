package bookings

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockedRepository(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return NewRepository(db), mock
}

func newTariffBooking(showingID, seatID uuid.UUID) *Booking {
	return &Booking{
		BookingReference: "ABC123",
		UserID:           uuid.New(),
		ShowingID:        showingID,
		TotalPrice:       1800,
		Status:           StatusConfirmed,
		Seats: []BookingSeat{
			{ShowingID: showingID, SeatID: seatID, TicketType: TicketGeneral, Price: 1800},
		},
	}
}

func TestCreateBookingTx_ConflictAbortsBeforeInsert(t *testing.T) {
	repo, mock := newMockedRepository(t)

	showingID := uuid.New()
	seatID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM showings WHERE id = \$1 FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(showingID.String()))
	mock.ExpectQuery(`SELECT booking_seats\.seat_id FROM "booking_seats" JOIN bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id"}).AddRow(seatID.String()))
	mock.ExpectRollback()

	err := repo.CreateBookingTx(context.Background(), newTariffBooking(showingID, seatID))

	var conflict *SeatConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []uuid.UUID{seatID}, conflict.SeatIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingTx_BackstopViolationRollsBackBooking(t *testing.T) {
	repo, mock := newMockedRepository(t)

	showingID := uuid.New()
	seatID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM showings WHERE id = \$1 FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(showingID.String()))
	mock.ExpectQuery(`SELECT booking_seats\.seat_id FROM "booking_seats" JOIN bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id"}))
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))
	mock.ExpectQuery(`INSERT INTO "booking_seats"`).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "uniq_live_seat_per_showing" (SQLSTATE 23505)`))
	mock.ExpectRollback()

	err := repo.CreateBookingTx(context.Background(), newTariffBooking(showingID, seatID))

	// The booking row insert above must not survive the failed seat insert.
	var conflict *SeatConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []uuid.UUID{seatID}, conflict.SeatIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}
