package bookings

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// CreateBookingTx persists the booking, its seats and its payment in one
	// transaction, re-checking seat availability under a showing-row lock.
	CreateBookingTx(ctx context.Context, booking *Booking) error

	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*Booking, error)
	ReferenceExists(ctx context.Context, reference string) (bool, error)
	GetClaimedSeatIDs(ctx context.Context, showingID uuid.UUID) ([]uuid.UUID, error)
	CountLiveByShowing(ctx context.Context, showingID uuid.UUID) (int64, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, page, limit int) ([]Booking, int64, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateBookingTx(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the showing row. This serializes booking attempts per showing
		// so the availability re-check below cannot race another writer.
		var lockedID uuid.UUID
		err := tx.Raw("SELECT id FROM showings WHERE id = ? FOR UPDATE", booking.ShowingID).
			Scan(&lockedID).Error
		if err != nil {
			return err
		}

		seatIDs := make([]uuid.UUID, len(booking.Seats))
		for i := range booking.Seats {
			seatIDs[i] = booking.Seats[i].SeatID
		}

		claimed, err := r.claimedAmong(tx, booking.ShowingID, seatIDs)
		if err != nil {
			return err
		}
		if len(claimed) > 0 {
			return &SeatConflictError{ShowingID: booking.ShowingID, SeatIDs: claimed}
		}

		if err := tx.Create(booking).Error; err != nil {
			return r.mapUniqueViolation(err, booking)
		}
		return nil
	})
}

// claimedAmong returns which of the given seats are held by a live booking
// for the showing.
func (r *repository) claimedAmong(tx *gorm.DB, showingID uuid.UUID, seatIDs []uuid.UUID) ([]uuid.UUID, error) {
	var claimed []uuid.UUID
	err := tx.Table("booking_seats").
		Select("booking_seats.seat_id").
		Joins("JOIN bookings ON bookings.id = booking_seats.booking_id").
		Where("booking_seats.showing_id = ?", showingID).
		Where("booking_seats.seat_id IN ?", seatIDs).
		Where("booking_seats.released = ?", false).
		Where("bookings.status = ?", StatusConfirmed).
		Scan(&claimed).Error
	return claimed, err
}

// mapUniqueViolation converts storage-level uniqueness failures into domain
// errors. The partial unique index on booking_seats is the backstop for seat
// races the row lock should already prevent.
func (r *repository) mapUniqueViolation(err error, booking *Booking) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	isDuplicate := errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(msg, "duplicate key value")
	if !isDuplicate {
		return err
	}

	switch {
	case strings.Contains(msg, "uniq_live_seat_per_showing"):
		seatIDs := make([]uuid.UUID, len(booking.Seats))
		for i := range booking.Seats {
			seatIDs[i] = booking.Seats[i].SeatID
		}
		return &SeatConflictError{ShowingID: booking.ShowingID, SeatIDs: seatIDs}
	case strings.Contains(msg, "booking_reference"):
		return ErrReferenceExhausted
	case strings.Contains(msg, "idempotency_key"):
		return ErrIdempotencyKeyReused
	}
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Seats").
		Preload("Seats.Seat").
		Preload("Payment").
		Preload("Showing").
		Preload("Showing.Movie").
		Preload("Showing.Screen").
		Preload("Showing.Screen.Cinema").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByIdempotencyKey(ctx context.Context, key string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Seats").
		Preload("Seats.Seat").
		Preload("Payment").
		Where("idempotency_key = ?", key).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("booking_reference = ?", reference).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) GetClaimedSeatIDs(ctx context.Context, showingID uuid.UUID) ([]uuid.UUID, error) {
	var seatIDs []uuid.UUID
	err := r.db.WithContext(ctx).
		Table("booking_seats").
		Select("booking_seats.seat_id").
		Joins("JOIN bookings ON bookings.id = booking_seats.booking_id").
		Where("booking_seats.showing_id = ?", showingID).
		Where("booking_seats.released = ?", false).
		Where("bookings.status = ?", StatusConfirmed).
		Scan(&seatIDs).Error
	return seatIDs, err
}

func (r *repository) CountLiveByShowing(ctx context.Context, showingID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("showing_id = ? AND status = ?", showingID, StatusConfirmed).
		Count(&count).Error
	return count, err
}

func (r *repository) GetUserBookings(ctx context.Context, userID uuid.UUID, page, limit int) ([]Booking, int64, error) {
	db := r.db.WithContext(ctx).Model(&Booking{}).Where("user_id = ?", userID)

	var totalCount int64
	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var bookings []Booking
	err := db.
		Preload("Seats").
		Preload("Seats.Seat").
		Preload("Payment").
		Preload("Showing").
		Preload("Showing.Movie").
		Preload("Showing.Screen").
		Preload("Showing.Screen.Cinema").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}
	return bookings, totalCount, nil
}

// CancelBooking flips the booking to CANCELLED, releases its seat claims and
// marks the payment refunded, all in one transaction.
func (r *repository) CancelBooking(ctx context.Context, bookingID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := tx.NowFunc()

		result := tx.Model(&Booking{}).
			Where("id = ? AND status = ?", bookingID, StatusConfirmed).
			Updates(map[string]interface{}{
				"status":       StatusCancelled,
				"cancelled_at": now,
				"updated_at":   now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrBookingCancelled
		}

		err := tx.Model(&BookingSeat{}).
			Where("booking_id = ?", bookingID).
			Update("released", true).Error
		if err != nil {
			return err
		}

		return tx.Model(&Payment{}).
			Where("booking_id = ? AND status IN ?", bookingID,
				[]PaymentStatus{PaymentPending, PaymentCompleted}).
			Updates(map[string]interface{}{
				"status":     PaymentRefunded,
				"updated_at": now,
			}).Error
	})
}
