package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds database constraints the ORM migration cannot
// express, most importantly the storage-level backstop against double
// booking a seat for a showing.
func MigrateConstraints(db *gorm.DB) error {
	// A seat may appear at most once per showing among seat rows that have
	// not been released by cancellation. This guards the booking transaction
	// against write skew regardless of isolation level.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uniq_live_seat_per_showing
		ON booking_seats (showing_id, seat_id)
		WHERE NOT released;
	`).Error
	if err != nil {
		return err
	}

	// Index for booked-seat availability queries
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_booking_seats_showing
		ON booking_seats (showing_id);
	`).Error
	if err != nil {
		return err
	}

	// Index for showing overlap checks per screen
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_showings_screen_start
		ON showings (screen_id, start_time);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
