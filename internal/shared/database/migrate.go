package database

import (
	"cinebook/internal/bookings"
	"cinebook/internal/cinemas"
	"cinebook/internal/movies"
	"cinebook/internal/showings"
	"cinebook/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&cinemas.Cinema{},
		&cinemas.Screen{},
		&cinemas.Seat{},
		&movies.Movie{},
		&showings.Showing{},
		&bookings.Booking{},
		&bookings.BookingSeat{},
		&bookings.Payment{},
	)
}
