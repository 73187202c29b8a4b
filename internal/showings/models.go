package showings

import (
	"time"

	"cinebook/internal/cinemas"
	"cinebook/internal/movies"

	"github.com/google/uuid"
)

// Showing schedules a movie on a screen. EndTime is derived from the movie
// duration at creation and kept in sync when the schedule is edited.
// UniformPrice, when set, overrides per-ticket-type pricing for every seat.
type Showing struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	StartTime    time.Time `json:"start_time" gorm:"not null;index:idx_showings_screen_start"`
	EndTime      time.Time `json:"end_time" gorm:"not null"`
	UniformPrice *int      `json:"uniform_price,omitempty"`
	ScreenID     uuid.UUID `json:"screen_id" gorm:"type:uuid;not null;index:idx_showings_screen_start"`
	MovieID      uuid.UUID `json:"movie_id" gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Screen *cinemas.Screen `json:"screen,omitempty" gorm:"foreignKey:ScreenID"`
	Movie  *movies.Movie   `json:"movie,omitempty" gorm:"foreignKey:MovieID"`
}

func (Showing) TableName() string {
	return "showings"
}

// BookingProvider exposes the booking facts the showings package needs.
// Implemented by an adapter over the bookings service to avoid a circular
// dependency.
type BookingProvider interface {
	CountLiveByShowing(showingID uuid.UUID) (int64, error)
	GetClaimedSeatIDs(showingID uuid.UUID) ([]uuid.UUID, error)
}

type CreateShowingRequest struct {
	MovieID      string    `json:"movie_id" binding:"required,uuid"`
	ScreenID     string    `json:"screen_id" binding:"required,uuid"`
	StartTime    time.Time `json:"start_time" binding:"required"`
	UniformPrice *int      `json:"uniform_price" binding:"omitempty,min=0"`
}

// ScheduleEntry is one desired showing in a schedule replacement. Entries are
// matched to existing showings by (screen_id, start_time).
type ScheduleEntry struct {
	ScreenID     string    `json:"screen_id" binding:"required,uuid"`
	StartTime    time.Time `json:"start_time" binding:"required"`
	UniformPrice *int      `json:"uniform_price" binding:"omitempty,min=0"`
}

type ReplaceScheduleRequest struct {
	Showings []ScheduleEntry `json:"showings" binding:"required,dive"`
}

type ShowingResponse struct {
	ID           string     `json:"id"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      time.Time  `json:"end_time"`
	UniformPrice *int       `json:"uniform_price,omitempty"`
	ScreenID     string     `json:"screen_id"`
	MovieID      string     `json:"movie_id"`
	MovieTitle   string     `json:"movie_title,omitempty"`
	ScreenNumber string     `json:"screen_number,omitempty"`
	CinemaName   string     `json:"cinema_name,omitempty"`
}

type BookedSeatsResponse struct {
	ShowingID string   `json:"showing_id"`
	SeatIDs   []string `json:"seat_ids"`
}

func (s *Showing) ToResponse() ShowingResponse {
	resp := ShowingResponse{
		ID:           s.ID.String(),
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		UniformPrice: s.UniformPrice,
		ScreenID:     s.ScreenID.String(),
		MovieID:      s.MovieID.String(),
	}
	if s.Movie != nil {
		resp.MovieTitle = s.Movie.Title
	}
	if s.Screen != nil {
		resp.ScreenNumber = s.Screen.Number
		if s.Screen.Cinema != nil {
			resp.CinemaName = s.Screen.Cinema.Name
		}
	}
	return resp
}
