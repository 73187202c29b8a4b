package movies

import (
	"time"

	"github.com/google/uuid"
)

// Movie is a film in the catalog. Duration drives showing end times.
type Movie struct {
	ID              uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title           string     `json:"title" gorm:"not null;size:255;index"`
	Description     string     `json:"description" gorm:"type:text"`
	DurationMinutes int        `json:"duration_minutes" gorm:"not null;check:duration_minutes > 0"`
	Genre           string     `json:"genre" gorm:"size:100;index"`
	Rating          string     `json:"rating" gorm:"size:10"`
	PosterURL       string     `json:"poster_url" gorm:"size:500"`
	ReleaseDate     *time.Time `json:"release_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (Movie) TableName() string {
	return "movies"
}

// ShowingSummary is the slice of showing data the movie detail view needs.
// Declared here so the movies package does not depend on the showings package.
type ShowingSummary struct {
	ID        string    `json:"id"`
	ScreenID  string    `json:"screen_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// ShowingProvider supplies upcoming showings for a movie. Implemented by an
// adapter over the showings service to avoid a circular dependency.
type ShowingProvider interface {
	GetUpcomingByMovie(movieID uuid.UUID, limit int) ([]ShowingSummary, error)
}

type CreateMovieRequest struct {
	Title           string     `json:"title" binding:"required,min=1,max=255"`
	Description     string     `json:"description" binding:"max=5000"`
	DurationMinutes int        `json:"duration_minutes" binding:"required,min=1,max=600"`
	Genre           string     `json:"genre" binding:"max=100"`
	Rating          string     `json:"rating" binding:"max=10"`
	PosterURL       string     `json:"poster_url" binding:"omitempty,url,max=500"`
	ReleaseDate     *time.Time `json:"release_date"`
}

type UpdateMovieRequest struct {
	Title           *string    `json:"title" binding:"omitempty,min=1,max=255"`
	Description     *string    `json:"description" binding:"omitempty,max=5000"`
	DurationMinutes *int       `json:"duration_minutes" binding:"omitempty,min=1,max=600"`
	Genre           *string    `json:"genre" binding:"omitempty,max=100"`
	Rating          *string    `json:"rating" binding:"omitempty,max=10"`
	PosterURL       *string    `json:"poster_url" binding:"omitempty,url,max=500"`
	ReleaseDate     *time.Time `json:"release_date"`
}

type MovieListQuery struct {
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
	Genre  string `form:"genre"`
	Search string `form:"search"`
}

type MovieResponse struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	DurationMinutes int              `json:"duration_minutes"`
	Genre           string           `json:"genre"`
	Rating          string           `json:"rating"`
	PosterURL       string           `json:"poster_url"`
	ReleaseDate     *time.Time       `json:"release_date,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	Showings        []ShowingSummary `json:"showings,omitempty"`
}

type PaginatedMovies struct {
	Movies     []MovieResponse `json:"movies"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

func (m *Movie) ToResponse() MovieResponse {
	return MovieResponse{
		ID:              m.ID.String(),
		Title:           m.Title,
		Description:     m.Description,
		DurationMinutes: m.DurationMinutes,
		Genre:           m.Genre,
		Rating:          m.Rating,
		PosterURL:       m.PosterURL,
		ReleaseDate:     m.ReleaseDate,
		CreatedAt:       m.CreatedAt,
	}
}
