package cinemas

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ScreenSize categorizes an auditorium and fixes its seat-map dimensions.
type ScreenSize string

const (
	ScreenSizeLarge  ScreenSize = "LARGE"
	ScreenSizeMedium ScreenSize = "MEDIUM"
	ScreenSizeSmall  ScreenSize = "SMALL"
)

func (s ScreenSize) IsValid() bool {
	switch s {
	case ScreenSizeLarge, ScreenSizeMedium, ScreenSizeSmall:
		return true
	}
	return false
}

// GridDimensions returns the rows x columns layout for a screen size.
func (s ScreenSize) GridDimensions() (rows, columns int) {
	switch s {
	case ScreenSizeLarge:
		return 10, 20
	case ScreenSizeMedium:
		return 10, 12
	case ScreenSizeSmall:
		return 7, 10
	default:
		return 0, 0
	}
}

// Cinema represents a theatre location that owns screens.
type Cinema struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:255"`
	Location  string    `json:"location" gorm:"not null;size:500"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Screens []Screen `json:"screens,omitempty" gorm:"foreignKey:CinemaID;constraint:OnDelete:CASCADE;"`
}

// Screen is a physical auditorium with a fixed seat grid.
type Screen struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Number    string     `json:"number" gorm:"not null;size:10"`
	Size      ScreenSize `json:"size" gorm:"type:varchar(10);not null"`
	Rows      int        `json:"rows" gorm:"not null;check:rows > 0"`
	Columns   int        `json:"columns" gorm:"not null;check:columns > 0"`
	Capacity  int        `json:"capacity" gorm:"not null"`
	CinemaID  uuid.UUID  `json:"cinema_id" gorm:"type:uuid;index;not null"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Cinema *Cinema `json:"cinema,omitempty" gorm:"foreignKey:CinemaID"`
	Seats  []Seat  `json:"seats,omitempty" gorm:"foreignKey:ScreenID;constraint:OnDelete:CASCADE;"`
}

// Seat is one addressable position on a screen's grid. Seats are provisioned
// once when the screen is created and deactivated rather than deleted.
type Seat struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Row       string    `json:"row" gorm:"not null;size:2"`
	Column    int       `json:"column" gorm:"not null"`
	IsActive  bool      `json:"is_active" gorm:"not null;default:true"`
	ScreenID  uuid.UUID `json:"screen_id" gorm:"type:uuid;index;not null"`
	CreatedAt time.Time `json:"created_at"`

	Screen *Screen `json:"screen,omitempty" gorm:"foreignKey:ScreenID"`
}

func (Cinema) TableName() string {
	return "cinemas"
}

func (Screen) TableName() string {
	return "screens"
}

func (Seat) TableName() string {
	return "seats"
}

// Label renders the display name for a seat, e.g. "A1".
func (s *Seat) Label() string {
	return s.Row + strconv.Itoa(s.Column)
}

// CreateCinemaRequest represents the admin payload for a new cinema.
type CreateCinemaRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=255"`
	Location string `json:"location" binding:"required,min=2,max=500"`
}

// CreateScreenRequest represents the admin payload for a new screen. The seat
// grid is derived from the size category.
type CreateScreenRequest struct {
	Number   string `json:"number" binding:"required,min=1,max=10"`
	Size     string `json:"size" binding:"required,oneof=LARGE MEDIUM SMALL"`
	CinemaID string `json:"cinema_id" binding:"required,uuid"`
}

// UpdateSeatRequest toggles a seat's usable flag.
type UpdateSeatRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// ScreenResponse is the display shape for a screen.
type ScreenResponse struct {
	ID       string     `json:"id"`
	Number   string     `json:"number"`
	Size     ScreenSize `json:"size"`
	Rows     int        `json:"rows"`
	Columns  int        `json:"columns"`
	Capacity int        `json:"capacity"`
	CinemaID string     `json:"cinema_id"`
}

func (s *Screen) ToResponse() ScreenResponse {
	return ScreenResponse{
		ID:       s.ID.String(),
		Number:   s.Number,
		Size:     s.Size,
		Rows:     s.Rows,
		Columns:  s.Columns,
		Capacity: s.Capacity,
		CinemaID: s.CinemaID.String(),
	}
}
