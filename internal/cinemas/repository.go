package cinemas

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCinemaNotFound = errors.New("cinema not found")
	ErrScreenNotFound = errors.New("screen not found")
	ErrSeatNotFound   = errors.New("seat not found")
)

type Repository interface {
	CreateCinema(ctx context.Context, cinema *Cinema) error
	GetCinemaByID(ctx context.Context, id uuid.UUID) (*Cinema, error)
	ListCinemas(ctx context.Context) ([]Cinema, error)

	CreateScreenWithSeats(ctx context.Context, screen *Screen, seats []Seat) error
	GetScreenByID(ctx context.Context, id uuid.UUID) (*Screen, error)
	ListScreensByCinema(ctx context.Context, cinemaID uuid.UUID) ([]Screen, error)

	GetSeatsByScreen(ctx context.Context, screenID uuid.UUID) ([]Seat, error)
	GetSeatsByIDs(ctx context.Context, ids []uuid.UUID) ([]Seat, error)
	UpdateSeatActive(ctx context.Context, seatID uuid.UUID, active bool) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateCinema(ctx context.Context, cinema *Cinema) error {
	return r.db.WithContext(ctx).Create(cinema).Error
}

func (r *repository) GetCinemaByID(ctx context.Context, id uuid.UUID) (*Cinema, error) {
	var cinema Cinema
	err := r.db.WithContext(ctx).
		Preload("Screens").
		Where("id = ?", id).
		First(&cinema).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCinemaNotFound
		}
		return nil, err
	}
	return &cinema, nil
}

func (r *repository) ListCinemas(ctx context.Context) ([]Cinema, error) {
	var cinemas []Cinema
	err := r.db.WithContext(ctx).
		Preload("Screens").
		Order("name ASC").
		Find(&cinemas).Error
	return cinemas, err
}

// CreateScreenWithSeats provisions a screen and its full seat grid in one
// transaction so a screen never exists without its seats.
func (r *repository) CreateScreenWithSeats(ctx context.Context, screen *Screen, seats []Seat) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(screen).Error; err != nil {
			return fmt.Errorf("failed to create screen: %w", err)
		}

		for i := range seats {
			seats[i].ScreenID = screen.ID
		}

		if err := tx.CreateInBatches(seats, 100).Error; err != nil {
			return fmt.Errorf("failed to provision seats: %w", err)
		}

		return nil
	})
}

func (r *repository) GetScreenByID(ctx context.Context, id uuid.UUID) (*Screen, error) {
	var screen Screen
	err := r.db.WithContext(ctx).
		Preload("Cinema").
		Where("id = ?", id).
		First(&screen).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScreenNotFound
		}
		return nil, err
	}
	return &screen, nil
}

func (r *repository) ListScreensByCinema(ctx context.Context, cinemaID uuid.UUID) ([]Screen, error) {
	var screens []Screen
	err := r.db.WithContext(ctx).
		Where("cinema_id = ?", cinemaID).
		Order("number ASC").
		Find(&screens).Error
	return screens, err
}

func (r *repository) GetSeatsByScreen(ctx context.Context, screenID uuid.UUID) ([]Seat, error) {
	var seats []Seat
	err := r.db.WithContext(ctx).
		Where("screen_id = ?", screenID).
		Order("row ASC, \"column\" ASC").
		Find(&seats).Error
	return seats, err
}

func (r *repository) GetSeatsByIDs(ctx context.Context, ids []uuid.UUID) ([]Seat, error) {
	var seats []Seat
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&seats).Error
	return seats, err
}

func (r *repository) UpdateSeatActive(ctx context.Context, seatID uuid.UUID, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&Seat{}).
		Where("id = ?", seatID).
		Update("is_active", active)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSeatNotFound
	}
	return nil
}
