package cinemas

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrInvalidScreenSize = errors.New("invalid screen size")

type Service interface {
	CreateCinema(ctx context.Context, req *CreateCinemaRequest) (*Cinema, error)
	GetCinema(ctx context.Context, id string) (*Cinema, error)
	ListCinemas(ctx context.Context) ([]Cinema, error)

	CreateScreen(ctx context.Context, req *CreateScreenRequest) (*Screen, error)
	GetScreen(ctx context.Context, id string) (*Screen, error)

	GetScreenSeats(ctx context.Context, screenID string) ([]Seat, error)
	SetSeatActive(ctx context.Context, seatID string, active bool) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateCinema(ctx context.Context, req *CreateCinemaRequest) (*Cinema, error) {
	cinema := &Cinema{
		Name:     req.Name,
		Location: req.Location,
	}

	if err := s.repo.CreateCinema(ctx, cinema); err != nil {
		return nil, fmt.Errorf("failed to create cinema: %w", err)
	}

	return cinema, nil
}

func (s *service) GetCinema(ctx context.Context, id string) (*Cinema, error) {
	cinemaID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrCinemaNotFound
	}
	return s.repo.GetCinemaByID(ctx, cinemaID)
}

func (s *service) ListCinemas(ctx context.Context) ([]Cinema, error) {
	return s.repo.ListCinemas(ctx)
}

// CreateScreen creates a screen and provisions its entire seat grid based on
// the size category. Rows are lettered from "A" upward, columns numbered from 1.
func (s *service) CreateScreen(ctx context.Context, req *CreateScreenRequest) (*Screen, error) {
	size := ScreenSize(req.Size)
	if !size.IsValid() {
		return nil, ErrInvalidScreenSize
	}

	cinemaID, err := uuid.Parse(req.CinemaID)
	if err != nil {
		return nil, ErrCinemaNotFound
	}

	if _, err := s.repo.GetCinemaByID(ctx, cinemaID); err != nil {
		return nil, err
	}

	rows, columns := size.GridDimensions()

	screen := &Screen{
		Number:   req.Number,
		Size:     size,
		Rows:     rows,
		Columns:  columns,
		Capacity: rows * columns,
		CinemaID: cinemaID,
	}

	seats := buildSeatGrid(rows, columns)

	if err := s.repo.CreateScreenWithSeats(ctx, screen, seats); err != nil {
		return nil, err
	}

	return screen, nil
}

func (s *service) GetScreen(ctx context.Context, id string) (*Screen, error) {
	screenID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrScreenNotFound
	}
	return s.repo.GetScreenByID(ctx, screenID)
}

func (s *service) GetScreenSeats(ctx context.Context, screenID string) ([]Seat, error) {
	id, err := uuid.Parse(screenID)
	if err != nil {
		return nil, ErrScreenNotFound
	}

	if _, err := s.repo.GetScreenByID(ctx, id); err != nil {
		return nil, err
	}

	return s.repo.GetSeatsByScreen(ctx, id)
}

func (s *service) SetSeatActive(ctx context.Context, seatID string, active bool) error {
	id, err := uuid.Parse(seatID)
	if err != nil {
		return ErrSeatNotFound
	}
	return s.repo.UpdateSeatActive(ctx, id, active)
}

func buildSeatGrid(rows, columns int) []Seat {
	seats := make([]Seat, 0, rows*columns)
	for r := 0; r < rows; r++ {
		rowLabel := string(rune('A' + r))
		for c := 1; c <= columns; c++ {
			seats = append(seats, Seat{
				Row:      rowLabel,
				Column:   c,
				IsActive: true,
			})
		}
	}
	return seats
}
