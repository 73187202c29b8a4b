package showings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrShowingNotFound = errors.New("showing not found")

type Repository interface {
	Create(ctx context.Context, showing *Showing) error
	GetByID(ctx context.Context, id uuid.UUID) (*Showing, error)
	GetFutureByMovie(ctx context.Context, movieID uuid.UUID, limit int) ([]Showing, error)
	FindOverlapping(ctx context.Context, screenID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]Showing, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// ApplySchedule performs a diffed schedule edit atomically.
	ApplySchedule(ctx context.Context, toCreate []Showing, toUpdate []Showing, toDeleteIDs []uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, showing *Showing) error {
	return r.db.WithContext(ctx).Create(showing).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Showing, error) {
	var showing Showing
	err := r.db.WithContext(ctx).
		Preload("Movie").
		Preload("Screen").
		Preload("Screen.Cinema").
		Where("id = ?", id).
		First(&showing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShowingNotFound
		}
		return nil, err
	}
	return &showing, nil
}

func (r *repository) GetFutureByMovie(ctx context.Context, movieID uuid.UUID, limit int) ([]Showing, error) {
	var showings []Showing
	db := r.db.WithContext(ctx).
		Preload("Screen").
		Where("movie_id = ? AND start_time > ?", movieID, time.Now()).
		Order("start_time ASC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	err := db.Find(&showings).Error
	return showings, err
}

// FindOverlapping returns showings on the screen whose [start, end) interval
// intersects the given one.
func (r *repository) FindOverlapping(ctx context.Context, screenID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]Showing, error) {
	var showings []Showing
	db := r.db.WithContext(ctx).
		Where("screen_id = ? AND start_time < ? AND end_time > ?", screenID, end, start)
	if excludeID != nil {
		db = db.Where("id != ?", *excludeID)
	}
	err := db.Find(&showings).Error
	return showings, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Showing{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrShowingNotFound
	}
	return nil
}

func (r *repository) ApplySchedule(ctx context.Context, toCreate []Showing, toUpdate []Showing, toDeleteIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(toDeleteIDs) > 0 {
			if err := tx.Where("id IN ?", toDeleteIDs).Delete(&Showing{}).Error; err != nil {
				return err
			}
		}

		for i := range toUpdate {
			err := tx.Model(&Showing{}).
				Where("id = ?", toUpdate[i].ID).
				Updates(map[string]interface{}{
					"uniform_price": toUpdate[i].UniformPrice,
					"end_time":      toUpdate[i].EndTime,
					"updated_at":    time.Now(),
				}).Error
			if err != nil {
				return err
			}
		}

		for i := range toCreate {
			if err := tx.Create(&toCreate[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
