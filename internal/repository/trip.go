package repository

import (
	"context"
	"errors"

	"waypoint/internal/models"

	"gorm.io/gorm"
)

// TripRepository defines lookups for trips and trip photos. The bulk methods
// back feed enrichment: one query per entity type per page, keyed by ID.
type TripRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Trip, error)
	GetPhotoByID(ctx context.Context, id uint) (*models.TripPhoto, error)
	TripsByIDs(ctx context.Context, ids []uint) (map[uint]*models.Trip, error)
	PhotosByIDs(ctx context.Context, ids []uint) (map[uint]*models.TripPhoto, error)
}

type tripRepository struct {
	db *gorm.DB
}

// NewTripRepository creates a new TripRepository
func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) GetByID(ctx context.Context, id uint) (*models.Trip, error) {
	var trip models.Trip
	if err := r.db.WithContext(ctx).First(&trip, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Trip", id)
		}
		return nil, err
	}
	return &trip, nil
}

func (r *tripRepository) GetPhotoByID(ctx context.Context, id uint) (*models.TripPhoto, error) {
	var photo models.TripPhoto
	if err := r.db.WithContext(ctx).First(&photo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("TripPhoto", id)
		}
		return nil, err
	}
	return &photo, nil
}

func (r *tripRepository) TripsByIDs(ctx context.Context, ids []uint) (map[uint]*models.Trip, error) {
	if len(ids) == 0 {
		return map[uint]*models.Trip{}, nil
	}

	var trips []models.Trip
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&trips).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]*models.Trip, len(trips))
	for i := range trips {
		byID[trips[i].ID] = &trips[i]
	}
	return byID, nil
}

func (r *tripRepository) PhotosByIDs(ctx context.Context, ids []uint) (map[uint]*models.TripPhoto, error) {
	if len(ids) == 0 {
		return map[uint]*models.TripPhoto{}, nil
	}

	var photos []models.TripPhoto
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&photos).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]*models.TripPhoto, len(photos))
	for i := range photos {
		byID[photos[i].ID] = &photos[i]
	}
	return byID, nil
}
