package repository

import (
	"context"
	"errors"

	"waypoint/internal/models"

	"gorm.io/gorm"
)

// AchievementRepository looks up achievement unlocks for activity validation
// and feed enrichment.
type AchievementRepository interface {
	GetUnlockByID(ctx context.Context, id uint) (*models.UserAchievement, error)
	UnlocksByIDs(ctx context.Context, ids []uint) (map[uint]*models.UserAchievement, error)
}

type achievementRepository struct {
	db *gorm.DB
}

// NewAchievementRepository creates a new AchievementRepository
func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) GetUnlockByID(ctx context.Context, id uint) (*models.UserAchievement, error) {
	var unlock models.UserAchievement
	if err := r.db.WithContext(ctx).Preload("Achievement").First(&unlock, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("UserAchievement", id)
		}
		return nil, err
	}
	return &unlock, nil
}

func (r *achievementRepository) UnlocksByIDs(ctx context.Context, ids []uint) (map[uint]*models.UserAchievement, error) {
	if len(ids) == 0 {
		return map[uint]*models.UserAchievement{}, nil
	}

	var unlocks []models.UserAchievement
	if err := r.db.WithContext(ctx).
		Preload("Achievement").
		Where("id IN ?", ids).
		Find(&unlocks).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]*models.UserAchievement, len(unlocks))
	for i := range unlocks {
		byID[unlocks[i].ID] = &unlocks[i]
	}
	return byID, nil
}
