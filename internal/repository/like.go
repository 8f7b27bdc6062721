package repository

import (
	"context"
	"time"

	"waypoint/internal/cache"
	"waypoint/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Liker is one entry in an activity's likers list: who liked it and when.
type Liker struct {
	UserID   uint      `json:"user_id"`
	Username string    `json:"username"`
	Avatar   string    `json:"avatar"`
	LikedAt  time.Time `json:"liked_at"`
}

// LikeRepository defines the interface for like data operations. Create and
// Delete report whether a row actually changed so callers can tell a fresh
// mutation from an idempotent repeat.
type LikeRepository interface {
	Create(ctx context.Context, userID, activityID uint) (inserted bool, err error)
	Delete(ctx context.Context, userID, activityID uint) (existed bool, err error)
	IsLiked(ctx context.Context, userID, activityID uint) (bool, error)
	ListLikers(ctx context.Context, activityID uint, limit, offset int) ([]Liker, int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Create(ctx context.Context, userID, activityID uint) (bool, error) {
	like := models.Like{UserID: userID, ActivityID: activityID}

	// ON CONFLICT DO NOTHING on the (user_id, activity_id) unique index makes
	// a repeated like a no-op instead of a duplicate key error, atomically.
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "activity_id"}},
			DoNothing: true,
		}).
		Create(&like)
	if result.Error != nil {
		return false, result.Error
	}

	inserted := result.RowsAffected > 0
	if inserted {
		cache.InvalidateActivity(ctx, activityID)
	}
	return inserted, nil
}

func (r *likeRepository) Delete(ctx context.Context, userID, activityID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND activity_id = ?", userID, activityID).
		Delete(&models.Like{})
	if result.Error != nil {
		return false, result.Error
	}

	existed := result.RowsAffected > 0
	if existed {
		cache.InvalidateActivity(ctx, activityID)
	}
	return existed, nil
}

func (r *likeRepository) IsLiked(ctx context.Context, userID, activityID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND activity_id = ?", userID, activityID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *likeRepository) ListLikers(ctx context.Context, activityID uint, limit, offset int) ([]Liker, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("activity_id = ?", activityID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var likers []Liker
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Select("users.id AS user_id, users.username, users.avatar, likes.created_at AS liked_at").
		Joins("JOIN users ON users.id = likes.user_id").
		Where("likes.activity_id = ?", activityID).
		Order("likes.created_at DESC, likes.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&likers).Error
	if err != nil {
		return nil, 0, err
	}
	return likers, total, nil
}
