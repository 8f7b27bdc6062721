package repository

import (
	"context"
	"errors"

	"waypoint/internal/cache"
	"waypoint/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByActivity(ctx context.Context, activityID uint, limit, offset int) ([]*models.Comment, int64, error)
	Delete(ctx context.Context, id uint) (existed bool, err error)
	CreateReport(ctx context.Context, report *models.CommentReport) (inserted bool, err error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return err
	}
	cache.InvalidateActivity(ctx, comment.ActivityID)
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, err
	}
	return &comment, nil
}

// ListByActivity returns comments oldest first, the order a conversation reads in.
func (r *commentRepository) ListByActivity(ctx context.Context, activityID uint, limit, offset int) ([]*models.Comment, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("activity_id = ?", activityID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("activity_id = ?", activityID).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// Delete removes the comment row outright. A missing id reports existed=false
// so a repeated delete stays a no-op success.
func (r *commentRepository) Delete(ctx context.Context, id uint) (bool, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Select("id", "activity_id").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	result := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	existed := result.RowsAffected > 0
	if existed {
		cache.InvalidateActivity(ctx, comment.ActivityID)
	}
	return existed, nil
}

func (r *commentRepository) CreateReport(ctx context.Context, report *models.CommentReport) (bool, error) {
	// A reporter can report a comment once; repeats hit the unique index and
	// insert nothing.
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "comment_id"}, {Name: "reporter_id"}},
			DoNothing: true,
		}).
		Create(report)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
