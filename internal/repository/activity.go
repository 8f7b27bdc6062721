// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"time"

	"waypoint/internal/cache"
	"waypoint/internal/models"

	"gorm.io/gorm"
)

// Feed sort orders.
const (
	SortRecent  = "recent"
	SortPopular = "popular"
)

// FeedQuery describes one page of the activity feed.
type FeedQuery struct {
	// UserIDs restricts the page to these authors. An empty slice yields an
	// empty page without touching the database.
	UserIDs []uint
	// Type optionally narrows the page to a single activity type.
	Type models.ActivityType
	Sort string
	// Limit is the number of rows to fetch. Callers ask for one row more than
	// the page size to detect whether another page exists.
	Limit int
	// Before and BeforeID form the exclusive keyset bound for recent sort.
	Before   time.Time
	BeforeID uint
	// Offset is the row offset for popular sort.
	Offset int
}

// ActivityRepository defines the interface for activity data operations
type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Activity, error)
	ListFeed(ctx context.Context, currentUserID uint, q FeedQuery) ([]*models.Activity, error)
	DeleteForUser(ctx context.Context, userID uint) error
}

// activityRepository implements ActivityRepository
type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Activity, error) {
	var activity models.Activity

	var err error
	if currentUserID == 0 {
		// Anonymous reads share one cached row; counts may lag by the TTL.
		err = cache.Aside(ctx, cache.ActivityKey(id), &activity, cache.ActivityTTL, func() error {
			return r.applyActivityDetails(r.db.WithContext(ctx), 0).
				Preload("User").
				First(&activity, id).Error
		})
	} else {
		err = r.applyActivityDetails(r.db.WithContext(ctx), currentUserID).
			Preload("User").
			First(&activity, id).Error
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Activity", id)
		}
		return nil, err
	}
	return &activity, nil
}

func (r *activityRepository) ListFeed(ctx context.Context, currentUserID uint, q FeedQuery) ([]*models.Activity, error) {
	if len(q.UserIDs) == 0 {
		return nil, nil
	}

	db := r.applyActivityDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("activities.user_id IN ?", q.UserIDs)

	if q.Type != "" {
		db = db.Where("activities.type = ?", q.Type)
	}

	switch q.Sort {
	case SortPopular:
		// Popularity is likes plus comments. The subqueries are repeated here
		// because Postgres does not allow SELECT aliases inside ORDER BY
		// expressions; the id tiebreaker keeps the order total.
		db = db.
			Order("("+likesCountSubquery+" + "+commentsCountSubquery+") DESC, activities.created_at DESC, activities.id DESC").
			Offset(q.Offset)
	default:
		if !q.Before.IsZero() {
			db = db.Where("(activities.created_at, activities.id) < (?, ?)", q.Before, q.BeforeID)
		}
		db = db.Order("activities.created_at DESC, activities.id DESC")
	}

	var activities []*models.Activity
	if err := db.Limit(q.Limit).Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

// Count subqueries used in both the SELECT list and the popular-sort
// ORDER BY.
const (
	likesCountSubquery    = "(SELECT COUNT(*) FROM likes WHERE likes.activity_id = activities.id)"
	commentsCountSubquery = "(SELECT COUNT(*) FROM comments WHERE comments.activity_id = activities.id)"
)

// applyActivityDetails adds subqueries to fetch counts and liked status in a single query.
func (r *activityRepository) applyActivityDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "activities.*, " +
		commentsCountSubquery + " as comments_count, " +
		likesCountSubquery + " as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.activity_id = activities.id AND likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

// DeleteForUser removes every activity authored by the user along with the
// likes, comments, and reports hanging off those activities. Runs in a single
// transaction so a partial cascade is never visible.
func (r *activityRepository) DeleteForUser(ctx context.Context, userID uint) error {
	var activityIDs []uint

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Activity{}).
			Where("user_id = ?", userID).
			Pluck("id", &activityIDs).Error; err != nil {
			return err
		}
		if len(activityIDs) == 0 {
			return nil
		}

		var commentIDs []uint
		if err := tx.Model(&models.Comment{}).
			Where("activity_id IN ?", activityIDs).
			Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("comment_id IN ?", commentIDs).
				Delete(&models.CommentReport{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("activity_id IN ?", activityIDs).
			Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("activity_id IN ?", activityIDs).
			Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Activity{}, activityIDs).Error
	})
	if err != nil {
		return err
	}

	for _, id := range activityIDs {
		cache.InvalidateActivity(ctx, id)
	}
	return nil
}
