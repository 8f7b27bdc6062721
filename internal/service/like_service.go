package service

import (
	"context"

	"waypoint/internal/models"
	"waypoint/internal/notifications"
	"waypoint/internal/observability"
	"waypoint/internal/repository"
)

// LikeService handles like and unlike mutations. Both are idempotent: liking
// twice or unliking something never liked succeeds without changing anything.
type LikeService struct {
	likeRepo     repository.LikeRepository
	activityRepo repository.ActivityRepository
	notifier     *notifications.Notifier
}

// NewLikeService creates a new LikeService.
func NewLikeService(
	likeRepo repository.LikeRepository,
	activityRepo repository.ActivityRepository,
	notifier *notifications.Notifier,
) *LikeService {
	return &LikeService{
		likeRepo:     likeRepo,
		activityRepo: activityRepo,
		notifier:     notifier,
	}
}

// Like records the user's like on an activity and returns the activity with
// fresh counts. The owner is notified only when a row was actually inserted,
// and never about their own like.
func (s *LikeService) Like(ctx context.Context, userID, activityID uint) (*models.Activity, error) {
	activity, err := s.activityRepo.GetByID(ctx, activityID, userID)
	if err != nil {
		return nil, err
	}

	inserted, err := s.likeRepo.Create(ctx, userID, activityID)
	if err != nil {
		return nil, err
	}
	observability.LikeMutations.WithLabelValues("like", outcome(inserted)).Inc()

	if inserted && s.notifier != nil && activity.UserID != userID {
		s.notifier.ActivityLiked(ctx, activity.UserID, userID, activityID)
	}

	return s.activityRepo.GetByID(ctx, activityID, userID)
}

// Unlike removes the user's like and returns the activity with fresh counts.
func (s *LikeService) Unlike(ctx context.Context, userID, activityID uint) (*models.Activity, error) {
	if _, err := s.activityRepo.GetByID(ctx, activityID, userID); err != nil {
		return nil, err
	}

	existed, err := s.likeRepo.Delete(ctx, userID, activityID)
	if err != nil {
		return nil, err
	}
	observability.LikeMutations.WithLabelValues("unlike", outcome(existed)).Inc()

	return s.activityRepo.GetByID(ctx, activityID, userID)
}

// ListLikers returns one page of users who liked the activity, newest first,
// each with the time of their like, along with the total count.
func (s *LikeService) ListLikers(ctx context.Context, activityID uint, limit, offset int) ([]repository.Liker, int64, error) {
	if _, err := s.activityRepo.GetByID(ctx, activityID, 0); err != nil {
		return nil, 0, err
	}
	return s.likeRepo.ListLikers(ctx, activityID, limit, offset)
}

func outcome(changed bool) string {
	if changed {
		return "applied"
	}
	return "noop"
}
