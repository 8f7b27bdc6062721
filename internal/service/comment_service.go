package service

import (
	"context"
	"errors"
	"strings"

	"waypoint/internal/models"
	"waypoint/internal/notifications"
	"waypoint/internal/observability"
	"waypoint/internal/repository"
	"waypoint/internal/validation"
)

// CommentService handles comment writes and the abuse report intake.
type CommentService struct {
	commentRepo  repository.CommentRepository
	activityRepo repository.ActivityRepository
	notifier     *notifications.Notifier
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	commentRepo repository.CommentRepository,
	activityRepo repository.ActivityRepository,
	notifier *notifications.Notifier,
) *CommentService {
	return &CommentService{
		commentRepo:  commentRepo,
		activityRepo: activityRepo,
		notifier:     notifier,
	}
}

// CreateCommentInput is the payload for a new comment.
type CreateCommentInput struct {
	UserID     uint
	ActivityID uint
	Content    string
}

// Create sanitizes the content, validates the post-sanitization length, and
// persists the comment. The activity owner is notified unless they wrote the
// comment themselves.
func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	clean, err := validation.ValidateComment(in.Content)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	activity, err := s.activityRepo.GetByID(ctx, in.ActivityID, in.UserID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		UserID:     in.UserID,
		ActivityID: in.ActivityID,
		Content:    clean,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	observability.CommentMutations.WithLabelValues("create").Inc()

	if s.notifier != nil && activity.UserID != in.UserID {
		s.notifier.ActivityCommented(ctx, activity.UserID, in.UserID, in.ActivityID, comment.ID)
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// List returns one page of an activity's comments, oldest first, with the
// total count.
func (s *CommentService) List(ctx context.Context, activityID uint, limit, offset int) ([]*models.Comment, int64, error) {
	if _, err := s.activityRepo.GetByID(ctx, activityID, 0); err != nil {
		return nil, 0, err
	}
	return s.commentRepo.ListByActivity(ctx, activityID, limit, offset)
}

// Delete removes a comment outright. Only its author may delete it; deleting
// an already-gone comment is a no-op success. Moderation happens through the
// report queue, not here.
func (s *CommentService) Delete(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
			return nil
		}
		return err
	}
	if comment.UserID != userID {
		return models.NewForbiddenError("You can only delete your own comments")
	}

	existed, err := s.commentRepo.Delete(ctx, commentID)
	if err != nil {
		return err
	}
	if existed {
		observability.CommentMutations.WithLabelValues("delete").Inc()
	}
	return nil
}

// Report files an abuse report against a comment. Reporting the same comment
// twice is a no-op success; reports are intake only and reviewed elsewhere.
func (s *CommentService) Report(ctx context.Context, reporterID, commentID uint, reason models.ReportReason, notes string) error {
	if !models.KnownReportReason(reason) {
		return models.NewValidationError("Invalid report reason; expected spam, offensive, harassment, or other")
	}
	notes = strings.TrimSpace(notes)
	if len(notes) > 500 {
		return models.NewValidationError("Notes must not exceed 500 characters")
	}

	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return err
	}

	if _, err := s.commentRepo.CreateReport(ctx, &models.CommentReport{
		CommentID:  commentID,
		ReporterID: reporterID,
		Reason:     reason,
		Notes:      notes,
	}); err != nil {
		return err
	}
	observability.CommentMutations.WithLabelValues("report").Inc()
	return nil
}
