package service

import (
	"context"
	"errors"
	"time"

	"waypoint/internal/models"
	"waypoint/internal/observability"
	"waypoint/internal/repository"
)

// ActivityService appends activities to the feed store. Activities are
// append-only: the only write besides insertion is the account-deletion
// cascade.
type ActivityService struct {
	activityRepo    repository.ActivityRepository
	tripRepo        repository.TripRepository
	achievementRepo repository.AchievementRepository
}

// AppendActivityInput identifies what happened and to whom.
type AppendActivityInput struct {
	UserID uint
	Type   models.ActivityType
	RefID  uint
}

// NewActivityService creates a new ActivityService.
func NewActivityService(
	activityRepo repository.ActivityRepository,
	tripRepo repository.TripRepository,
	achievementRepo repository.AchievementRepository,
) *ActivityService {
	return &ActivityService{
		activityRepo:    activityRepo,
		tripRepo:        tripRepo,
		achievementRepo: achievementRepo,
	}
}

// Append validates the referenced source entity, snapshots it into metadata,
// and inserts the activity. The snapshot is what keeps the activity renderable
// after its source is deleted.
func (s *ActivityService) Append(ctx context.Context, in AppendActivityInput) (*models.Activity, error) {
	if !models.KnownActivityType(in.Type) {
		return nil, models.NewValidationError("Invalid activity type")
	}
	if in.RefID == 0 {
		return nil, models.NewValidationError("ref_id is required")
	}

	meta, err := s.snapshotSource(ctx, in)
	if err != nil {
		return nil, err
	}

	activity := &models.Activity{
		UserID:   in.UserID,
		Type:     in.Type,
		RefID:    in.RefID,
		Metadata: models.ActivityMetadata{Meta: meta},
		// Microsecond precision survives the trip through the database, so
		// pagination cursors round-trip exactly.
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	if err := s.activityRepo.Create(ctx, activity); err != nil {
		return nil, err
	}

	observability.ActivityAppends.WithLabelValues(string(in.Type)).Inc()
	return activity, nil
}

// snapshotSource loads the referenced entity and builds the metadata snapshot.
// A reference that does not exist, is not owned by the actor, or is not
// publicly visible is rejected as an invalid reference.
func (s *ActivityService) snapshotSource(ctx context.Context, in AppendActivityInput) (models.ActivityMeta, error) {
	switch in.Type {
	case models.ActivityTripPublished:
		trip, err := s.tripRepo.GetByID(ctx, in.RefID)
		if err != nil {
			return nil, refError(err, "Referenced trip does not exist")
		}
		if trip.UserID != in.UserID {
			return nil, models.NewInvalidReferenceError("Referenced trip belongs to another user")
		}
		if !trip.IsPublic {
			return nil, models.NewInvalidReferenceError("Referenced trip is not public")
		}
		return models.TripPublishedMeta{
			Title:         trip.Title,
			DistanceKM:    trip.DistanceKM,
			CoverPhotoURL: trip.CoverPhotoURL,
		}, nil

	case models.ActivityPhotoUploaded:
		photo, err := s.tripRepo.GetPhotoByID(ctx, in.RefID)
		if err != nil {
			return nil, refError(err, "Referenced photo does not exist")
		}
		if photo.UserID != in.UserID {
			return nil, models.NewInvalidReferenceError("Referenced photo belongs to another user")
		}
		return models.PhotoUploadedMeta{
			PhotoURL: photo.PhotoURL,
			Caption:  photo.Caption,
			TripID:   photo.TripID,
		}, nil

	case models.ActivityAchievementUnlocked:
		unlock, err := s.achievementRepo.GetUnlockByID(ctx, in.RefID)
		if err != nil {
			return nil, refError(err, "Referenced achievement unlock does not exist")
		}
		if unlock.UserID != in.UserID {
			return nil, models.NewInvalidReferenceError("Referenced achievement unlock belongs to another user")
		}
		return models.AchievementUnlockedMeta{
			Code:         unlock.Achievement.Code,
			Name:         unlock.Achievement.Name,
			BadgeIconURL: unlock.Achievement.BadgeIconURL,
		}, nil
	}
	return nil, models.NewValidationError("Invalid activity type")
}

// refError converts a missing-row lookup failure into an invalid reference
// error; anything else passes through untouched.
func refError(err error, msg string) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
		return models.NewInvalidReferenceError(msg)
	}
	return err
}

// DeleteForUser removes all activities authored by the user, used when an
// account is deleted.
func (s *ActivityService) DeleteForUser(ctx context.Context, userID uint) error {
	return s.activityRepo.DeleteForUser(ctx, userID)
}
