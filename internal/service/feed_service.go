package service

import (
	"context"
	"time"

	"waypoint/internal/models"
	"waypoint/internal/observability"
	"waypoint/internal/repository"
)

// Feed page size bounds.
const (
	DefaultFeedLimit = 20
	MaxFeedLimit     = 50
)

// FeedService assembles the activity feed: privacy filtering through the
// follow graph, cursor pagination, and metadata enrichment from the live
// source entities.
type FeedService struct {
	activityRepo    repository.ActivityRepository
	followRepo      repository.FollowRepository
	tripRepo        repository.TripRepository
	achievementRepo repository.AchievementRepository
}

// NewFeedService creates a new FeedService.
func NewFeedService(
	activityRepo repository.ActivityRepository,
	followRepo repository.FollowRepository,
	tripRepo repository.TripRepository,
	achievementRepo repository.AchievementRepository,
) *FeedService {
	return &FeedService{
		activityRepo:    activityRepo,
		followRepo:      followRepo,
		tripRepo:        tripRepo,
		achievementRepo: achievementRepo,
	}
}

// GetFeedInput is one feed page request.
type GetFeedInput struct {
	ViewerID uint
	Type     string
	Sort     string
	Limit    int
	Cursor   string
}

// ActivityView is a feed item as returned to clients. Metadata holds live
// source data when the source still exists and the publish-time snapshot when
// it does not.
type ActivityView struct {
	ID            uint                    `json:"id"`
	User          models.User             `json:"user"`
	Type          models.ActivityType     `json:"type"`
	RefID         uint                    `json:"ref_id"`
	Metadata      models.ActivityMetadata `json:"metadata"`
	SourceDeleted bool                    `json:"source_deleted"`
	LikesCount    int                     `json:"likes_count"`
	CommentsCount int                     `json:"comments_count"`
	Liked         bool                    `json:"liked"`
	CreatedAt     time.Time               `json:"created_at"`
}

// FeedPage is one page of the feed plus the token for the next one.
type FeedPage struct {
	Activities []*ActivityView `json:"activities"`
	HasNext    bool            `json:"has_next"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

// GetFeed returns one page of the viewer's feed: activities from followed
// users, newest first by default. The viewer's own activities are not part of
// their feed.
func (s *FeedService) GetFeed(ctx context.Context, in GetFeedInput) (*FeedPage, error) {
	start := time.Now()

	limit := in.Limit
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}

	sort := in.Sort
	if sort == "" {
		sort = repository.SortRecent
	}
	if sort != repository.SortRecent && sort != repository.SortPopular {
		return nil, models.NewValidationError("Invalid sort; expected recent or popular")
	}

	var typeFilter models.ActivityType
	if in.Type != "" {
		typeFilter = models.ActivityType(in.Type)
		if !models.KnownActivityType(typeFilter) {
			return nil, models.NewValidationError("Invalid activity type filter")
		}
	}

	var cursor feedCursor
	if in.Cursor != "" {
		var err error
		cursor, err = decodeCursor(in.Cursor)
		if err != nil {
			return nil, err
		}
		// A cursor minted under one sort has no meaning under another.
		if cursor.Sort != sort {
			return nil, models.NewValidationError("Invalid cursor")
		}
	}

	followedIDs, err := s.followRepo.FollowedUserIDs(ctx, in.ViewerID)
	if err != nil {
		return nil, err
	}

	query := repository.FeedQuery{
		UserIDs: followedIDs,
		Type:    typeFilter,
		Sort:    sort,
		Limit:   limit + 1, // one extra row decides has_next
	}
	if in.Cursor != "" {
		switch sort {
		case repository.SortPopular:
			query.Offset = cursor.Offset
		default:
			query.Before = cursor.createdAt()
			query.BeforeID = cursor.ID
		}
	}

	activities, err := s.activityRepo.ListFeed(ctx, in.ViewerID, query)
	if err != nil {
		return nil, err
	}

	hasNext := len(activities) > limit
	if hasNext {
		activities = activities[:limit]
	}

	views, err := s.enrich(ctx, activities)
	if err != nil {
		return nil, err
	}

	page := &FeedPage{Activities: views, HasNext: hasNext}
	if hasNext {
		last := activities[len(activities)-1]
		switch sort {
		case repository.SortPopular:
			page.NextCursor = encodeCursor(feedCursor{
				Sort:   sort,
				Offset: cursor.Offset + limit,
			})
		default:
			page.NextCursor = encodeCursor(feedCursor{
				Sort:      sort,
				CreatedAt: last.CreatedAt.UnixMicro(),
				ID:        last.ID,
			})
		}
	}

	observability.ObserveFeedQuery(sort, start)
	observability.FeedPageSize.Observe(float64(len(views)))
	return page, nil
}

// enrich overlays live source data onto the page. One bulk query per entity
// type; activities whose source is gone keep their snapshot and are flagged.
func (s *FeedService) enrich(ctx context.Context, activities []*models.Activity) ([]*ActivityView, error) {
	refIDs := map[models.ActivityType][]uint{}
	for _, a := range activities {
		refIDs[a.Type] = append(refIDs[a.Type], a.RefID)
	}

	trips := map[uint]*models.Trip{}
	photos := map[uint]*models.TripPhoto{}
	unlocks := map[uint]*models.UserAchievement{}
	var err error

	if ids := refIDs[models.ActivityTripPublished]; len(ids) > 0 {
		if trips, err = s.tripRepo.TripsByIDs(ctx, ids); err != nil {
			return nil, err
		}
	}
	if ids := refIDs[models.ActivityPhotoUploaded]; len(ids) > 0 {
		if photos, err = s.tripRepo.PhotosByIDs(ctx, ids); err != nil {
			return nil, err
		}
	}
	if ids := refIDs[models.ActivityAchievementUnlocked]; len(ids) > 0 {
		if unlocks, err = s.achievementRepo.UnlocksByIDs(ctx, ids); err != nil {
			return nil, err
		}
	}

	views := make([]*ActivityView, 0, len(activities))
	for _, a := range activities {
		view := &ActivityView{
			ID:            a.ID,
			User:          a.User,
			Type:          a.Type,
			RefID:         a.RefID,
			Metadata:      a.Metadata,
			LikesCount:    a.LikesCount,
			CommentsCount: a.CommentsCount,
			Liked:         a.Liked,
			CreatedAt:     a.CreatedAt,
		}

		switch a.Type {
		case models.ActivityTripPublished:
			// A trip pulled private after publishing reads as deleted here;
			// the snapshot is all we are willing to show.
			if trip := trips[a.RefID]; trip != nil && trip.IsPublic {
				view.Metadata = models.ActivityMetadata{Meta: models.TripPublishedMeta{
					Title:         trip.Title,
					DistanceKM:    trip.DistanceKM,
					CoverPhotoURL: trip.CoverPhotoURL,
				}}
			} else {
				view.SourceDeleted = true
			}
		case models.ActivityPhotoUploaded:
			if photo := photos[a.RefID]; photo != nil {
				view.Metadata = models.ActivityMetadata{Meta: models.PhotoUploadedMeta{
					PhotoURL: photo.PhotoURL,
					Caption:  photo.Caption,
					TripID:   photo.TripID,
				}}
			} else {
				view.SourceDeleted = true
			}
		case models.ActivityAchievementUnlocked:
			if unlock := unlocks[a.RefID]; unlock != nil {
				view.Metadata = models.ActivityMetadata{Meta: models.AchievementUnlockedMeta{
					Code:         unlock.Achievement.Code,
					Name:         unlock.Achievement.Name,
					BadgeIconURL: unlock.Achievement.BadgeIconURL,
				}}
			} else {
				view.SourceDeleted = true
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// GetActivity returns a single enriched activity.
func (s *FeedService) GetActivity(ctx context.Context, id uint, viewerID uint) (*ActivityView, error) {
	activity, err := s.activityRepo.GetByID(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}
	views, err := s.enrich(ctx, []*models.Activity{activity})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}
