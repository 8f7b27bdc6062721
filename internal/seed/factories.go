// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"waypoint/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedOptions tune factory behavior.
type SeedOptions struct {
	// DryRun logs what would be created without writing to the database.
	DryRun bool
	// SkipBcrypt stores a plain password to speed up large seeds.
	SkipBcrypt bool
	// MaxDays is how far back generated timestamps spread (default 90).
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts SeedOptions
	rand *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Factory{db: db, opts: opts, rand: r, nextID: 1000}
}

// pastTime returns a timestamp spread over the configured window, truncated
// to microseconds like the service layer does.
func (f *Factory) pastTime() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(f.rand.Intn(maxDays))*24*time.Hour +
		time.Duration(f.rand.Intn(24))*time.Hour +
		time.Duration(f.rand.Intn(60))*time.Minute
	return time.Now().UTC().Add(-back).Truncate(time.Microsecond)
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Bio:      gofakeit.Sentence(10),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %+v", user)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateFollow persists a follow edge from follower to followee.
func (f *Factory) CreateFollow(follower, followee *models.User) error {
	if f.opts.DryRun {
		log.Printf("[dry-run] CreateFollow: %d -> %d", follower.ID, followee.ID)
		return nil
	}
	return f.db.Create(&models.Follow{
		FollowerID: follower.ID,
		FolloweeID: followee.ID,
	}).Error
}

// CreateTrip constructs and persists a sample `models.Trip` for the given user.
func (f *Factory) CreateTrip(user *models.User, overrides ...func(*models.Trip)) (*models.Trip, error) {
	trip := &models.Trip{
		UserID:        user.ID,
		Title:         fmt.Sprintf("%s %s", gofakeit.AdjectiveDescriptive(), gofakeit.City()),
		Description:   gofakeit.Paragraph(1, 3, 8, "\n"),
		DistanceKM:    float64(gofakeit.Number(2, 120)) + f.rand.Float64(),
		CoverPhotoURL: fmt.Sprintf("https://picsum.photos/seed/%s/1200/800", gofakeit.UUID()),
		IsPublic:      true,
		CreatedAt:     f.pastTime(),
	}

	for _, override := range overrides {
		override(trip)
	}

	if f.opts.DryRun {
		f.nextID++
		trip.ID = f.nextID
		log.Printf("[dry-run] CreateTrip: user=%d title=%q", trip.UserID, trip.Title)
		return trip, nil
	}

	if err := f.db.Create(trip).Error; err != nil {
		return nil, err
	}
	return trip, nil
}

// CreatePhoto constructs and persists a `models.TripPhoto` on the given trip.
func (f *Factory) CreatePhoto(trip *models.Trip, overrides ...func(*models.TripPhoto)) (*models.TripPhoto, error) {
	photo := &models.TripPhoto{
		TripID:    trip.ID,
		UserID:    trip.UserID,
		PhotoURL:  fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
		Caption:   gofakeit.Sentence(6),
		CreatedAt: f.pastTime(),
	}

	for _, override := range overrides {
		override(photo)
	}

	if f.opts.DryRun {
		f.nextID++
		photo.ID = f.nextID
		return photo, nil
	}

	if err := f.db.Create(photo).Error; err != nil {
		return nil, err
	}
	return photo, nil
}

// CreateUnlock persists an achievement unlock for the user.
func (f *Factory) CreateUnlock(user *models.User, achievement *models.Achievement) (*models.UserAchievement, error) {
	unlock := &models.UserAchievement{
		UserID:        user.ID,
		AchievementID: achievement.ID,
		UnlockedAt:    f.pastTime(),
	}

	if f.opts.DryRun {
		f.nextID++
		unlock.ID = f.nextID
		return unlock, nil
	}

	if err := f.db.Create(unlock).Error; err != nil {
		return nil, err
	}
	unlock.Achievement = *achievement
	return unlock, nil
}

// CreateTripActivity records a trip_published activity with its snapshot.
func (f *Factory) CreateTripActivity(trip *models.Trip) (*models.Activity, error) {
	activity := &models.Activity{
		UserID: trip.UserID,
		Type:   models.ActivityTripPublished,
		RefID:  trip.ID,
		Metadata: models.ActivityMetadata{Meta: models.TripPublishedMeta{
			Title:         trip.Title,
			DistanceKM:    trip.DistanceKM,
			CoverPhotoURL: trip.CoverPhotoURL,
		}},
		CreatedAt: trip.CreatedAt,
	}
	return f.createActivity(activity)
}

// CreatePhotoActivity records a photo_uploaded activity with its snapshot.
func (f *Factory) CreatePhotoActivity(photo *models.TripPhoto) (*models.Activity, error) {
	activity := &models.Activity{
		UserID: photo.UserID,
		Type:   models.ActivityPhotoUploaded,
		RefID:  photo.ID,
		Metadata: models.ActivityMetadata{Meta: models.PhotoUploadedMeta{
			PhotoURL: photo.PhotoURL,
			Caption:  photo.Caption,
			TripID:   photo.TripID,
		}},
		CreatedAt: photo.CreatedAt,
	}
	return f.createActivity(activity)
}

// CreateUnlockActivity records an achievement_unlocked activity with its snapshot.
func (f *Factory) CreateUnlockActivity(unlock *models.UserAchievement) (*models.Activity, error) {
	activity := &models.Activity{
		UserID: unlock.UserID,
		Type:   models.ActivityAchievementUnlocked,
		RefID:  unlock.ID,
		Metadata: models.ActivityMetadata{Meta: models.AchievementUnlockedMeta{
			Code:         unlock.Achievement.Code,
			Name:         unlock.Achievement.Name,
			BadgeIconURL: unlock.Achievement.BadgeIconURL,
		}},
		CreatedAt: unlock.UnlockedAt,
	}
	return f.createActivity(activity)
}

func (f *Factory) createActivity(activity *models.Activity) (*models.Activity, error) {
	if f.opts.DryRun {
		f.nextID++
		activity.ID = f.nextID
		log.Printf("[dry-run] CreateActivity: type=%s user=%d ref=%d", activity.Type, activity.UserID, activity.RefID)
		return activity, nil
	}
	if err := f.db.Create(activity).Error; err != nil {
		return nil, err
	}
	return activity, nil
}

// CreateComment constructs and persists a sample `models.Comment` on the
// provided activity authored by the provided user.
func (f *Factory) CreateComment(user *models.User, activity *models.Activity, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content:    gofakeit.Sentence(8),
		UserID:     user.ID,
		ActivityID: activity.ID,
	}

	for _, override := range overrides {
		override(comment)
	}

	if f.opts.DryRun {
		f.nextID++
		comment.ID = f.nextID
		return comment, nil
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from `user` on `activity`.
func (f *Factory) CreateLike(user *models.User, activity *models.Activity) error {
	if f.opts.DryRun {
		return nil
	}
	return f.db.Create(&models.Like{
		UserID:     user.ID,
		ActivityID: activity.ID,
	}).Error
}
