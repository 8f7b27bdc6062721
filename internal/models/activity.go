package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ActivityType discriminates the metadata payload carried by an activity.
type ActivityType string

const (
	ActivityTripPublished       ActivityType = "trip_published"
	ActivityPhotoUploaded       ActivityType = "photo_uploaded"
	ActivityAchievementUnlocked ActivityType = "achievement_unlocked"
)

// KnownActivityType reports whether t is one of the supported activity types.
func KnownActivityType(t ActivityType) bool {
	switch t {
	case ActivityTripPublished, ActivityPhotoUploaded, ActivityAchievementUnlocked:
		return true
	}
	return false
}

// ActivityMeta is implemented by every concrete metadata payload.
type ActivityMeta interface {
	ActivityType() ActivityType
}

// TripPublishedMeta is the snapshot taken when a trip is published.
type TripPublishedMeta struct {
	Title         string  `json:"title"`
	DistanceKM    float64 `json:"distance_km"`
	CoverPhotoURL string  `json:"cover_photo_url"`
}

func (TripPublishedMeta) ActivityType() ActivityType { return ActivityTripPublished }

// PhotoUploadedMeta is the snapshot taken when a photo is uploaded to a trip.
type PhotoUploadedMeta struct {
	PhotoURL string `json:"photo_url"`
	Caption  string `json:"caption"`
	TripID   uint   `json:"trip_id"`
}

func (PhotoUploadedMeta) ActivityType() ActivityType { return ActivityPhotoUploaded }

// AchievementUnlockedMeta is the snapshot taken when an achievement is unlocked.
type AchievementUnlockedMeta struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	BadgeIconURL string `json:"badge_icon_url"`
}

func (AchievementUnlockedMeta) ActivityType() ActivityType { return ActivityAchievementUnlocked }

// ActivityMetadata is the tagged union stored in the activities.metadata JSON
// column. Encoding and decoding go through the type tag, so a payload always
// round-trips to the concrete type matching the activity type; an unknown tag
// is an error rather than an untyped map.
type ActivityMetadata struct {
	Meta ActivityMeta
}

type metadataEnvelope struct {
	Type ActivityType    `json:"type"`
	Data json.RawMessage `json:"data"`
}

// MarshalJSON encodes the payload in tagged form.
func (m ActivityMetadata) MarshalJSON() ([]byte, error) {
	if m.Meta == nil {
		return []byte("null"), nil
	}
	data, err := json.Marshal(m.Meta)
	if err != nil {
		return nil, err
	}
	return json.Marshal(metadataEnvelope{Type: m.Meta.ActivityType(), Data: data})
}

// UnmarshalJSON decodes a tagged payload into the concrete metadata type.
func (m *ActivityMetadata) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		m.Meta = nil
		return nil
	}

	var env metadataEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decode activity metadata envelope: %w", err)
	}

	switch env.Type {
	case ActivityTripPublished:
		var meta TripPublishedMeta
		if err := json.Unmarshal(env.Data, &meta); err != nil {
			return fmt.Errorf("decode trip_published metadata: %w", err)
		}
		m.Meta = meta
	case ActivityPhotoUploaded:
		var meta PhotoUploadedMeta
		if err := json.Unmarshal(env.Data, &meta); err != nil {
			return fmt.Errorf("decode photo_uploaded metadata: %w", err)
		}
		m.Meta = meta
	case ActivityAchievementUnlocked:
		var meta AchievementUnlockedMeta
		if err := json.Unmarshal(env.Data, &meta); err != nil {
			return fmt.Errorf("decode achievement_unlocked metadata: %w", err)
		}
		m.Meta = meta
	default:
		return fmt.Errorf("unknown activity metadata type %q", env.Type)
	}
	return nil
}

// Value implements driver.Valuer so GORM stores the tagged JSON form.
func (m ActivityMetadata) Value() (driver.Value, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (m *ActivityMetadata) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		m.Meta = nil
		return nil
	case []byte:
		return m.UnmarshalJSON(v)
	case string:
		return m.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("unsupported activity metadata source type %T", src)
	}
}

// Activity is an append-only record of something a user did. Rows are never
// updated; they only disappear when their author's account is deleted.
type Activity struct {
	ID     uint         `gorm:"primaryKey" json:"id"`
	UserID uint         `gorm:"not null;index:idx_activities_user_created" json:"user_id"`
	User   User         `gorm:"foreignKey:UserID" json:"user"`
	Type   ActivityType `gorm:"not null;index" json:"type"`
	// RefID points at the source entity for the activity type
	// (trip, trip photo, or user achievement).
	RefID    uint             `gorm:"not null" json:"ref_id"`
	Metadata ActivityMetadata `gorm:"type:jsonb" json:"metadata"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this activity (computed)
	Liked     bool      `gorm:"->" json:"liked"`
	CreatedAt time.Time `gorm:"index:idx_activities_user_created" json:"created_at"`
}
