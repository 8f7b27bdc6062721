package models

import (
	"time"

	"gorm.io/gorm"
)

// Trip is a published journey. It is the source of truth for trip fields;
// activity metadata only carries a snapshot taken at publish time.
type Trip struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	User          User           `gorm:"foreignKey:UserID" json:"user"`
	Title         string         `gorm:"not null" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	DistanceKM    float64        `json:"distance_km"`
	CoverPhotoURL string         `json:"cover_photo_url"`
	IsPublic      bool           `gorm:"not null;default:true" json:"is_public"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TripPhoto is a photo attached to a trip.
type TripPhoto struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	TripID    uint           `gorm:"not null;index" json:"trip_id"`
	Trip      Trip           `gorm:"foreignKey:TripID" json:"-"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	PhotoURL  string         `gorm:"not null" json:"photo_url"`
	Caption   string         `json:"caption"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
