package models

import "time"

// Like represents a user's like on an activity.
// The combination of UserID and ActivityID must be unique; the storage
// constraint is what makes repeated likes idempotent.
type Like struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_activity" json:"user_id"`
	ActivityID uint      `gorm:"not null;uniqueIndex:idx_user_activity" json:"activity_id"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	User     User     `gorm:"foreignKey:UserID" json:"user"`
	Activity Activity `gorm:"foreignKey:ActivityID" json:"-"`
}
