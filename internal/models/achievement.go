package models

import "time"

// Achievement is a badge definition users can unlock.
type Achievement struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Code         string    `gorm:"unique;not null" json:"code"`
	Name         string    `gorm:"not null" json:"name"`
	Description  string    `json:"description"`
	BadgeIconURL string    `json:"badge_icon_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserAchievement records a single unlock of an achievement by a user.
type UserAchievement struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	UserID        uint        `gorm:"not null;uniqueIndex:idx_user_achievement" json:"user_id"`
	AchievementID uint        `gorm:"not null;uniqueIndex:idx_user_achievement" json:"achievement_id"`
	Achievement   Achievement `gorm:"foreignKey:AchievementID" json:"achievement"`
	UnlockedAt    time.Time   `json:"unlocked_at"`
}
