package database

import "waypoint/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Follow{},
		&models.Trip{},
		&models.TripPhoto{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.Activity{},
		&models.Like{},
		&models.Comment{},
		&models.CommentReport{},
	}
}
