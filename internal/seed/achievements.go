package seed

import (
	"fmt"

	"waypoint/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuiltInAchievement is a permanent badge definition.
type BuiltInAchievement struct {
	Code        string
	Name        string
	Description string
}

// BuiltInAchievements defines the permanent badge catalog.
var BuiltInAchievements = []BuiltInAchievement{
	{Code: "first_trip", Name: "First Steps", Description: "Publish your first trip."},
	{Code: "first_summit", Name: "First Summit", Description: "Publish a trip tagged as a summit."},
	{Code: "century", Name: "Century", Description: "Cover 100 km across published trips."},
	{Code: "shutterbug", Name: "Shutterbug", Description: "Upload 10 trip photos."},
	{Code: "early_bird", Name: "Early Bird", Description: "Publish a trip started before 6am."},
	{Code: "night_owl", Name: "Night Owl", Description: "Publish a trip finished after midnight."},
	{Code: "globetrotter", Name: "Globetrotter", Description: "Publish trips in 5 different regions."},
	{Code: "streak_week", Name: "On A Roll", Description: "Publish trips 7 days in a row."},
}

// Achievements seeds the permanent badge catalog. Existing rows are updated
// in place so renames propagate without duplicating codes.
func Achievements(db *gorm.DB) error {
	for _, item := range BuiltInAchievements {
		achievement := models.Achievement{
			Code:         item.Code,
			Name:         item.Name,
			Description:  item.Description,
			BadgeIconURL: fmt.Sprintf("/badges/%s.svg", item.Code),
		}

		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description", "badge_icon_url"}),
		}).Create(&achievement).Error; err != nil {
			return fmt.Errorf("seed built-in achievement %s: %w", item.Code, err)
		}
	}
	return nil
}
