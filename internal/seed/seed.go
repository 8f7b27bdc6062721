package seed

import (
	"fmt"
	"log"

	"waypoint/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumTrips    int
	ShouldClean bool
}

// Seed populates the database with demo data: users, a follow mesh, trips
// with photos and achievement unlocks, their feed activities, and a spread of
// likes and comments.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users and %d trips...", opts.NumUsers, opts.NumTrips)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	if err := Achievements(db); err != nil {
		return fmt.Errorf("failed to seed achievement catalog: %w", err)
	}

	factory := NewFactory(db, SeedOptions{SkipBcrypt: opts.NumUsers > 500})

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		return fmt.Errorf("no users created")
	}
	log.Printf("Created %d users", len(users))

	// Follow mesh: everyone follows a random quarter of the others.
	follows := 0
	for _, follower := range users {
		for _, followee := range users {
			if follower.ID == followee.ID || factory.rand.Intn(4) != 0 {
				continue
			}
			if err := factory.CreateFollow(follower, followee); err == nil {
				follows++
			}
		}
	}
	log.Printf("Created %d follow edges", follows)

	var catalog []models.Achievement
	if err := db.Find(&catalog).Error; err != nil {
		return fmt.Errorf("failed to load achievement catalog: %w", err)
	}

	activities := make([]*models.Activity, 0, opts.NumTrips*2)
	for i := 0; i < opts.NumTrips; i++ {
		owner := users[factory.rand.Intn(len(users))]

		trip, err := factory.CreateTrip(owner)
		if err != nil {
			return fmt.Errorf("failed to create trip: %w", err)
		}
		activity, err := factory.CreateTripActivity(trip)
		if err != nil {
			return fmt.Errorf("failed to create trip activity: %w", err)
		}
		activities = append(activities, activity)

		// Most trips carry a photo or two.
		for p := 0; p < factory.rand.Intn(3); p++ {
			photo, err := factory.CreatePhoto(trip)
			if err != nil {
				return fmt.Errorf("failed to create photo: %w", err)
			}
			photoActivity, err := factory.CreatePhotoActivity(photo)
			if err != nil {
				return fmt.Errorf("failed to create photo activity: %w", err)
			}
			activities = append(activities, photoActivity)
		}
	}
	log.Printf("Created %d activities", len(activities))

	// A scattering of achievement unlocks.
	unlocks := 0
	for _, user := range users {
		if factory.rand.Intn(3) != 0 || len(catalog) == 0 {
			continue
		}
		achievement := catalog[factory.rand.Intn(len(catalog))]
		unlock, err := factory.CreateUnlock(user, &achievement)
		if err != nil {
			continue // duplicate unlock for this user, skip
		}
		if _, err := factory.CreateUnlockActivity(unlock); err != nil {
			return fmt.Errorf("failed to create unlock activity: %w", err)
		}
		unlocks++
	}
	log.Printf("Created %d achievement unlocks", unlocks)

	// Likes and comments on random activities.
	likes, comments := 0, 0
	for _, activity := range activities {
		for _, user := range users {
			if factory.rand.Intn(5) == 0 {
				if err := factory.CreateLike(user, activity); err == nil {
					likes++
				}
			}
			if factory.rand.Intn(10) == 0 {
				if _, err := factory.CreateComment(user, activity); err == nil {
					comments++
				}
			}
		}
	}
	log.Printf("Created %d likes and %d comments", likes, comments)

	log.Println("Database seeding completed")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	if db.Dialector.Name() != "postgres" {
		tables := []string{
			"comment_reports", "comments", "likes", "activities",
			"user_achievements", "trip_photos", "trips", "follows", "users",
		}
		for _, table := range tables {
			if err := db.Exec("DELETE FROM " + table).Error; err != nil {
				return err
			}
		}
		return nil
	}
	sql := `TRUNCATE TABLE comment_reports, comments, likes, activities, user_achievements, trip_photos, trips, follows, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}
