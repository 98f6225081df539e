package utils

import (
	"fmt"

	"github.com/luci582/UnlockED-sub000/backend/config"
	"github.com/luci582/UnlockED-sub000/backend/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB открывает соединение с Postgres и прогоняет миграции
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate applies the schema and seeds reference data. Shared with the test
// suite, which runs it against an in-memory sqlite database.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.LoginHistory{},
		&models.Course{},
		&models.Skill{},
		&models.Category{},
		&models.Review{},
		&models.ReviewHelpfulVote{},
		&models.Achievement{},
		&models.UserAchievement{},
	)
	if err != nil {
		return err
	}

	return seedAchievements(db)
}

// seedAchievements заполняет справочник достижений при первом запуске
func seedAchievements(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Achievement{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []models.Achievement{
		{Name: "First Review", Description: "Submit your first course review", Icon: "pencil", Counter: models.CounterReviews, Threshold: 1, Points: 100},
		{Name: "Prolific Reviewer", Description: "Submit 5 course reviews", Icon: "stack", Counter: models.CounterReviews, Threshold: 5, Points: 250},
		{Name: "Course Critic", Description: "Submit 20 course reviews", Icon: "trophy", Counter: models.CounterReviews, Threshold: 20, Points: 500},
		{Name: "Helping Hand", Description: "Receive 10 helpful votes", Icon: "thumbs-up", Counter: models.CounterHelpfulVotes, Threshold: 10, Points: 100},
		{Name: "Crowd Favourite", Description: "Receive 50 helpful votes", Icon: "star", Counter: models.CounterHelpfulVotes, Threshold: 50, Points: 300},
		{Name: "On a Roll", Description: "Review in 3 consecutive weeks", Icon: "flame", Counter: models.CounterStreak, Threshold: 3, Points: 150},
		{Name: "Semester Streak", Description: "Review in 12 consecutive weeks", Icon: "calendar", Counter: models.CounterStreak, Threshold: 12, Points: 500},
		{Name: "Point Collector", Description: "Accumulate 1000 points", Icon: "gem", Counter: models.CounterPoints, Threshold: 1000, Points: 200},
	}

	return db.Create(&defaults).Error
}
