package models

import (
	"time"

	"gorm.io/gorm"
)

// Counter keys an Achievement threshold can be expressed over.
const (
	CounterReviews      = "reviews"       // total reviews submitted
	CounterHelpfulVotes = "helpful_votes" // helpful votes received across own reviews
	CounterPoints       = "points"        // total accumulated points
	CounterStreak       = "streak"        // consecutive review weeks
)

type Achievement struct {
	gorm.Model
	Name        string `gorm:"unique;not null"`
	Description string
	Icon        string
	Counter     string `gorm:"not null"` // reviews, helpful_votes, points, streak
	Threshold   int    `gorm:"not null"`
	Points      int    `gorm:"default:0"` // awarded on unlock
}

// UserAchievement — разблокируется не более одного раза на пользователя.
type UserAchievement struct {
	gorm.Model
	UserID        uint `gorm:"not null;uniqueIndex:idx_user_achievement"`
	AchievementID uint `gorm:"not null;uniqueIndex:idx_user_achievement"`
	UnlockedAt    time.Time
}
