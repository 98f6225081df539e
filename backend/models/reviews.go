package models

import "gorm.io/gorm"

// Review — максимум один отзыв на пару (пользователь, курс).
type Review struct {
	gorm.Model
	UserID   uint `gorm:"not null;uniqueIndex:idx_review_user_course"`
	CourseID uint `gorm:"not null;uniqueIndex:idx_review_user_course"`
	UserName string

	OverallRating    int `gorm:"not null;check:overall_rating>=1 AND overall_rating<=5"`
	DifficultyRating *int
	WorkloadRating   *int
	TeachingRating   *int

	Content      string
	HelpfulCount int `gorm:"default:0"`
}

// ReviewHelpfulVote — один голос "полезно" на пару (отзыв, пользователь).
type ReviewHelpfulVote struct {
	gorm.Model
	ReviewID uint `gorm:"not null;uniqueIndex:idx_vote_review_user"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_vote_review_user"`
}
