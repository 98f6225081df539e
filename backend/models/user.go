package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
	FirstName    string
	LastName     string
	Role         string `gorm:"default:student"` // student, instructor, admin
	TotalPoints  int    `gorm:"default:0"`
	ReviewStreak int    `gorm:"default:0"`
	LastReviewAt *time.Time
	IsVerified   bool `gorm:"default:false"` // открывает место в таблице лидеров
}

type LoginHistory struct {
	gorm.Model
	UserID    uint
	LoginTime time.Time
}
