package models

import "gorm.io/gorm"

type Course struct {
	gorm.Model
	Title        string `gorm:"not null"`
	ShortDesc    string
	Description  string
	Instructor   string
	Institution  string
	Faculty      string // engineering, business, arts, science, law, medicine
	Difficulty   string // beginner, intermediate, advanced
	DeliveryMode string // online, in-person, hybrid
	Price        float64
	EffortHours  int // estimated hours per week
	LogoURL      string

	// Derived aggregates, owned by services.RecalcCourseAggregates.
	// Rating is nil while the course has no reviews.
	Rating      *float64
	ReviewCount int `gorm:"default:0"`

	Skills     []Skill    `gorm:"many2many:course_skills"`
	Categories []Category `gorm:"many2many:course_categories"`
	Reviews    []Review
}

type Skill struct {
	gorm.Model
	Name string `gorm:"unique;not null"`
}

type Category struct {
	gorm.Model
	Name string `gorm:"unique;not null"`
}
