package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/luci582/UnlockED-sub000/backend/models"
	"github.com/luci582/UnlockED-sub000/backend/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB — отдельная in-memory база на каждый тест
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := utils.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

// clearAchievements удаляет посевной справочник, когда тесту нужен свой
func clearAchievements(t *testing.T, db *gorm.DB) {
	t.Helper()
	if err := db.Unscoped().Where("1 = 1").Delete(&models.Achievement{}).Error; err != nil {
		t.Fatalf("clear achievements: %v", err)
	}
}

func createUser(t *testing.T, db *gorm.DB, username string, verified bool) models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         models.RoleStudent,
		IsVerified:   verified,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func createCourse(t *testing.T, db *gorm.DB, title string) models.Course {
	t.Helper()
	course := models.Course{Title: title}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("create course %s: %v", title, err)
	}
	return course
}

func createReview(t *testing.T, db *gorm.DB, userID, courseID uint, rating int) models.Review {
	t.Helper()
	review := models.Review{UserID: userID, CourseID: courseID, OverallRating: rating}
	if err := db.Create(&review).Error; err != nil {
		t.Fatalf("create review: %v", err)
	}
	if err := RecalcCourseAggregates(db, courseID); err != nil {
		t.Fatalf("recalc aggregates: %v", err)
	}
	return review
}

func setLastReview(t *testing.T, db *gorm.DB, userID uint, at time.Time, streak int) {
	t.Helper()
	err := db.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumns(map[string]interface{}{
			"last_review_at": at,
			"review_streak":  streak,
		}).Error
	if err != nil {
		t.Fatalf("set last review: %v", err)
	}
}
