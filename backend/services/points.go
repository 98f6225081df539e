package services

import (
	"fmt"
	"time"

	"github.com/luci582/UnlockED-sub000/backend/models"
	"gorm.io/gorm"
)

// Action is a point-earning event. The delta table is fixed and not
// user-configurable.
type Action string

const (
	ActionSubmitReview      Action = "submit_review"       // +50
	ActionHelpfulVote       Action = "helpful_vote"        // +5, goes to the review author
	ActionDetailedReview    Action = "detailed_review"     // +25
	ActionFirstCourseReview Action = "first_course_review" // +100, first review the course ever received
	ActionStreakContinued   Action = "streak_continued"    // +50
)

var actionPoints = map[Action]int{
	ActionSubmitReview:      50,
	ActionHelpfulVote:       5,
	ActionDetailedReview:    25,
	ActionFirstCourseReview: 100,
	ActionStreakContinued:   50,
}

// DetailedReviewMinChars — отзыв длиннее этого порога считается развернутым
// и приносит бонус ActionDetailedReview
const DetailedReviewMinChars = 200

// AwardPoints applies the fixed delta for the action to the user's total and
// returns the new total. The increment is a single UPDATE expression, not a
// read-modify-write, so concurrent submissions cannot lose updates.
func AwardPoints(tx *gorm.DB, userID uint, action Action) (int, error) {
	delta, ok := actionPoints[action]
	if !ok {
		return 0, fmt.Errorf("unknown point action %q", action)
	}
	return addPoints(tx, userID, delta)
}

// AwardAchievementPoints credits an achievement's reward, which is not part of
// the fixed action table.
func AwardAchievementPoints(tx *gorm.DB, userID uint, points int) (int, error) {
	if points <= 0 {
		return currentPoints(tx, userID)
	}
	return addPoints(tx, userID, points)
}

func addPoints(tx *gorm.DB, userID uint, delta int) (int, error) {
	res := tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("total_points", gorm.Expr("total_points + ?", delta))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return currentPoints(tx, userID)
}

func currentPoints(tx *gorm.DB, userID uint) (int, error) {
	var user models.User
	if err := tx.Select("total_points").First(&user, userID).Error; err != nil {
		return 0, err
	}
	return user.TotalPoints, nil
}

// TouchReviewStreak updates the user's review streak for a review submitted
// at the given time. A streak period is a calendar week (Monday-start, UTC):
// reviewing in the week immediately after the week of the previous review
// extends the streak, a second review inside the same week changes nothing,
// and a longer gap resets the streak to 1. Returns whether the streak was
// extended, so the caller can pay the continuation bonus.
func TouchReviewStreak(tx *gorm.DB, userID uint, now time.Time) (bool, error) {
	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		return false, err
	}

	continued := false
	streak := user.ReviewStreak

	switch {
	case user.LastReviewAt == nil:
		streak = 1
	case weekStart(now).Equal(weekStart(*user.LastReviewAt)):
		// тот же период — серия не меняется
		if streak == 0 {
			streak = 1
		}
	case weekStart(now).Sub(weekStart(*user.LastReviewAt)) == 7*24*time.Hour:
		streak++
		continued = true
	default:
		streak = 1
	}

	err := tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumns(map[string]interface{}{
			"review_streak":  streak,
			"last_review_at": now,
		}).Error
	if err != nil {
		return false, err
	}

	return continued, nil
}

// ResetReviewStreak — админское действие, единственный путь к нулевой серии
func ResetReviewStreak(tx *gorm.DB, userID uint) error {
	res := tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("review_streak", 0)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// weekStart truncates to Monday 00:00 UTC of the week containing t.
func weekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}
