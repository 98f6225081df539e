package services

import (
	"errors"
	"time"

	"github.com/luci582/UnlockED-sub000/backend/models"
	"gorm.io/gorm"
)

var (
	ErrAlreadyReviewed = errors.New("you have already reviewed this course")
	ErrAlreadyVoted    = errors.New("you have already marked this review as helpful")
	ErrOwnReview       = errors.New("you cannot vote on your own review")
)

// ReviewInput — проверенные данные нового отзыва
type ReviewInput struct {
	CourseID         uint
	OverallRating    int
	DifficultyRating *int
	WorkloadRating   *int
	TeachingRating   *int
	Content          string
}

// SubmitResult reports everything a single submission changed, for the
// response payload.
type SubmitResult struct {
	Review        models.Review
	PointsAwarded int
	TotalPoints   int
	Streak        int
	NewBadges     []models.Achievement
}

// SubmitReview creates the review and, inside the same transaction, recounts
// the course aggregates, credits points, advances the streak and evaluates
// achievements. Any failure rolls the whole submission back — a review never
// exists with a stale course aggregate.
func SubmitReview(db *gorm.DB, userID uint, input ReviewInput) (*SubmitResult, error) {
	var result SubmitResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}

		var course models.Course
		if err := tx.First(&course, input.CourseID).Error; err != nil {
			return err
		}

		// Повторный отзыв на тот же курс отклоняется, а не перезаписывается;
		// уникальный индекс страхует от гонки двух одновременных отправок
		var existing int64
		err := tx.Model(&models.Review{}).
			Where("user_id = ? AND course_id = ?", userID, input.CourseID).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyReviewed
		}

		firstForCourse := course.ReviewCount == 0

		review := models.Review{
			UserID:           userID,
			CourseID:         input.CourseID,
			UserName:         user.Username,
			OverallRating:    input.OverallRating,
			DifficultyRating: input.DifficultyRating,
			WorkloadRating:   input.WorkloadRating,
			TeachingRating:   input.TeachingRating,
			Content:          input.Content,
		}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		if err := RecalcCourseAggregates(tx, input.CourseID); err != nil {
			return err
		}

		before := user.TotalPoints
		total, err := AwardPoints(tx, userID, ActionSubmitReview)
		if err != nil {
			return err
		}
		if firstForCourse {
			if total, err = AwardPoints(tx, userID, ActionFirstCourseReview); err != nil {
				return err
			}
		}
		if len(input.Content) >= DetailedReviewMinChars {
			if total, err = AwardPoints(tx, userID, ActionDetailedReview); err != nil {
				return err
			}
		}

		continued, err := TouchReviewStreak(tx, userID, time.Now().UTC())
		if err != nil {
			return err
		}
		if continued {
			if total, err = AwardPoints(tx, userID, ActionStreakContinued); err != nil {
				return err
			}
		}

		unlocked, err := EvaluateAchievements(tx, userID)
		if err != nil {
			return err
		}

		if total, err = currentPoints(tx, userID); err != nil {
			return err
		}

		var fresh models.User
		if err := tx.First(&fresh, userID).Error; err != nil {
			return err
		}

		result = SubmitResult{
			Review:        review,
			PointsAwarded: total - before,
			TotalPoints:   total,
			Streak:        fresh.ReviewStreak,
			NewBadges:     unlocked,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// DeleteReview removes a review (admin action) and recounts the course
// aggregates in the same transaction. The row is hard-deleted so the author
// may review the course again later.
func DeleteReview(db *gorm.DB, reviewID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, reviewID).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().Delete(&review).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().
			Where("review_id = ?", reviewID).
			Delete(&models.ReviewHelpfulVote{}).Error; err != nil {
			return err
		}

		return RecalcCourseAggregates(tx, review.CourseID)
	})
}

// MarkReviewHelpful records a helpful vote, bumps the review's counter and
// credits the review author, all in one transaction.
func MarkReviewHelpful(db *gorm.DB, reviewID, voterID uint) (*models.Review, error) {
	var updated models.Review

	err := db.Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, reviewID).Error; err != nil {
			return err
		}
		if review.UserID == voterID {
			return ErrOwnReview
		}

		var existing int64
		err := tx.Model(&models.ReviewHelpfulVote{}).
			Where("review_id = ? AND user_id = ?", reviewID, voterID).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyVoted
		}

		vote := models.ReviewHelpfulVote{ReviewID: reviewID, UserID: voterID}
		if err := tx.Create(&vote).Error; err != nil {
			return err
		}

		// Атомарный инкремент, без чтения-изменения-записи
		err = tx.Model(&models.Review{}).
			Where("id = ?", reviewID).
			UpdateColumn("helpful_count", gorm.Expr("helpful_count + 1")).Error
		if err != nil {
			return err
		}

		if _, err := AwardPoints(tx, review.UserID, ActionHelpfulVote); err != nil {
			return err
		}
		if _, err := EvaluateAchievements(tx, review.UserID); err != nil {
			return err
		}

		return tx.First(&updated, reviewID).Error
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}
