package services

import (
	"time"

	"github.com/luci582/UnlockED-sub000/backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userCounters — текущие значения счетчиков, по которым выражены пороги
type userCounters struct {
	Reviews      int64
	HelpfulVotes int64
	Points       int
	Streak       int
}

// EvaluateAchievements compares the user's counters against every achievement
// threshold and unlocks the newly-satisfied ones, crediting each unlock's
// point reward. Because point rewards can push the user over a points
// threshold, one follow-up pass runs after any pass that unlocked something;
// the pass count is capped so mutually-referencing thresholds cannot loop.
// Re-running with unchanged counters is a no-op. Returns the newly unlocked
// achievements.
func EvaluateAchievements(tx *gorm.DB, userID uint) ([]models.Achievement, error) {
	var achievements []models.Achievement
	if err := tx.Find(&achievements).Error; err != nil {
		return nil, err
	}

	var unlocked []models.Achievement
	for pass := 0; pass < 2; pass++ {
		counters, err := loadCounters(tx, userID)
		if err != nil {
			return nil, err
		}

		newInPass := 0
		for _, a := range achievements {
			if counterValue(counters, a.Counter) < int64(a.Threshold) {
				continue
			}

			// Уникальный индекс (user, achievement) делает разблокировку
			// идемпотентной; конфликт означает "уже есть" и не ошибка
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&models.UserAchievement{
					UserID:        userID,
					AchievementID: a.ID,
					UnlockedAt:    time.Now().UTC(),
				})
			if res.Error != nil {
				return nil, res.Error
			}
			if res.RowsAffected == 0 {
				continue // already unlocked
			}

			if _, err := AwardAchievementPoints(tx, userID, a.Points); err != nil {
				return nil, err
			}
			unlocked = append(unlocked, a)
			newInPass++
		}

		if newInPass == 0 {
			break
		}
	}

	return unlocked, nil
}

func loadCounters(tx *gorm.DB, userID uint) (userCounters, error) {
	var c userCounters

	var user models.User
	if err := tx.First(&user, userID).Error; err != nil {
		return c, err
	}
	c.Points = user.TotalPoints
	c.Streak = user.ReviewStreak

	if err := tx.Model(&models.Review{}).
		Where("user_id = ?", userID).
		Count(&c.Reviews).Error; err != nil {
		return c, err
	}

	// Голоса "полезно", полученные по всем отзывам пользователя
	err := tx.Model(&models.Review{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(helpful_count), 0)").
		Scan(&c.HelpfulVotes).Error
	if err != nil {
		return c, err
	}

	return c, nil
}

func counterValue(c userCounters, counter string) int64 {
	switch counter {
	case models.CounterReviews:
		return c.Reviews
	case models.CounterHelpfulVotes:
		return c.HelpfulVotes
	case models.CounterPoints:
		return int64(c.Points)
	case models.CounterStreak:
		return int64(c.Streak)
	default:
		return 0
	}
}
