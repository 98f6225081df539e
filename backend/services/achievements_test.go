package services

import (
	"testing"

	"github.com/luci582/UnlockED-sub000/backend/models"
	"github.com/stretchr/testify/assert"
)

func TestEvaluateAchievementsUnlocksFirstReview(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alice", true)
	course := createCourse(t, db, "COMP1511 Programming Fundamentals")
	createReview(t, db, user.ID, course.ID, 5)

	unlocked, err := EvaluateAchievements(db, user.ID)
	assert.NoError(t, err)

	names := make([]string, 0, len(unlocked))
	for _, a := range unlocked {
		names = append(names, a.Name)
	}
	assert.Contains(t, names, "First Review")

	// Награда за достижение зачислена
	var fresh models.User
	assert.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, 100, fresh.TotalPoints)
}

func TestEvaluateAchievementsIdempotent(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alice", true)
	course := createCourse(t, db, "COMP1511 Programming Fundamentals")
	createReview(t, db, user.ID, course.ID, 5)

	first, err := EvaluateAchievements(db, user.ID)
	assert.NoError(t, err)
	assert.NotEmpty(t, first)

	var pointsAfterFirst models.User
	assert.NoError(t, db.First(&pointsAfterFirst, user.ID).Error)

	// Повторный прогон без изменения счетчиков ничего не разблокирует
	second, err := EvaluateAchievements(db, user.ID)
	assert.NoError(t, err)
	assert.Empty(t, second)

	var fresh models.User
	assert.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, pointsAfterFirst.TotalPoints, fresh.TotalPoints)

	var unlockRows int64
	db.Model(&models.UserAchievement{}).Where("user_id = ?", user.ID).Count(&unlockRows)
	assert.Equal(t, int64(len(first)), unlockRows)
}

func TestEvaluateAchievementsRewardTriggersPointsThreshold(t *testing.T) {
	db := newTestDB(t)
	clearAchievements(t, db)

	reviewer := models.Achievement{Name: "Reviewer", Counter: models.CounterReviews, Threshold: 1, Points: 1000}
	grinder := models.Achievement{Name: "Grinder", Counter: models.CounterPoints, Threshold: 1000, Points: 50}
	assert.NoError(t, db.Create(&reviewer).Error)
	assert.NoError(t, db.Create(&grinder).Error)

	user := createUser(t, db, "alice", true)
	course := createCourse(t, db, "COMP1511 Programming Fundamentals")
	createReview(t, db, user.ID, course.ID, 4)

	// Награда первого прохода переводит пользователя через порог очков,
	// который подхватывает второй (и последний) проход
	unlocked, err := EvaluateAchievements(db, user.ID)
	assert.NoError(t, err)
	assert.Len(t, unlocked, 2)

	var fresh models.User
	assert.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, 1050, fresh.TotalPoints)
}

func TestEvaluateAchievementsSinglePassWhenNothingNew(t *testing.T) {
	db := newTestDB(t)
	clearAchievements(t, db)

	high := models.Achievement{Name: "Unreachable", Counter: models.CounterPoints, Threshold: 100000, Points: 1}
	assert.NoError(t, db.Create(&high).Error)

	user := createUser(t, db, "alice", true)

	unlocked, err := EvaluateAchievements(db, user.ID)
	assert.NoError(t, err)
	assert.Empty(t, unlocked)
}

func TestEvaluateAchievementsHelpfulVotesCounter(t *testing.T) {
	db := newTestDB(t)
	clearAchievements(t, db)

	helpful := models.Achievement{Name: "Helpful", Counter: models.CounterHelpfulVotes, Threshold: 3, Points: 10}
	assert.NoError(t, db.Create(&helpful).Error)

	user := createUser(t, db, "alice", true)
	course := createCourse(t, db, "COMP1511 Programming Fundamentals")
	review := createReview(t, db, user.ID, course.ID, 5)

	// Два голоса — порог не достигнут
	assert.NoError(t, db.Model(&review).UpdateColumn("helpful_count", 2).Error)
	unlocked, err := EvaluateAchievements(db, user.ID)
	assert.NoError(t, err)
	assert.Empty(t, unlocked)

	assert.NoError(t, db.Model(&review).UpdateColumn("helpful_count", 3).Error)
	unlocked, err = EvaluateAchievements(db, user.ID)
	assert.NoError(t, err)
	assert.Len(t, unlocked, 1)
	assert.Equal(t, "Helpful", unlocked[0].Name)
}

func TestEvaluateAchievementsStreakCounter(t *testing.T) {
	db := newTestDB(t)
	clearAchievements(t, db)

	streak := models.Achievement{Name: "Streaker", Counter: models.CounterStreak, Threshold: 3, Points: 10}
	assert.NoError(t, db.Create(&streak).Error)

	user := createUser(t, db, "alice", true)
	assert.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		UpdateColumn("review_streak", 3).Error)

	unlocked, err := EvaluateAchievements(db, user.ID)
	assert.NoError(t, err)
	assert.Len(t, unlocked, 1)
	assert.Equal(t, "Streaker", unlocked[0].Name)
}
