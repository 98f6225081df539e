package services

import (
	"errors"
	"time"

	"github.com/luci582/UnlockED-sub000/backend/models"
	"gorm.io/gorm"
)

// ErrNotRanked — пользователь не участвует в рейтинге (не верифицирован)
var ErrNotRanked = errors.New("user is not ranked")

// LeaderboardEntry is a derived projection, recomputed per request and never
// persisted.
type LeaderboardEntry struct {
	Rank         int       `json:"rank"`
	UserID       uint      `json:"userId"`
	Username     string    `json:"username"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	TotalPoints  int       `json:"totalPoints"`
	ReviewStreak int       `json:"reviewStreak"`
	ReviewCount  int64     `json:"reviewCount"`
	Badge        string    `json:"badge"`
	JoinedAt     time.Time `json:"joinedAt"`
}

type UserPosition struct {
	Rank       int    `json:"rank"`
	TotalUsers int64  `json:"totalUsers"`
	Points     int    `json:"totalPoints"`
	Streak     int    `json:"reviewStreak"`
	Badge      string `json:"badge"`
}

type leaderboardRow struct {
	models.User
	ReviewCount int64
}

// leaderboardOrder — единый порядок сортировки: очки, серия, стаж, id.
// Ничья невозможна, id уникален
const leaderboardOrder = "total_points DESC, review_streak DESC, created_at ASC, id ASC"

// GetLeaderboard returns the top limit verified users with dense 1-based
// ranks assigned by sorted position.
func GetLeaderboard(db *gorm.DB, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 25
	}

	var rows []leaderboardRow
	err := db.Model(&models.User{}).
		Select("users.*, (SELECT COUNT(*) FROM reviews WHERE reviews.user_id = users.id AND reviews.deleted_at IS NULL) AS review_count").
		Where("is_verified = ?", true).
		Order(leaderboardOrder).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, LeaderboardEntry{
			Rank:         i + 1,
			UserID:       row.ID,
			Username:     row.Username,
			FirstName:    row.FirstName,
			LastName:     row.LastName,
			TotalPoints:  row.TotalPoints,
			ReviewStreak: row.ReviewStreak,
			ReviewCount:  row.ReviewCount,
			Badge:        BadgeFor(row.TotalPoints, row.ReviewCount),
			JoinedAt:     row.CreatedAt,
		})
	}

	return entries, nil
}

// GetUserPosition computes a single user's rank as 1 + the number of verified
// users strictly ahead under the leaderboard comparator, without materializing
// the list. Consistent with GetLeaderboard's sort-and-index by construction:
// the WHERE clause spells out the same comparator chain.
func GetUserPosition(db *gorm.DB, userID uint) (*UserPosition, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	if !user.IsVerified {
		return nil, ErrNotRanked
	}

	var above int64
	err := db.Model(&models.User{}).
		Where("is_verified = ?", true).
		Where(`total_points > ?
			OR (total_points = ? AND review_streak > ?)
			OR (total_points = ? AND review_streak = ? AND created_at < ?)
			OR (total_points = ? AND review_streak = ? AND created_at = ? AND id < ?)`,
			user.TotalPoints,
			user.TotalPoints, user.ReviewStreak,
			user.TotalPoints, user.ReviewStreak, user.CreatedAt,
			user.TotalPoints, user.ReviewStreak, user.CreatedAt, user.ID).
		Count(&above).Error
	if err != nil {
		return nil, err
	}

	var total int64
	err = db.Model(&models.User{}).
		Where("is_verified = ?", true).
		Count(&total).Error
	if err != nil {
		return nil, err
	}

	var reviews int64
	if err := db.Model(&models.Review{}).Where("user_id = ?", userID).Count(&reviews).Error; err != nil {
		return nil, err
	}

	return &UserPosition{
		Rank:       int(above) + 1,
		TotalUsers: total,
		Points:     user.TotalPoints,
		Streak:     user.ReviewStreak,
		Badge:      BadgeFor(user.TotalPoints, reviews),
	}, nil
}

// BadgeFor picks the display badge by the highest satisfied threshold.
// Points thresholds are checked in strict descending order, then review-count
// thresholds; the first match wins.
func BadgeFor(points int, reviewCount int64) string {
	switch {
	case points >= 1000:
		return "Elite Reviewer"
	case points >= 500:
		return "Top Contributor"
	case points >= 200:
		return "Rising Star"
	case points >= 100:
		return "Active Member"
	case reviewCount >= 5:
		return "Regular Reviewer"
	case reviewCount >= 1:
		return "Contributor"
	default:
		return "New Member"
	}
}
