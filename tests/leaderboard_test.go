package tests

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/luci582/UnlockED-sub000/backend/models"
	"github.com/stretchr/testify/assert"
)

func TestLeaderboard(t *testing.T) {
	champion := models.User{
		Username:     "champion",
		Email:        "champion@example.com",
		PasswordHash: "x",
		Role:         models.RoleStudent,
		IsVerified:   true,
		TotalPoints:  100000,
		ReviewStreak: 9,
	}
	assert.NoError(t, db.Create(&champion).Error)

	runnerUp := models.User{
		Username:     "runnerup",
		Email:        "runnerup@example.com",
		PasswordHash: "x",
		Role:         models.RoleStudent,
		IsVerified:   true,
		TotalPoints:  50000,
		ReviewStreak: 2,
	}
	assert.NoError(t, db.Create(&runnerUp).Error)

	resp, result := doRequest(t, "GET", "/api/leaderboard", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := result["data"].(map[string]interface{})
	entries := data["leaderboard"].([]interface{})
	assert.GreaterOrEqual(t, len(entries), 2)

	first := entries[0].(map[string]interface{})
	assert.Equal(t, "champion", first["username"])
	assert.Equal(t, float64(1), first["rank"])
	assert.Equal(t, "Elite Reviewer", first["badge"])

	second := entries[1].(map[string]interface{})
	assert.Equal(t, "runnerup", second["username"])
	assert.Equal(t, float64(2), second["rank"])

	// Очки не возрастают вниз по списку, ранги плотные
	prev := first["totalPoints"].(float64)
	for i, raw := range entries {
		entry := raw.(map[string]interface{})
		assert.Equal(t, float64(i+1), entry["rank"])
		points := entry["totalPoints"].(float64)
		assert.LessOrEqual(t, points, prev)
		prev = points
	}
}

func TestLeaderboardLimitParam(t *testing.T) {
	resp, result := doRequest(t, "GET", "/api/leaderboard?limit=1", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := result["data"].(map[string]interface{})
	entries := data["leaderboard"].([]interface{})
	assert.Len(t, entries, 1)
}

func TestUserPositionEndpoint(t *testing.T) {
	var champion models.User
	assert.NoError(t, db.Where("username = ?", "champion").First(&champion).Error)

	resp, result := doRequest(t, "GET", fmt.Sprintf("/api/leaderboard/position/%d", champion.ID), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := result["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["rank"])
	assert.Equal(t, float64(100000), data["totalPoints"])
}

func TestUserPositionUnverified(t *testing.T) {
	ghost := models.User{
		Username:     "ghost",
		Email:        "ghost@example.com",
		PasswordHash: "x",
		Role:         models.RoleStudent,
		IsVerified:   false,
	}
	assert.NoError(t, db.Create(&ghost).Error)

	resp, _ := doRequest(t, "GET", fmt.Sprintf("/api/leaderboard/position/%d", ghost.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
