package tests

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReviewLifecycle(t *testing.T) {
	courseID := createCourseViaAPI(t, "COMP2511 Object-Oriented Design", nil)

	// Первый отзыв: 50 за отзыв + 100 за первый отзыв курса + 100 за достижение
	resp, result := doRequest(t, "POST", "/api/reviews", studentToken, map[string]interface{}{
		"course_id":      courseID,
		"overall_rating": 4,
		"content":        "Well structured assignments.",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	data := result["data"].(map[string]interface{})
	assert.Equal(t, float64(250), data["points_awarded"])
	assert.Equal(t, float64(1), data["review_streak"])

	unlocked := data["new_achievements"].([]interface{})
	names := make([]string, 0, len(unlocked))
	for _, raw := range unlocked {
		names = append(names, raw.(map[string]interface{})["name"].(string))
	}
	assert.Contains(t, names, "First Review")

	review := data["review"].(map[string]interface{})
	reviewID := uint(review["id"].(float64))

	// Агрегаты курса пересчитаны в той же транзакции
	_, details := doRequest(t, "GET", fmt.Sprintf("/api/courses/%d", courseID), "", nil)
	course := details["data"].(map[string]interface{})
	assert.Equal(t, float64(4), course["rating"])
	assert.Equal(t, float64(1), course["review_count"])

	// Повторный отзыв того же пользователя отклоняется
	resp, _ = doRequest(t, "POST", "/api/reviews", studentToken, map[string]interface{}{
		"course_id":      courseID,
		"overall_rating": 2,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Голос "полезно" от другого пользователя
	resp, voteResult := doRequest(t, "POST", fmt.Sprintf("/api/reviews/%d/helpful", reviewID), voterToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	voteData := voteResult["data"].(map[string]interface{})
	assert.Equal(t, float64(1), voteData["helpful_count"])

	// Повторный голос отклоняется
	resp, _ = doRequest(t, "POST", fmt.Sprintf("/api/reviews/%d/helpful", reviewID), voterToken, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Свой отзыв голосовать нельзя
	resp, _ = doRequest(t, "POST", fmt.Sprintf("/api/reviews/%d/helpful", reviewID), studentToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Удаление — только для администратора
	resp, _ = doRequest(t, "DELETE", fmt.Sprintf("/api/reviews/%d", reviewID), studentToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doRequest(t, "DELETE", fmt.Sprintf("/api/reviews/%d", reviewID), adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// После удаления агрегаты возвращаются к нулю
	_, details = doRequest(t, "GET", fmt.Sprintf("/api/courses/%d", courseID), "", nil)
	course = details["data"].(map[string]interface{})
	assert.Nil(t, course["rating"])
	assert.Equal(t, float64(0), course["review_count"])
}

func TestCreateReviewValidation(t *testing.T) {
	courseID := createCourseViaAPI(t, "PSYC1001 Psychology 1A", nil)

	resp, _ := doRequest(t, "POST", "/api/reviews", studentToken, map[string]interface{}{
		"course_id":      courseID,
		"overall_rating": 6,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestCreateReviewUnknownCourse(t *testing.T) {
	resp, _ := doRequest(t, "POST", "/api/reviews", studentToken, map[string]interface{}{
		"course_id":      99999,
		"overall_rating": 4,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateReviewRequiresAuth(t *testing.T) {
	resp, _ := doRequest(t, "POST", "/api/reviews", "", map[string]interface{}{
		"course_id":      1,
		"overall_rating": 4,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUserAchievementsEndpoint(t *testing.T) {
	resp, result := doRequest(t, "GET", "/api/user/achievements", studentToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := result["data"].(map[string]interface{})
	catalogue := data["achievements"].([]interface{})
	assert.NotEmpty(t, catalogue)

	// После TestReviewLifecycle у студента разблокирован First Review
	foundUnlocked := false
	for _, raw := range catalogue {
		entry := raw.(map[string]interface{})
		if entry["name"] == "First Review" && entry["unlocked"] == true {
			foundUnlocked = true
		}
	}
	assert.True(t, foundUnlocked)
}
