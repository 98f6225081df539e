package tests

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func createCourseViaAPI(t *testing.T, title string, skills []string) uint {
	t.Helper()

	resp, result := doRequest(t, "POST", "/api/admin/courses", adminToken, map[string]interface{}{
		"title":         title,
		"faculty":       "engineering",
		"delivery_mode": "online",
		"skills":        skills,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	data := result["data"].(map[string]interface{})
	course := data["course"].(map[string]interface{})
	return uint(course["id"].(float64))
}

func TestCreateCourseRequiresAdmin(t *testing.T) {
	resp, _ := doRequest(t, "POST", "/api/admin/courses", studentToken, map[string]interface{}{
		"title": "COMP1000 Forbidden Course",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCreateAndListCourses(t *testing.T) {
	createCourseViaAPI(t, "COMP1511 Programming Fundamentals", []string{"C", "Programming"})

	resp, result := doRequest(t, "GET", "/api/courses", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, result["success"])

	data := result["data"].([]interface{})
	assert.NotEmpty(t, data)

	found := false
	for _, raw := range data {
		course := raw.(map[string]interface{})
		if course["title"] == "COMP1511 Programming Fundamentals" {
			found = true
			assert.ElementsMatch(t, []interface{}{"C", "Programming"}, course["skills"])
		}
	}
	assert.True(t, found)
}

func TestListCoursesSkillFilter(t *testing.T) {
	createCourseViaAPI(t, "COMP6080 Web Front-End Programming", []string{"React", "JavaScript"})
	createCourseViaAPI(t, "MATH1081 Discrete Mathematics", []string{"Proofs"})

	resp, result := doRequest(t, "GET", "/api/courses?skills=React,JavaScript", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := result["data"].([]interface{})
	assert.NotEmpty(t, data)
	for _, raw := range data {
		course := raw.(map[string]interface{})
		assert.Contains(t, course["skills"], "React")
		assert.Contains(t, course["skills"], "JavaScript")
	}
}

func TestGetCourseDetails(t *testing.T) {
	courseID := createCourseViaAPI(t, "ARTS1000 Introduction to Media", nil)

	resp, result := doRequest(t, "GET", fmt.Sprintf("/api/courses/%d", courseID), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := result["data"].(map[string]interface{})
	assert.Equal(t, "ARTS1000 Introduction to Media", data["title"])
	assert.Nil(t, data["rating"])
	assert.Equal(t, float64(0), data["review_count"])
}

func TestGetCourseDetailsNotFound(t *testing.T) {
	resp, _ := doRequest(t, "GET", "/api/courses/99999", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateCourse(t *testing.T) {
	courseID := createCourseViaAPI(t, "ACCT1501 Accounting 1A", nil)

	resp, _ := doRequest(t, "PUT", fmt.Sprintf("/api/admin/courses/%d", courseID), adminToken, map[string]interface{}{
		"title":   "ACCT1501 Accounting and Financial Management 1A",
		"faculty": "business",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, result := doRequest(t, "GET", fmt.Sprintf("/api/courses/%d", courseID), "", nil)
	data := result["data"].(map[string]interface{})
	assert.Equal(t, "ACCT1501 Accounting and Financial Management 1A", data["title"])
	assert.Equal(t, "business", data["faculty"])
}

func TestDeleteCourse(t *testing.T) {
	courseID := createCourseViaAPI(t, "DELE1000 Temporary Course", nil)

	resp, _ := doRequest(t, "DELETE", fmt.Sprintf("/api/admin/courses/%d", courseID), adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, "GET", fmt.Sprintf("/api/courses/%d", courseID), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
