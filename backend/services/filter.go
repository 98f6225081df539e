package services

import (
	"sort"
	"strings"
	"unicode"

	"github.com/luci582/UnlockED-sub000/backend/models"
)

// CourseFilter is the in-memory filter over a fetched course page. Groups are
// combined with AND; faculties, modes and rating buckets match any selected
// value within the group, while skills require the course to carry every
// selected skill.
type CourseFilter struct {
	Faculties  []string
	Modes      []string
	MinRatings []float64 // rating buckets, ">= floor" semantics, OR-combined
	Skills     []string  // conjunctive
}

type CourseSort string

const (
	SortTopRated     CourseSort = "top_rated"     // rating desc, unrated last
	SortMostReviewed CourseSort = "most_reviewed" // review count desc
	SortCourseCode   CourseSort = "course_code"   // alphabetical by extracted code
	SortNewest       CourseSort = "newest"        // creation date desc
)

func (f CourseFilter) IsZero() bool {
	return len(f.Faculties) == 0 && len(f.Modes) == 0 &&
		len(f.MinRatings) == 0 && len(f.Skills) == 0
}

// Apply returns the courses matching the filter, preserving input order.
func (f CourseFilter) Apply(courses []models.Course) []models.Course {
	if f.IsZero() {
		return courses
	}

	out := make([]models.Course, 0, len(courses))
	for _, course := range courses {
		if f.matches(course) {
			out = append(out, course)
		}
	}
	return out
}

func (f CourseFilter) matches(course models.Course) bool {
	if len(f.Faculties) > 0 && !containsFold(f.Faculties, course.Faculty) {
		return false
	}
	if len(f.Modes) > 0 && !containsFold(f.Modes, course.DeliveryMode) {
		return false
	}

	if len(f.MinRatings) > 0 {
		if course.Rating == nil {
			return false
		}
		matched := false
		for _, floor := range f.MinRatings {
			if *course.Rating >= floor {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	// Курс должен обладать каждым выбранным навыком
	for _, want := range f.Skills {
		found := false
		for _, skill := range course.Skills {
			if strings.EqualFold(skill.Name, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// SortCourses orders the slice in place. Stable for equal keys.
func SortCourses(courses []models.Course, order CourseSort) {
	switch order {
	case SortTopRated:
		sort.SliceStable(courses, func(i, j int) bool {
			return ratingOrZero(courses[i]) > ratingOrZero(courses[j])
		})
	case SortMostReviewed:
		sort.SliceStable(courses, func(i, j int) bool {
			return courses[i].ReviewCount > courses[j].ReviewCount
		})
	case SortCourseCode:
		sort.SliceStable(courses, func(i, j int) bool {
			return ExtractCourseCode(courses[i].Title) < ExtractCourseCode(courses[j].Title)
		})
	case SortNewest:
		sort.SliceStable(courses, func(i, j int) bool {
			return courses[i].CreatedAt.After(courses[j].CreatedAt)
		})
	}
}

func ratingOrZero(c models.Course) float64 {
	if c.Rating == nil {
		return 0
	}
	return *c.Rating
}

// ExtractCourseCode returns the leading course code of a title like
// "COMP1511 Programming Fundamentals". A first token qualifies as a code when
// it mixes letters and digits; otherwise the whole title is the sort key.
func ExtractCourseCode(title string) string {
	token, _, _ := strings.Cut(strings.TrimSpace(title), " ")
	hasLetter, hasDigit := false, false
	for _, r := range token {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if hasLetter && hasDigit {
		return strings.ToUpper(token)
	}
	return strings.ToUpper(title)
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}
