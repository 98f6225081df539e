package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/luci582/UnlockED-sub000/backend/config"
	"github.com/luci582/UnlockED-sub000/backend/models"
	"github.com/luci582/UnlockED-sub000/backend/services"
	"github.com/luci582/UnlockED-sub000/backend/utils"
	"gorm.io/gorm"
)

type CoursesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCoursesController(db *gorm.DB, cfg *config.Config) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg}
}

// ListCourses godoc
// @Summary List courses
// @Description Returns a paginated course directory with nested skills and categories.
// @Description Filter groups combine with AND; values inside a group with OR, except
// @Description skills which must all be present. Rating buckets use ">= floor".
// @Tags courses
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Param faculty query string false "Comma-separated faculties"
// @Param mode query string false "Comma-separated delivery modes"
// @Param min_rating query string false "Comma-separated rating floors (e.g. 4,3)"
// @Param skills query string false "Comma-separated skills (course must have all)"
// @Param sort query string false "top_rated|most_reviewed|course_code|newest"
// @Success 200 {object} utils.PaginatedResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /courses [get]
func (cc *CoursesController) ListCourses(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total int64
	cc.DB.Model(&models.Course{}).Count(&total)

	var courses []models.Course
	err := cc.DB.Preload("Skills").Preload("Categories").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&courses).Error
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch courses")
	}

	// Фильтрация и сортировка — проекция поверх выбранной страницы
	filter := services.CourseFilter{
		Faculties:  splitParam(c.Query("faculty")),
		Modes:      splitParam(c.Query("mode")),
		Skills:     splitParam(c.Query("skills")),
		MinRatings: parseFloats(splitParam(c.Query("min_rating"))),
	}
	courses = filter.Apply(courses)
	services.SortCourses(courses, services.CourseSort(c.Query("sort")))

	result := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		result = append(result, courseSummary(course))
	}

	return utils.Paginate(c, result, total, page, pageSize)
}

// GetCourseDetails godoc
// @Summary Get course details
// @Description Returns a single course with its reviews, skills and categories
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /courses/{id} [get]
func (cc *CoursesController) GetCourseDetails(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	err = cc.DB.Preload("Skills").Preload("Categories").Preload("Reviews").
		First(&course, courseID).Error
	if err != nil {
		return utils.NotFound(c, "Course not found")
	}

	reviews := make([]fiber.Map, 0, len(course.Reviews))
	for _, review := range course.Reviews {
		reviews = append(reviews, fiber.Map{
			"id":                review.ID,
			"user_id":           review.UserID,
			"user_name":         review.UserName,
			"overall_rating":    review.OverallRating,
			"difficulty_rating": review.DifficultyRating,
			"workload_rating":   review.WorkloadRating,
			"teaching_rating":   review.TeachingRating,
			"content":           review.Content,
			"helpful_count":     review.HelpfulCount,
			"created_at":        review.CreatedAt,
		})
	}

	details := courseSummary(course)
	details["description"] = course.Description
	details["reviews"] = reviews

	return utils.Success(c, fiber.StatusOK, details)
}

type CourseInput struct {
	Title        string   `json:"title" validate:"required"`
	ShortDesc    string   `json:"short_desc"`
	Description  string   `json:"description"`
	Instructor   string   `json:"instructor"`
	Institution  string   `json:"institution"`
	Faculty      string   `json:"faculty"`
	Difficulty   string   `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	DeliveryMode string   `json:"delivery_mode" validate:"omitempty,oneof=online in-person hybrid"`
	Price        float64  `json:"price" validate:"gte=0"`
	EffortHours  int      `json:"effort_hours" validate:"gte=0"`
	LogoURL      string   `json:"logo_url"`
	Skills       []string `json:"skills"`
	Categories   []string `json:"categories"`
}

// CreateCourse godoc
// @Summary Create course
// @Description Creates a course with its skill and category tags (admin only)
// @Tags courses
// @Accept json
// @Produce json
// @Param input body CourseInput true "Course data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/courses [post]
func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	var input CourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	course := models.Course{
		Title:        input.Title,
		ShortDesc:    input.ShortDesc,
		Description:  input.Description,
		Instructor:   input.Instructor,
		Institution:  input.Institution,
		Faculty:      input.Faculty,
		Difficulty:   input.Difficulty,
		DeliveryMode: input.DeliveryMode,
		Price:        input.Price,
		EffortHours:  input.EffortHours,
		LogoURL:      input.LogoURL,
	}

	err := cc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&course).Error; err != nil {
			return err
		}
		skills, err := findOrCreateSkills(tx, input.Skills)
		if err != nil {
			return err
		}
		categories, err := findOrCreateCategories(tx, input.Categories)
		if err != nil {
			return err
		}
		if len(skills) > 0 {
			if err := tx.Model(&course).Association("Skills").Append(skills); err != nil {
				return err
			}
		}
		if len(categories) > 0 {
			if err := tx.Model(&course).Association("Categories").Append(categories); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not create course")
	}

	return utils.Created(c, fiber.Map{
		"message": "Course created",
		"course":  courseSummary(course),
	})
}

// UpdateCourse godoc
// @Summary Update course
// @Description Updates course metadata (admin only)
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param input body CourseInput true "Course data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/courses/{id} [put]
func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}

	var input CourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	course.Title = input.Title
	course.ShortDesc = input.ShortDesc
	course.Description = input.Description
	course.Instructor = input.Instructor
	course.Institution = input.Institution
	course.Faculty = input.Faculty
	course.Difficulty = input.Difficulty
	course.DeliveryMode = input.DeliveryMode
	course.Price = input.Price
	course.EffortHours = input.EffortHours
	course.LogoURL = input.LogoURL

	if err := cc.DB.Save(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not update course")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"message": "Course updated",
		"course":  courseSummary(course),
	})
}

// DeleteCourse godoc
// @Summary Delete course
// @Description Deletes a course and its reviews (admin only)
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/courses/{id} [delete]
func (cc *CoursesController) DeleteCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		return utils.NotFound(c, "Course not found")
	}

	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", course.ID).Unscoped().Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(&course).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not delete course")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "Course deleted"})
}

func courseSummary(course models.Course) fiber.Map {
	skills := make([]string, 0, len(course.Skills))
	for _, s := range course.Skills {
		skills = append(skills, s.Name)
	}
	categories := make([]string, 0, len(course.Categories))
	for _, cat := range course.Categories {
		categories = append(categories, cat.Name)
	}

	return fiber.Map{
		"id":            course.ID,
		"title":         course.Title,
		"short_desc":    course.ShortDesc,
		"instructor":    course.Instructor,
		"institution":   course.Institution,
		"faculty":       course.Faculty,
		"difficulty":    course.Difficulty,
		"delivery_mode": course.DeliveryMode,
		"price":         course.Price,
		"effort_hours":  course.EffortHours,
		"logo_url":      course.LogoURL,
		"rating":        course.Rating,
		"review_count":  course.ReviewCount,
		"skills":        skills,
		"categories":    categories,
		"created_at":    course.CreatedAt,
	}
}

func findOrCreateSkills(tx *gorm.DB, names []string) ([]models.Skill, error) {
	skills := make([]models.Skill, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		var skill models.Skill
		if err := tx.Where("name = ?", name).FirstOrCreate(&skill, models.Skill{Name: name}).Error; err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}
	return skills, nil
}

func findOrCreateCategories(tx *gorm.DB, names []string) ([]models.Category, error) {
	categories := make([]models.Category, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		var category models.Category
		if err := tx.Where("name = ?", name).FirstOrCreate(&category, models.Category{Name: name}).Error; err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseFloats(raw []string) []float64 {
	out := make([]float64, 0, len(raw))
	for _, s := range raw {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			out = append(out, v)
		}
	}
	return out
}
