package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/luci582/UnlockED-sub000/backend/config"
	"github.com/luci582/UnlockED-sub000/backend/services"
	"github.com/luci582/UnlockED-sub000/backend/utils"
	"gorm.io/gorm"
)

type ReviewsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewReviewsController(db *gorm.DB, cfg *config.Config) *ReviewsController {
	return &ReviewsController{DB: db, Cfg: cfg}
}

type CreateReviewRequest struct {
	CourseID         uint   `json:"course_id" validate:"required"`
	OverallRating    int    `json:"overall_rating" validate:"required,min=1,max=5"`
	DifficultyRating *int   `json:"difficulty_rating" validate:"omitempty,min=1,max=5"`
	WorkloadRating   *int   `json:"workload_rating" validate:"omitempty,min=1,max=5"`
	TeachingRating   *int   `json:"teaching_rating" validate:"omitempty,min=1,max=5"`
	Content          string `json:"content"`
}

// CreateReview godoc
// @Summary Submit a course review
// @Description Creates a review, recounts the course aggregates, credits points
// @Description and streak, and evaluates achievements — all in one transaction
// @Tags reviews
// @Accept json
// @Produce json
// @Param input body CreateReviewRequest true "Review data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /reviews [post]
func (rc *ReviewsController) CreateReview(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, rc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input CreateReviewRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	result, err := services.SubmitReview(rc.DB, userID, services.ReviewInput{
		CourseID:         input.CourseID,
		OverallRating:    input.OverallRating,
		DifficultyRating: input.DifficultyRating,
		WorkloadRating:   input.WorkloadRating,
		TeachingRating:   input.TeachingRating,
		Content:          input.Content,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyReviewed):
			return utils.Conflict(c, "You have already reviewed this course")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return utils.NotFound(c, "Course not found")
		default:
			return utils.InternalServerError(c, "Could not create review")
		}
	}

	newBadges := make([]fiber.Map, 0, len(result.NewBadges))
	for _, a := range result.NewBadges {
		newBadges = append(newBadges, fiber.Map{
			"name":        a.Name,
			"description": a.Description,
			"icon":        a.Icon,
			"points":      a.Points,
		})
	}

	return utils.Created(c, fiber.Map{
		"message": "Review submitted",
		"review": fiber.Map{
			"id":             result.Review.ID,
			"course_id":      result.Review.CourseID,
			"overall_rating": result.Review.OverallRating,
			"content":        result.Review.Content,
		},
		"points_awarded":   result.PointsAwarded,
		"total_points":     result.TotalPoints,
		"review_streak":    result.Streak,
		"new_achievements": newBadges,
	})
}

// DeleteReview godoc
// @Summary Delete a review
// @Description Removes a review and recounts the course aggregates (admin only)
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /reviews/{id} [delete]
func (rc *ReviewsController) DeleteReview(c *fiber.Ctx) error {
	reviewID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid review ID")
	}

	if err := services.DeleteReview(rc.DB, uint(reviewID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Review not found")
		}
		return utils.InternalServerError(c, "Could not delete review")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "Review deleted"})
}

// MarkHelpful godoc
// @Summary Mark a review as helpful
// @Description Records a helpful vote and credits the review author
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /reviews/{id}/helpful [post]
func (rc *ReviewsController) MarkHelpful(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, rc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	reviewID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid review ID")
	}

	review, err := services.MarkReviewHelpful(rc.DB, uint(reviewID), userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyVoted):
			return utils.Conflict(c, "You have already marked this review as helpful")
		case errors.Is(err, services.ErrOwnReview):
			return utils.BadRequest(c, "You cannot vote on your own review")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return utils.NotFound(c, "Review not found")
		default:
			return utils.InternalServerError(c, "Could not record vote")
		}
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"message":       "Vote recorded",
		"review_id":     review.ID,
		"helpful_count": review.HelpfulCount,
	})
}
