package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/luci582/UnlockED-sub000/backend/config"
	"github.com/luci582/UnlockED-sub000/backend/models"
	"github.com/luci582/UnlockED-sub000/backend/services"
	"github.com/luci582/UnlockED-sub000/backend/utils"
	"gorm.io/gorm"
)

type AdminController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAdminController(db *gorm.DB, cfg *config.Config) *AdminController {
	return &AdminController{DB: db, Cfg: cfg}
}

// ListUsers godoc
// @Summary List users
// @Description Returns a paginated user list (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.PaginatedResponse
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/users [get]
func (ad *AdminController) ListUsers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total int64
	ad.DB.Model(&models.User{}).Count(&total)

	var users []models.User
	err := ad.DB.Order("created_at ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&users).Error
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch users")
	}

	result := make([]fiber.Map, 0, len(users))
	for _, user := range users {
		result = append(result, fiber.Map{
			"id":            user.ID,
			"username":      user.Username,
			"email":         user.Email,
			"role":          user.Role,
			"is_verified":   user.IsVerified,
			"total_points":  user.TotalPoints,
			"review_streak": user.ReviewStreak,
			"created_at":    user.CreatedAt,
		})
	}

	return utils.Paginate(c, result, total, page, pageSize)
}

// VerifyUser godoc
// @Summary Verify a user
// @Description Marks a user as verified, making them eligible for the leaderboard
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/users/{id}/verify [put]
func (ad *AdminController) VerifyUser(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	res := ad.DB.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("is_verified", true)
	if res.Error != nil {
		return utils.InternalServerError(c, "Could not verify user")
	}
	if res.RowsAffected == 0 {
		return utils.NotFound(c, "User not found")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "User verified"})
}

// ResetStreak godoc
// @Summary Reset a user's review streak
// @Description Sets the review streak to zero (admin correction)
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/users/{id}/reset-streak [put]
func (ad *AdminController) ResetStreak(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	if err := services.ResetReviewStreak(ad.DB, uint(userID)); err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c, "Could not reset streak")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "Streak reset"})
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Removes a user with their reviews, votes and achievements, and
// @Description recounts the aggregates of every course they had reviewed
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/users/{id} [delete]
func (ad *AdminController) DeleteUser(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	var user models.User
	if err := ad.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	err = ad.DB.Transaction(func(tx *gorm.DB) error {
		// Курсы, чьи агрегаты придется пересчитать после каскада
		var courseIDs []uint
		err := tx.Model(&models.Review{}).
			Where("user_id = ?", user.ID).
			Pluck("course_id", &courseIDs).Error
		if err != nil {
			return err
		}

		if err := tx.Unscoped().Where("user_id = ?", user.ID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("user_id = ?", user.ID).Delete(&models.ReviewHelpfulVote{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("user_id = ?", user.ID).Delete(&models.UserAchievement{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.LoginHistory{}).Error; err != nil {
			return err
		}

		for _, courseID := range courseIDs {
			if err := services.RecalcCourseAggregates(tx, courseID); err != nil {
				return err
			}
		}

		return tx.Delete(&user).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not delete user")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "User deleted"})
}

// GetPlatformStats godoc
// @Summary Platform overview
// @Description Returns headline platform counts (admin only)
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/stats [get]
func (ad *AdminController) GetPlatformStats(c *fiber.Ctx) error {
	var users, verified, courses, reviews, unlocks int64

	ad.DB.Model(&models.User{}).Count(&users)
	ad.DB.Model(&models.User{}).Where("is_verified = ?", true).Count(&verified)
	ad.DB.Model(&models.Course{}).Count(&courses)
	ad.DB.Model(&models.Review{}).Count(&reviews)
	ad.DB.Model(&models.UserAchievement{}).Count(&unlocks)

	var avgRating *float64
	ad.DB.Model(&models.Review{}).Select("AVG(overall_rating)").Scan(&avgRating)

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"total_users":          users,
		"verified_users":       verified,
		"total_courses":        courses,
		"total_reviews":        reviews,
		"achievements_awarded": unlocks,
		"average_rating":       avgRating,
	})
}
