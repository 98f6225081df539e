package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/luci582/UnlockED-sub000/backend/config"
	"github.com/luci582/UnlockED-sub000/backend/models"
	"github.com/luci582/UnlockED-sub000/backend/services"
	"github.com/luci582/UnlockED-sub000/backend/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUserController(db *gorm.DB, cfg *config.Config) *UserController {
	return &UserController{DB: db, Cfg: cfg}
}

type UpdateUserRequest struct {
	Username    string `json:"username" example:"jane_doe" minLength:"3" maxLength:"30"`
	Email       string `json:"email" example:"user@example.com" format:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	OldPassword string `json:"old_password" minLength:"8"`
	NewPassword string `json:"new_password" minLength:"8"`
}

// GetProfile godoc
// @Summary Get user profile
// @Description Returns authenticated user's profile with points, streak and review stats
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, uc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	// Статистика отзывов
	var reviewCount int64
	uc.DB.Model(&models.Review{}).Where("user_id = ?", userID).Count(&reviewCount)

	var helpfulVotes int64
	uc.DB.Model(&models.Review{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(helpful_count), 0)").
		Scan(&helpfulVotes)

	var unlockCount int64
	uc.DB.Model(&models.UserAchievement{}).Where("user_id = ?", userID).Count(&unlockCount)

	// Формируем ответ без чувствительных данных
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":             user.ID,
		"username":       user.Username,
		"email":          user.Email,
		"first_name":     user.FirstName,
		"last_name":      user.LastName,
		"role":           user.Role,
		"is_verified":    user.IsVerified,
		"total_points":   user.TotalPoints,
		"review_streak":  user.ReviewStreak,
		"last_review_at": user.LastReviewAt,
		"review_count":   reviewCount,
		"helpful_votes":  helpfulVotes,
		"achievements":   unlockCount,
		"badge":          services.BadgeFor(user.TotalPoints, reviewCount),
		"created_at":     user.CreatedAt,
	})
}

// UpdateProfile godoc
// @Summary Update user profile
// @Description Updates authenticated user's profile data
// @Tags users
// @Accept json
// @Produce json
// @Param input body UpdateUserRequest true "Profile update data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/profile [put]
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, uc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input UpdateUserRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	// Обновление имени пользователя
	if input.Username != "" && input.Username != user.Username {
		// Проверяем, не занято ли имя
		var existingUser models.User
		if err := uc.DB.Where("username = ?", input.Username).First(&existingUser).Error; err == nil {
			if existingUser.ID != user.ID {
				return utils.BadRequest(c, "Username already taken")
			}
		}
		user.Username = input.Username
	}

	// Обновление email
	if input.Email != "" && input.Email != user.Email {
		var existingUser models.User
		if err := uc.DB.Where("email = ?", input.Email).First(&existingUser).Error; err == nil {
			if existingUser.ID != user.ID {
				return utils.BadRequest(c, "Email already taken")
			}
		}
		user.Email = input.Email
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}

	// Обновление пароля
	if input.NewPassword != "" {
		if input.OldPassword == "" {
			return utils.BadRequest(c, "Old password is required to set new password")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.OldPassword)); err != nil {
			return utils.Unauthorized(c, "Invalid old password")
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return utils.InternalServerError(c, "Could not hash password")
		}
		user.PasswordHash = string(hashedPassword)
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not update user")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"message": "Profile updated successfully",
	})
}
