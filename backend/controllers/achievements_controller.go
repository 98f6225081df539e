package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/luci582/UnlockED-sub000/backend/config"
	"github.com/luci582/UnlockED-sub000/backend/models"
	"github.com/luci582/UnlockED-sub000/backend/utils"
	"gorm.io/gorm"
)

type AchievementsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAchievementsController(db *gorm.DB, cfg *config.Config) *AchievementsController {
	return &AchievementsController{DB: db, Cfg: cfg}
}

// ListAchievements godoc
// @Summary List all achievements
// @Description Returns the achievement catalogue
// @Tags achievements
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponse
// @Router /achievements [get]
func (ac *AchievementsController) ListAchievements(c *fiber.Ctx) error {
	var achievements []models.Achievement
	if err := ac.DB.Order("threshold ASC").Find(&achievements).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch achievements")
	}

	result := make([]fiber.Map, 0, len(achievements))
	for _, a := range achievements {
		result = append(result, fiber.Map{
			"id":          a.ID,
			"name":        a.Name,
			"description": a.Description,
			"icon":        a.Icon,
			"counter":     a.Counter,
			"threshold":   a.Threshold,
			"points":      a.Points,
		})
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"achievements": result})
}

// GetUserAchievements godoc
// @Summary Get the authenticated user's achievements
// @Description Returns the catalogue annotated with unlock state and timestamps
// @Tags achievements
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/achievements [get]
func (ac *AchievementsController) GetUserAchievements(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var achievements []models.Achievement
	if err := ac.DB.Order("threshold ASC").Find(&achievements).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch achievements")
	}

	var unlocks []models.UserAchievement
	if err := ac.DB.Where("user_id = ?", userID).Find(&unlocks).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch unlocks")
	}

	unlockedAt := make(map[uint]models.UserAchievement, len(unlocks))
	for _, u := range unlocks {
		unlockedAt[u.AchievementID] = u
	}

	result := make([]fiber.Map, 0, len(achievements))
	for _, a := range achievements {
		entry := fiber.Map{
			"id":          a.ID,
			"name":        a.Name,
			"description": a.Description,
			"icon":        a.Icon,
			"counter":     a.Counter,
			"threshold":   a.Threshold,
			"points":      a.Points,
			"unlocked":    false,
		}
		if u, ok := unlockedAt[a.ID]; ok {
			entry["unlocked"] = true
			entry["unlocked_at"] = u.UnlockedAt
		}
		result = append(result, entry)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"achievements": result,
		"unlocked":     len(unlocks),
		"total":        len(achievements),
	})
}

type AchievementInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Counter     string `json:"counter" validate:"required,oneof=reviews helpful_votes points streak"`
	Threshold   int    `json:"threshold" validate:"required,gt=0"`
	Points      int    `json:"points" validate:"gte=0"`
}

// CreateAchievement godoc
// @Summary Create an achievement
// @Description Adds an achievement to the catalogue (admin only)
// @Tags achievements
// @Accept json
// @Produce json
// @Param input body AchievementInput true "Achievement data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/achievements [post]
func (ac *AchievementsController) CreateAchievement(c *fiber.Ctx) error {
	var input AchievementInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.ValidationError(c, errs)
	}

	achievement := models.Achievement{
		Name:        input.Name,
		Description: input.Description,
		Icon:        input.Icon,
		Counter:     input.Counter,
		Threshold:   input.Threshold,
		Points:      input.Points,
	}
	if err := ac.DB.Create(&achievement).Error; err != nil {
		return utils.Conflict(c, "Achievement with this name already exists")
	}

	return utils.Created(c, fiber.Map{
		"message":     "Achievement created",
		"achievement": fiber.Map{"id": achievement.ID, "name": achievement.Name},
	})
}
