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

type LeaderboardController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewLeaderboardController(db *gorm.DB, cfg *config.Config) *LeaderboardController {
	return &LeaderboardController{DB: db, Cfg: cfg}
}

// GetLeaderboard godoc
// @Summary Get the points leaderboard
// @Description Returns the top verified users ordered by points, streak and join date
// @Tags leaderboard
// @Accept json
// @Produce json
// @Param limit query int false "Number of entries" default(25)
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponse
// @Router /leaderboard [get]
func (lc *LeaderboardController) GetLeaderboard(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "25"))

	entries, err := services.GetLeaderboard(lc.DB, limit)
	if err != nil {
		return utils.InternalServerError(c, "Failed to build leaderboard")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"leaderboard": entries,
	})
}

// GetUserPosition godoc
// @Summary Get a user's leaderboard position
// @Description Returns a single user's rank without materializing the full list
// @Tags leaderboard
// @Accept json
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /leaderboard/position/{userId} [get]
func (lc *LeaderboardController) GetUserPosition(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("userId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	position, err := services.GetUserPosition(lc.DB, uint(userID))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotRanked):
			return utils.NotFound(c, "User is not ranked")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return utils.NotFound(c, "User not found")
		default:
			return utils.InternalServerError(c, "Failed to compute position")
		}
	}

	return utils.Success(c, fiber.StatusOK, position)
}
