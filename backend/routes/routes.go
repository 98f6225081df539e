package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/luci582/UnlockED-sub000/backend/config"
	"github.com/luci582/UnlockED-sub000/backend/controllers"
	"github.com/luci582/UnlockED-sub000/backend/middleware"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(db, cfg)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)

	// Course directory
	coursesController := controllers.NewCoursesController(db, cfg)
	app.Get("/api/courses", coursesController.ListCourses)
	app.Get("/api/courses/:id", coursesController.GetCourseDetails)

	// Reviews
	reviewsController := controllers.NewReviewsController(db, cfg)
	app.Post("/api/reviews", authMiddleware, reviewsController.CreateReview)
	app.Delete("/api/reviews/:id", adminMiddleware, reviewsController.DeleteReview)
	app.Post("/api/reviews/:id/helpful", authMiddleware, reviewsController.MarkHelpful)

	// Leaderboard
	leaderboardController := controllers.NewLeaderboardController(db, cfg)
	app.Get("/api/leaderboard", leaderboardController.GetLeaderboard)
	app.Get("/api/leaderboard/position/:userId", leaderboardController.GetUserPosition)

	// Achievements
	achievementsController := controllers.NewAchievementsController(db, cfg)
	app.Get("/api/achievements", achievementsController.ListAchievements)
	app.Get("/api/user/achievements", authMiddleware, achievementsController.GetUserAchievements)

	// Admin routes
	admin := app.Group("/api/admin", adminMiddleware)
	admin.Post("/courses", coursesController.CreateCourse)
	admin.Put("/courses/:id", coursesController.UpdateCourse)
	admin.Delete("/courses/:id", coursesController.DeleteCourse)
	admin.Post("/achievements", achievementsController.CreateAchievement)

	adminController := controllers.NewAdminController(db, cfg)
	admin.Get("/users", adminController.ListUsers)
	admin.Put("/users/:id/verify", adminController.VerifyUser)
	admin.Put("/users/:id/reset-streak", adminController.ResetStreak)
	admin.Delete("/users/:id", adminController.DeleteUser)
	admin.Get("/stats", adminController.GetPlatformStats)
}
