package reviewRoutes

import (
	reviewControllers "coursex/controllers/review"
	"coursex/middleware"
	reviewValidators "coursex/validators/review"

	"github.com/gofiber/fiber/v2"
)

func SetupReviewRoutes(app *fiber.App) {
	reviewGroup := app.Group("/api/reviews")

	reviewGroup.Get("/", reviewControllers.GetReviews)
	reviewGroup.Post("/", middleware.JWTMiddleware, middleware.SyncUser, reviewValidators.CreateReview(), reviewControllers.CreateReview)
}
