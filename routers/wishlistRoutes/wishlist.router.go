package wishlistRoutes

import (
	wishlistControllers "coursex/controllers/wishlist"
	"coursex/middleware"
	wishlistValidators "coursex/validators/wishlist"

	"github.com/gofiber/fiber/v2"
)

func SetupWishlistRoutes(app *fiber.App) {
	wishlistGroup := app.Group("/api/wishlist")

	wishlistGroup.Get("/", middleware.JWTMiddleware, middleware.SyncUser, wishlistControllers.GetWishlist)
	wishlistGroup.Post("/", middleware.JWTMiddleware, middleware.SyncUser, wishlistValidators.AddToWishlist(), wishlistControllers.AddToWishlist)
	wishlistGroup.Delete("/", middleware.JWTMiddleware, middleware.SyncUser, wishlistControllers.RemoveFromWishlist)
}
