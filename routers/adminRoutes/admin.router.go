package adminRoutes

import (
	adminControllers "coursex/controllers/admin"
	"coursex/middleware"
	"coursex/models"
	adminValidators "coursex/validators/admin"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/api/admin")

	adminGroup.Get("/stats", middleware.JWTMiddleware, middleware.SyncUser, middleware.RequireRole(models.RoleAdmin), adminControllers.DashboardStats)
	adminGroup.Post("/users/:id/role", middleware.JWTMiddleware, middleware.SyncUser, middleware.RequireRole(models.RoleAdmin), adminValidators.UpdateUserRole(), adminControllers.UpdateUserRole)
}
