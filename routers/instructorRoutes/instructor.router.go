package instructorRoutes

import (
	courseControllers "coursex/controllers/course"
	instructorControllers "coursex/controllers/instructor"
	"coursex/middleware"
	"coursex/models"

	"github.com/gofiber/fiber/v2"
)

func SetupInstructorRoutes(app *fiber.App) {
	instructorGroup := app.Group("/api/instructor")

	instructorGroup.Get("/courses", middleware.JWTMiddleware, middleware.SyncUser, middleware.RequireRole(models.RoleInstructor), courseControllers.GetInstructorCourses)
	instructorGroup.Get("/revenue", middleware.JWTMiddleware, middleware.SyncUser, middleware.RequireRole(models.RoleInstructor), instructorControllers.GetRevenue)
}
