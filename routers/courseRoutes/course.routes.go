package courseRoutes

import (
	controllers "coursex/controllers/course"
	"coursex/middleware"
	"coursex/models"
	validators "coursex/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up catalog, enrollment, progress and
// certificate routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/api/courses")

	// Catalog browsing is public; course management is instructor-only
	courseGroup.Get("/", validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Post("/", middleware.JWTMiddleware, middleware.SyncUser, middleware.RequireRole(models.RoleInstructor), validators.CreateCourse(), controllers.CreateCourse)
	courseGroup.Get("/:id", validators.GetCourseDetail(), controllers.GetCourseDetails)
	courseGroup.Put("/:id", middleware.JWTMiddleware, middleware.SyncUser, middleware.RequireRole(models.RoleInstructor), validators.UpdateCourse(), controllers.UpdateCourse)

	// Progress and certificate for enrolled students
	courseGroup.Get("/:id/progress", middleware.JWTMiddleware, middleware.SyncUser, validators.GetCourseDetail(), controllers.GetUserProgress)
	courseGroup.Get("/:id/certificate", middleware.JWTMiddleware, middleware.SyncUser, validators.GetCourseDetail(), controllers.GetCertificate)

	// Enrollment
	enrollGroup := app.Group("/api/enrollments")
	enrollGroup.Get("/", middleware.JWTMiddleware, middleware.SyncUser, controllers.GetEnrollments)
	enrollGroup.Post("/", middleware.JWTMiddleware, middleware.SyncUser, validators.EnrollCourse(), controllers.EnrollInCourse)

	// Lesson completion
	lessonGroup := app.Group("/api/lessons")
	lessonGroup.Post("/complete", middleware.JWTMiddleware, middleware.SyncUser, validators.CompleteLesson(), controllers.CompleteLesson)
}
