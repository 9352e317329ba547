package adminController

import (
	"coursex/database"
	"coursex/middleware"
	"coursex/models"

	"github.com/gofiber/fiber/v2"
)

// DashboardStats returns platform-wide aggregates for the admin view
func DashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalUsers, totalCourses, totalEnrollments int64
	db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&totalUsers)
	db.Model(&models.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	db.Model(&models.Enrollment{}).Count(&totalEnrollments)

	// Revenue is the sum over completed payments
	var totalRevenue float64
	db.Model(&models.Payment{}).Where("status = ?", models.PaymentStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalRevenue)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully!", fiber.Map{
		"total_users":       totalUsers,
		"total_courses":     totalCourses,
		"total_enrollments": totalEnrollments,
		"total_revenue":     totalRevenue,
	})
}

// UpdateUserRole promotes or demotes a user's role
func UpdateUserRole(c *fiber.Ctx) error {
	targetID := c.Locals("targetUserID").(int)
	role := c.Locals("targetRole").(string)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.Role = role
	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role updated successfully!", user)
}
