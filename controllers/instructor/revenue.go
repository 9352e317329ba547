package instructorController

import (
	"coursex/database"
	"coursex/middleware"
	"coursex/models"
	"coursex/utils"
	"sort"

	"github.com/gofiber/fiber/v2"
)

// CourseRevenue is one row of the per-course revenue breakdown
type CourseRevenue struct {
	CourseID    uint    `json:"course_id"`
	CourseTitle string  `json:"course_title"`
	CourseSlug  string  `json:"course_slug"`
	Sales       int     `json:"sales"`
	Revenue     float64 `json:"revenue"`
	PlatformFee float64 `json:"platform_fee"`
	Earnings    float64 `json:"earnings"`
}

// GetRevenue rolls up completed payments on the caller's courses into
// totals and a per-course breakdown with the platform fee split. Read
// only; purely derived.
func GetRevenue(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	db := database.Database.Db

	var courses []models.Course
	if err := db.Where("instructor_id = ? AND is_deleted = ?", userID, false).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	var totalRevenue, totalPlatformFee, totalEarnings float64
	totalSales := 0
	breakdown := make([]CourseRevenue, 0, len(courses))

	for _, course := range courses {
		var payments []models.Payment
		if err := db.Where("course_id = ? AND status = ?", course.ID, models.PaymentStatusCompleted).
			Find(&payments).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
		}

		row := CourseRevenue{
			CourseID:    course.ID,
			CourseTitle: course.Title,
			CourseSlug:  course.Slug,
		}
		for _, payment := range payments {
			fee, earnings := utils.SplitRevenue(payment.Amount)
			row.Sales++
			row.Revenue += payment.Amount
			row.PlatformFee += fee
			row.Earnings += earnings
		}

		totalSales += row.Sales
		totalRevenue += row.Revenue
		totalPlatformFee += row.PlatformFee
		totalEarnings += row.Earnings

		// Courses with zero sales are excluded from the breakdown
		if row.Sales > 0 {
			breakdown = append(breakdown, row)
		}
	}

	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].Revenue > breakdown[j].Revenue
	})

	// Recent sales across all of the instructor's courses
	var recentSales []models.Payment
	db.Where("status = ?", models.PaymentStatusCompleted).
		Where("course_id IN (?)", db.Model(&models.Course{}).Select("id").Where("instructor_id = ?", userID)).
		Preload("Course").
		Order("created_at desc").Limit(10).Find(&recentSales)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Revenue fetched successfully!", fiber.Map{
		"total_revenue":             totalRevenue,
		"total_platform_fee":        totalPlatformFee,
		"total_instructor_earnings": totalEarnings,
		"total_sales":               totalSales,
		"course_revenue":            breakdown,
		"recent_sales":              recentSales,
	})
}
