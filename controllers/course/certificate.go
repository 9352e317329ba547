package controllers

import (
	"coursex/database"
	"coursex/middleware"
	"coursex/models"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCertificate issues (on first request) and returns the completion
// certificate for the caller's completed enrollment in a course
func GetCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Check enrollment and completion
	var enrollment models.Enrollment
	if err := db.Where("student_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	}
	if !enrollment.Completed {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please complete the course before requesting a certificate!", nil)
	}

	// Lazily issue the certificate on first request
	var certificate models.Certificate
	err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&certificate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		certificate = models.Certificate{
			UserID:            userID,
			CourseID:          uint(courseID),
			CertificateNumber: "CERT-" + uuid.NewString(),
			IssuedAt:          time.Now(),
		}
		if createErr := db.Create(&certificate).Error; createErr != nil {
			if !errors.Is(createErr, gorm.ErrDuplicatedKey) {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
			}
			// A concurrent request issued it first
			db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&certificate)
		}
	} else if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificate!", nil)
	}

	var instructor models.User
	db.Where("id = ?", course.InstructorID).First(&instructor)

	completedAt := enrollment.UpdatedAt
	if enrollment.CompletedAt != nil {
		completedAt = *enrollment.CompletedAt
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate fetched successfully!", fiber.Map{
		"certificate_number": certificate.CertificateNumber,
		"issued_at":          certificate.IssuedAt,
		"student_name":       user.Name,
		"course_title":       course.Title,
		"instructor_name":    instructor.Name,
		"completed_at":       completedAt,
	})
}
