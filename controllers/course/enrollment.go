package controllers

import (
	"coursex/database"
	"coursex/middleware"
	"coursex/models"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// EnrollInCourse gates and records course access. Free courses enroll
// directly; paid courses require a completed payment first.
func EnrollInCourse(c *fiber.Ctx) error {
	// Retrieve userId from JWT middleware
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	// Check if user exists
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Retrieve validated course ID
	courseID := c.Locals("courseID").(int)

	// Check if course exists and is published
	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if !course.Published {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course is not published!", nil)
	}

	// Check if user is already enrolled
	var existingEnrollment models.Enrollment
	if err := database.Database.Db.Where("student_id = ? AND course_id = ?", userID, courseID).First(&existingEnrollment).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
	}

	// Paid courses require a completed payment
	if course.Price > 0 {
		var payment models.Payment
		if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND status = ?",
			userID, courseID, models.PaymentStatusCompleted).First(&payment).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "Payment required!", fiber.Map{
				"requiresPayment": true,
				"courseId":        course.ID,
				"price":           course.Price,
			})
		}
	}

	enrollment := models.Enrollment{
		StudentID: userID,
		CourseID:  uint(courseID),
		Progress:  0,
		Completed: false,
	}

	// The unique index on (student_id, course_id) backstops the
	// check above; a lost race surfaces as a duplicate key here.
	if err := database.Database.Db.Create(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully!", enrollment)
}

// GetEnrollments lists the caller's enrollments, or checks a single
// course when ?courseId= is given
func GetEnrollments(c *fiber.Ctx) error {
	// Retrieve userId from JWT middleware
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	// Check if user exists
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Check a specific course enrollment
	if courseIDStr := c.Query("courseId"); courseIDStr != "" {
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		var enrollment models.Enrollment
		enrolled := database.Database.Db.Where("student_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error == nil

		data := fiber.Map{"enrolled": enrolled}
		if enrolled {
			data["enrollment"] = enrollment
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment fetched successfully!", data)
	}

	// Fetch all enrollments with course summary
	var enrollments []models.Enrollment
	if err := database.Database.Db.Where("student_id = ?", userID).Preload("Course").
		Order("updated_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}
