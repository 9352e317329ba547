package reviewController

import (
	"coursex/database"
	"coursex/middleware"
	"coursex/models"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetReviews lists reviews by course or by user, newest first
func GetReviews(c *fiber.Ctx) error {
	db := database.Database.Db

	if courseIDStr := c.Query("courseId"); courseIDStr != "" {
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		var reviews []models.Review
		if err := db.Where("course_id = ?", courseID).Order("created_at desc").Find(&reviews).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
		}

		// Enrich with reviewer summary
		type ReviewWithUser struct {
			models.Review
			UserName  string `json:"user_name"`
			UserImage string `json:"user_image"`
		}
		result := make([]ReviewWithUser, len(reviews))
		for i, review := range reviews {
			result[i] = ReviewWithUser{Review: review}
			var user models.User
			if err := db.Where("id = ?", review.UserID).First(&user).Error; err == nil {
				result[i].UserName = user.Name
				result[i].UserImage = user.Image
			}
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched successfully!", result)
	}

	if userIDStr := c.Query("userId"); userIDStr != "" {
		userID, err := strconv.Atoi(userIDStr)
		if err != nil || userID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		}

		var reviews []models.Review
		if err := db.Where("user_id = ?", userID).Order("created_at desc").Find(&reviews).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
		}

		type ReviewWithCourse struct {
			models.Review
			CourseTitle string `json:"course_title"`
		}
		result := make([]ReviewWithCourse, len(reviews))
		for i, review := range reviews {
			result[i] = ReviewWithCourse{Review: review}
			var course models.Course
			if err := db.Where("id = ?", review.CourseID).First(&course).Error; err == nil {
				result[i].CourseTitle = course.Title
			}
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched successfully!", result)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched successfully!", []models.Review{})
}

// CreateReview records a rating for a course the caller is enrolled in.
// One review per (user, course).
func CreateReview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedReview").(*struct {
		CourseID uint   `json:"courseId"`
		Rating   int    `json:"rating"`
		Comment  string `json:"comment"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Reviews require a prior enrollment
	var enrollment models.Enrollment
	if err := db.Where("student_id = ? AND course_id = ?", userID, reqData.CourseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Must be enrolled to review!", nil)
	}

	review := models.Review{
		UserID:   userID,
		CourseID: reqData.CourseID,
		Rating:   reqData.Rating,
		Comment:  reqData.Comment,
	}

	// The unique index on (user_id, course_id) turns a duplicate
	// review into a clean conflict
	if err := db.Create(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already reviewed this course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Review created successfully!", review)
}
