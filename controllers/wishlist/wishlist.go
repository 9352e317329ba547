package wishlistController

import (
	"coursex/database"
	"coursex/middleware"
	"coursex/models"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetWishlist lists the caller's wishlist joined with course and
// instructor summaries
func GetWishlist(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var items []models.WishlistItem
	if err := database.Database.Db.Where("user_id = ?", userID).Preload("Course").
		Order("created_at desc").Find(&items).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch wishlist!", nil)
	}

	type WishlistWithInstructor struct {
		models.WishlistItem
		InstructorName string `json:"instructor_name"`
	}
	result := make([]WishlistWithInstructor, len(items))
	for i, item := range items {
		result[i] = WishlistWithInstructor{WishlistItem: item}
		var instructor models.User
		if err := database.Database.Db.Where("id = ?", item.Course.InstructorID).First(&instructor).Error; err == nil {
			result[i].InstructorName = instructor.Name
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Wishlist fetched successfully!", result)
}

// AddToWishlist puts a course on the caller's wishlist
func AddToWishlist(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	item := models.WishlistItem{
		UserID:   userID,
		CourseID: uint(courseID),
	}

	// Membership is unique at the storage layer; a duplicate insert
	// (including a lost check-then-insert race) maps to a conflict
	if err := database.Database.Db.Create(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course already in wishlist!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add to wishlist!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Added to wishlist successfully!", item)
}

// RemoveFromWishlist takes a course off the caller's wishlist. Removing
// an absent entry is a no-op.
func RemoveFromWishlist(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseIDStr := c.Query("courseId")
	courseID, err := strconv.Atoi(courseIDStr)
	if err != nil || courseID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
	}

	if err := database.Database.Db.Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&models.WishlistItem{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove from wishlist!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Removed from wishlist successfully!", fiber.Map{
		"success": true,
	})
}
