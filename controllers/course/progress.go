package controllers

import (
	"coursex/database"
	"coursex/middleware"
	"coursex/models"
	"coursex/utils"
	"log"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CompleteLesson upserts the per-lesson completion marker and
// recomputes the enrollment's aggregate progress. Calling it twice for
// the same lesson is a no-op for the percentage.
func CompleteLesson(c *fiber.Ctx) error {
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

	// Retrieve validated IDs
	lessonID := c.Locals("lessonID").(int)
	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	// Check if user is enrolled in the course
	var enrollment models.Enrollment
	if err := db.Where("student_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	}

	// Check if lesson belongs to the course
	var lesson models.Lesson
	if err := db.Where("id = ? AND course_id = ?", lessonID, courseID).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found in this course!", nil)
	}

	wasCompleted := enrollment.Completed

	err := db.Transaction(func(tx *gorm.DB) error {
		// Upsert the completion marker
		var lp models.LessonProgress
		if err := tx.Where(models.LessonProgress{UserID: userID, LessonID: uint(lessonID)}).
			Attrs(models.LessonProgress{CourseID: uint(courseID), Completed: true}).
			FirstOrCreate(&lp).Error; err != nil {
			return err
		}
		if !lp.Completed {
			lp.Completed = true
			if err := tx.Save(&lp).Error; err != nil {
				return err
			}
		}

		return recomputeProgress(tx, &enrollment)
	})
	if err != nil {
		log.Printf("Error completing lesson %d for user %d: %v", lessonID, userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark lesson as completed!", nil)
	}

	// Congratulate on the transition to completed
	if enrollment.Completed && !wasCompleted {
		var course models.Course
		if err := db.Where("id = ?", courseID).First(&course).Error; err == nil {
			go utils.SendCourseCompletionEmail(user.Email, user.Name, course.Title)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as completed!", fiber.Map{
		"success":   true,
		"progress":  enrollment.Progress,
		"completed": enrollment.Completed,
	})
}

// GetUserProgress returns the caller's enrollment with the ids of the
// lessons completed so far
func GetUserProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment models.Enrollment
	if err := database.Database.Db.Where("student_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not enrolled in this course!", nil)
	}

	var completedIDs []uint
	database.Database.Db.Model(&models.LessonProgress{}).
		Where("user_id = ? AND course_id = ? AND completed = ?", userID, courseID, true).
		Pluck("lesson_id", &completedIDs)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment":    enrollment,
		"completed_ids": completedIDs,
	})
}

// recomputeProgress derives the aggregate percentage from the lesson
// completion markers among the course's current lesson set and writes
// it onto the enrollment. A course with zero lessons yields 0.
func recomputeProgress(tx *gorm.DB, enrollment *models.Enrollment) error {
	var totalLessons int64
	if err := tx.Model(&models.Lesson{}).Where("course_id = ?", enrollment.CourseID).Count(&totalLessons).Error; err != nil {
		return err
	}

	var completedLessons int64
	if err := tx.Model(&models.LessonProgress{}).
		Where("user_id = ? AND completed = ?", enrollment.StudentID, true).
		Where("lesson_id IN (?)", tx.Model(&models.Lesson{}).Select("id").Where("course_id = ?", enrollment.CourseID)).
		Count(&completedLessons).Error; err != nil {
		return err
	}

	progress := 0
	if totalLessons > 0 {
		progress = int(math.Round(float64(completedLessons) / float64(totalLessons) * 100))
	}

	enrollment.Progress = progress
	enrollment.Completed = progress >= 100
	if enrollment.Completed && enrollment.CompletedAt == nil {
		now := time.Now()
		enrollment.CompletedAt = &now
	}

	return tx.Save(enrollment).Error
}
