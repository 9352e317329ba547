package controllers

import (
	"coursex/database"
	"coursex/middleware"
	"coursex/models"
	"coursex/utils"
	validators "coursex/validators/course"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateCourse creates an unpublished course for the calling instructor
func CreateCourse(c *fiber.Ctx) error {
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

	// Retrieve validated course data
	reqData, ok := c.Locals("validatedCourse").(*validators.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Generate unique slug; collision resolved by suffixing a timestamp
	slug := utils.GenerateSlug(reqData.Title)
	if err := db.Where("slug = ?", slug).First(&models.Course{}).Error; err == nil {
		slug = fmt.Sprintf("%s-%d", slug, time.Now().UnixMilli())
	}

	price := 0.0
	if reqData.Price != nil {
		price = *reqData.Price
	}

	course := models.Course{
		Title:         reqData.Title,
		Slug:          slug,
		Description:   reqData.Description,
		Category:      reqData.Category,
		ThumbnailURL:  reqData.ThumbnailURL,
		IntroVideoURL: reqData.IntroVideoURL,
		Difficulty:    reqData.Difficulty,
		Language:      reqData.Language,
		Price:         price,
		Published:     false,
		InstructorID:  userID,
	}

	// Create course and its lessons in one transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&course).Error; err != nil {
			return err
		}
		return createLessons(tx, course.ID, reqData.Lessons)
	})
	if err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	// Reload with lessons and resources
	db.Preload("Lessons", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index asc")
	}).Preload("Lessons.Resources").First(&course, course.ID)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// GetCourseDetails returns a course with its instructor summary and
// ordered lessons with resources
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index asc")
		}).
		Preload("Lessons.Resources").
		Where("id = ? AND is_deleted = ?", courseID, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var instructor models.User
	database.Database.Db.Where("id = ?", course.InstructorID).First(&instructor)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course": course,
		"instructor": fiber.Map{
			"id":    instructor.ID,
			"name":  instructor.Name,
			"image": instructor.Image,
		},
	})
}

// UpdateCourse replaces course fields and diffs the lesson list for the
// owning instructor. Lessons carrying a known id keep their identity so
// existing lesson progress is not orphaned.
func UpdateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedCourse").(*validators.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Only the owning instructor may edit
	if course.InstructorID != userID {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Not the owner of this course!", nil)
	}

	if reqData.Title != "" {
		course.Title = reqData.Title
	}
	if reqData.Description != "" {
		course.Description = reqData.Description
	}
	if reqData.Category != "" {
		course.Category = reqData.Category
	}
	if reqData.ThumbnailURL != "" {
		course.ThumbnailURL = reqData.ThumbnailURL
	}
	if reqData.IntroVideoURL != "" {
		course.IntroVideoURL = reqData.IntroVideoURL
	}
	if reqData.Difficulty != "" {
		course.Difficulty = reqData.Difficulty
	}
	if reqData.Language != "" {
		course.Language = reqData.Language
	}
	if reqData.Price != nil {
		course.Price = *reqData.Price
	}
	if reqData.Published != nil {
		course.Published = *reqData.Published
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&course).Error; err != nil {
			return err
		}
		if reqData.Lessons != nil {
			if err := syncLessons(tx, course.ID, reqData.Lessons); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Error updating course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	db.Preload("Lessons", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index asc")
	}).Preload("Lessons.Resources").First(&course, course.ID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// GetAllCourses lists the published catalog
func GetAllCourses(c *fiber.Ctx) error {
	// Retrieve validated pagination request
	reqData, _ := c.Locals("validatedCourseList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	// Set default pagination
	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Course{}).Where("published = ? AND is_deleted = ?", true, false)

	// Optional category filter
	if category := c.Query("category"); category != "" {
		db = db.Where("category = ?", category)
	}

	// Get total count
	var total int64
	db.Count(&total)

	var courses []models.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	type CourseWithInstructor struct {
		models.Course
		InstructorName  string `json:"instructor_name"`
		InstructorImage string `json:"instructor_image"`
	}

	result := make([]CourseWithInstructor, len(courses))
	for i, course := range courses {
		result[i] = CourseWithInstructor{Course: course}
		var instructor models.User
		if err := database.Database.Db.Where("id = ?", course.InstructorID).First(&instructor).Error; err == nil {
			result[i].InstructorName = instructor.Name
			result[i].InstructorImage = instructor.Image
		}
	}

	response := map[string]interface{}{
		"courses": result,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// GetInstructorCourses lists the caller's own courses with enrollment
// and review counts
func GetInstructorCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var courses []models.Course
	if err := database.Database.Db.Where("instructor_id = ? AND is_deleted = ?", userID, false).
		Order("updated_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	type CourseWithCounts struct {
		models.Course
		EnrollmentCount int64 `json:"enrollment_count"`
		ReviewCount     int64 `json:"review_count"`
	}

	result := make([]CourseWithCounts, len(courses))
	for i, course := range courses {
		result[i] = CourseWithCounts{Course: course}
		database.Database.Db.Model(&models.Enrollment{}).Where("course_id = ?", course.ID).Count(&result[i].EnrollmentCount)
		database.Database.Db.Model(&models.Review{}).Where("course_id = ?", course.ID).Count(&result[i].ReviewCount)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", result)
}

// createLessons inserts the given lessons (and their resource links)
// for a course
func createLessons(tx *gorm.DB, courseID uint, lessons []validators.LessonInput) error {
	for i, input := range lessons {
		order := input.Order
		if order == 0 {
			order = i + 1
		}
		lesson := models.Lesson{
			CourseID:    courseID,
			Title:       input.Title,
			Description: input.Description,
			VideoURL:    input.VideoURL,
			Duration:    input.Duration,
			OrderIndex:  order,
		}
		if err := tx.Create(&lesson).Error; err != nil {
			return err
		}
		for _, url := range input.Resources {
			if err := tx.Create(&models.Resource{LessonID: lesson.ID, URL: url}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// syncLessons diffs the submitted lesson list against the stored one:
// known ids are updated in place, new lessons are created, and lessons
// missing from the payload are removed together with their progress rows.
func syncLessons(tx *gorm.DB, courseID uint, lessons []validators.LessonInput) error {
	var existing []models.Lesson
	if err := tx.Where("course_id = ?", courseID).Find(&existing).Error; err != nil {
		return err
	}

	existingByID := make(map[uint]models.Lesson, len(existing))
	for _, lesson := range existing {
		existingByID[lesson.ID] = lesson
	}

	kept := make(map[uint]bool, len(lessons))
	for i, input := range lessons {
		order := input.Order
		if order == 0 {
			order = i + 1
		}

		lesson, found := existingByID[input.ID]
		if input.ID != 0 && found {
			kept[lesson.ID] = true
			lesson.Title = input.Title
			lesson.Description = input.Description
			lesson.VideoURL = input.VideoURL
			lesson.Duration = input.Duration
			lesson.OrderIndex = order
			if err := tx.Save(&lesson).Error; err != nil {
				return err
			}
			// Resource links are replaced wholesale per lesson
			if err := tx.Where("lesson_id = ?", lesson.ID).Delete(&models.Resource{}).Error; err != nil {
				return err
			}
			for _, url := range input.Resources {
				if err := tx.Create(&models.Resource{LessonID: lesson.ID, URL: url}).Error; err != nil {
					return err
				}
			}
			continue
		}

		if err := createLessons(tx, courseID, []validators.LessonInput{{
			Title:       input.Title,
			Description: input.Description,
			VideoURL:    input.VideoURL,
			Duration:    input.Duration,
			Order:       order,
			Resources:   input.Resources,
		}}); err != nil {
			return err
		}
	}

	// Remove lessons dropped from the payload, with their progress rows
	for _, lesson := range existing {
		if kept[lesson.ID] {
			continue
		}
		if err := tx.Where("lesson_id = ?", lesson.ID).Delete(&models.LessonProgress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lesson_id = ?", lesson.ID).Delete(&models.Resource{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Lesson{}, lesson.ID).Error; err != nil {
			return err
		}
	}

	return nil
}
