package paymentController

import (
	"coursex/database"
	"coursex/middleware"
	"coursex/models"
	"coursex/utils"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreatePaymentIntent opens a charge attempt for a paid course. The
// course's current price is captured on the pending payment row; a
// later price change does not affect an in-flight intent.
func CreatePaymentIntent(c *fiber.Ctx) error {
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

	// Free courses use the enroll endpoint directly
	if course.Price == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This course is free. Please use the enroll endpoint.", nil)
	}

	// Check if already purchased
	var existingPayment models.Payment
	if err := db.Where("user_id = ? AND course_id = ? AND status = ?",
		userID, courseID, models.PaymentStatusCompleted).First(&existingPayment).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course already purchased!", nil)
	}

	payment := models.Payment{
		UserID:   userID,
		CourseID: uint(courseID),
		Amount:   course.Price,
		Currency: "USD",
		Status:   models.PaymentStatusPending,
	}
	if err := db.Create(&payment).Error; err != nil {
		log.Printf("Error creating payment record: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create payment!", nil)
	}

	// Obtain an intent reference from the payment gateway. When the
	// gateway refuses, the pending row is removed so retries do not
	// pile up rows without an intent id.
	result, err := utils.CreatePaymentIntent(course.Price, course.ID, userID, course.Title)
	if err != nil {
		if delErr := db.Delete(&payment).Error; delErr != nil {
			log.Printf("Error removing payment %d after gateway failure: %v", payment.ID, delErr)
		}
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to create payment intent!", nil)
	}

	payment.PaymentIntentID = result.PaymentIntentID
	if err := db.Save(&payment).Error; err != nil {
		log.Printf("Error saving payment intent id: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update payment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment intent created successfully!", fiber.Map{
		"clientSecret":    result.ClientSecret,
		"paymentIntentId": result.PaymentIntentID,
		"paymentId":       payment.ID,
	})
}

// ConfirmPayment checks the intent with the gateway and, on success,
// marks the payment completed and creates the enrollment if absent.
// The two writes commit in one transaction.
func ConfirmPayment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	paymentIntentID := c.Locals("paymentIntentID").(string)
	paymentID := c.Locals("paymentID").(int)

	db := database.Database.Db

	var payment models.Payment
	if err := db.Where("id = ?", paymentID).First(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Payment not found!", nil)
	}
	if payment.UserID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Payment does not belong to this user!", nil)
	}

	// The supplied intent must be the one opened for this payment,
	// otherwise a succeeded intent could confirm an unrelated charge
	if payment.PaymentIntentID != "" && payment.PaymentIntentID != paymentIntentID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment intent does not match this payment!", nil)
	}

	var course models.Course
	if err := db.Where("id = ?", payment.CourseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// A second confirmation of an already-completed payment is a no-op
	// beyond making sure the enrollment exists
	if payment.Status != models.PaymentStatusCompleted {
		success, err := utils.ConfirmPayment(paymentIntentID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Payment confirmation failed!", nil)
		}
		if !success {
			// Payment row stays pending; the caller may retry
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment confirmation failed!", nil)
		}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		payment.Status = models.PaymentStatusCompleted
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		var existingEnrollment models.Enrollment
		err := tx.Where("student_id = ? AND course_id = ?", payment.UserID, payment.CourseID).First(&existingEnrollment).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			enrollment := models.Enrollment{
				StudentID: payment.UserID,
				CourseID:  payment.CourseID,
				Progress:  0,
				Completed: false,
			}
			return tx.Create(&enrollment).Error
		}
		return err
	})
	if err != nil {
		log.Printf("Error confirming payment %d: %v", payment.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to confirm payment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment confirmed successfully!", fiber.Map{
		"success":   true,
		"paymentId": payment.ID,
		"courseId":  payment.CourseID,
	})
}

// GetPurchases lists the caller's completed payments with course summary
func GetPurchases(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var payments []models.Payment
	if err := database.Database.Db.Where("user_id = ? AND status = ?", userID, models.PaymentStatusCompleted).
		Preload("Course").Order("created_at desc").Find(&payments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch purchases!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Purchases fetched successfully!", payments)
}
