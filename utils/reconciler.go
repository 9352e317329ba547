package utils

import (
	"coursex/database"
	"coursex/models"
	"log"

	"github.com/robfig/cron/v3"
)

// InitializePaymentReconciler sets up the hourly sweep that repairs
// completed payments left without an enrollment (a crash between the
// payment-status update and the enrollment insert can strand them).
func InitializePaymentReconciler() *cron.Cron {
	log.Println("[PAYMENT-RECONCILER] Initializing payment reconciler...")

	c := cron.New()

	c.AddFunc("@hourly", func() {
		log.Println("[PAYMENT-RECONCILER] Running reconciliation sweep...")
		ReconcileCompletedPayments()
	})

	c.Start()
	log.Println("[PAYMENT-RECONCILER] Payment reconciler started - runs hourly")

	return c
}

// ReconcileCompletedPayments creates the missing enrollment for every
// completed payment that lacks one.
func ReconcileCompletedPayments() {
	db := database.Database.Db

	var orphaned []models.Payment
	if err := db.
		Where("status = ?", models.PaymentStatusCompleted).
		Where("NOT EXISTS (SELECT 1 FROM enrollments WHERE enrollments.student_id = payments.user_id AND enrollments.course_id = payments.course_id AND enrollments.deleted_at IS NULL)").
		Find(&orphaned).Error; err != nil {
		log.Printf("[PAYMENT-RECONCILER] Error fetching orphaned payments: %v", err)
		return
	}

	if len(orphaned) == 0 {
		return
	}

	log.Printf("[PAYMENT-RECONCILER] Found %d completed payments without enrollment", len(orphaned))

	for _, payment := range orphaned {
		enrollment := models.Enrollment{
			StudentID: payment.UserID,
			CourseID:  payment.CourseID,
			Progress:  0,
			Completed: false,
		}
		if err := db.Create(&enrollment).Error; err != nil {
			// A concurrent enroll may have won the race; the unique index makes that fine.
			log.Printf("[PAYMENT-RECONCILER] Error creating enrollment for payment %d: %v", payment.ID, err)
			continue
		}
		log.Printf("[PAYMENT-RECONCILER] Created enrollment %d for payment %d", enrollment.ID, payment.ID)
	}
}
