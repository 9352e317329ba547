package models

import "gorm.io/gorm"

// Payment status values
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Payment records a charge attempt for a paid course. The amount is
// captured at intent-creation time; later price changes do not affect
// an in-flight intent.
type Payment struct {
	gorm.Model
	UserID          uint    `json:"user_id" gorm:"index;not null"`
	CourseID        uint    `json:"course_id" gorm:"index;not null"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency" gorm:"default:'USD'"`
	Status          string  `json:"status" gorm:"default:'pending'"` // pending, completed, failed
	PaymentIntentID string  `json:"payment_intent_id" gorm:"index"`

	Course Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}
