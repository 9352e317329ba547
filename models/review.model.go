package models

import "gorm.io/gorm"

// Review is a student rating on a course. One review per (user, course),
// enrollment required.
type Review struct {
	gorm.Model
	UserID   uint   `json:"user_id" gorm:"uniqueIndex:idx_review_user_course;not null"`
	CourseID uint   `json:"course_id" gorm:"uniqueIndex:idx_review_user_course;not null"`
	Rating   int    `json:"rating" gorm:"not null"`
	Comment  string `json:"comment"`
}
