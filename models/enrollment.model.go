package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment grants a student access to a course's lessons and tracks
// aggregate progress. Uniqueness on (student, course) is enforced by
// the database; a losing concurrent insert maps to a conflict response.
type Enrollment struct {
	gorm.Model
	StudentID   uint       `json:"student_id" gorm:"uniqueIndex:idx_enrollment_student_course;not null"`
	CourseID    uint       `json:"course_id" gorm:"uniqueIndex:idx_enrollment_student_course;not null"`
	Progress    int        `json:"progress" gorm:"default:0"` // completion percentage (0-100)
	Completed   bool       `json:"completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at"`

	Course Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}

// LessonProgress is the per-user, per-lesson completion marker the
// enrollment progress percentage is derived from.
type LessonProgress struct {
	gorm.Model
	UserID    uint `json:"user_id" gorm:"uniqueIndex:idx_progress_user_lesson;not null"`
	LessonID  uint `json:"lesson_id" gorm:"uniqueIndex:idx_progress_user_lesson;not null"`
	CourseID  uint `json:"course_id" gorm:"index;not null"`
	Completed bool `json:"completed" gorm:"default:false"`
}
