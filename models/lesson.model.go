package models

import "gorm.io/gorm"

// Lesson is a single ordered video lesson within a course
type Lesson struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
	Duration    int    `json:"duration" gorm:"default:0"` // duration in minutes
	OrderIndex  int    `json:"order" gorm:"default:1"`    // display/sequence order within the course

	Resources []Resource `json:"resources,omitempty" gorm:"foreignKey:LessonID"`
}

// Resource is a link attached to a lesson
type Resource struct {
	gorm.Model
	LessonID uint   `json:"lesson_id" gorm:"index;not null"`
	Title    string `json:"title"`
	URL      string `json:"url"`
}
