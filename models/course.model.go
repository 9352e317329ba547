package models

import "gorm.io/gorm"

// Course represents a marketplace course owned by an instructor
type Course struct {
	gorm.Model
	Title         string  `json:"title" gorm:"not null"`
	Slug          string  `json:"slug" gorm:"uniqueIndex;not null"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	ThumbnailURL  string  `json:"thumbnail_url"`
	IntroVideoURL string  `json:"intro_video_url"`
	Difficulty    string  `json:"difficulty"`
	Language      string  `json:"language"`
	Price         float64 `json:"price" gorm:"default:0"` // 0 means the free enrollment path
	Published     bool    `json:"published" gorm:"default:false"`
	InstructorID  uint    `json:"instructor_id" gorm:"index;not null"`
	IsDeleted     bool    `gorm:"default:false"`

	Lessons []Lesson `json:"lessons,omitempty" gorm:"foreignKey:CourseID"`
}
