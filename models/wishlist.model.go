package models

import "gorm.io/gorm"

// WishlistItem marks a course a user wants to come back to. Membership
// is unique per (user, course) at the storage layer.
type WishlistItem struct {
	gorm.Model
	UserID   uint `json:"user_id" gorm:"uniqueIndex:idx_wishlist_user_course;not null"`
	CourseID uint `json:"course_id" gorm:"uniqueIndex:idx_wishlist_user_course;not null"`

	Course Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}
