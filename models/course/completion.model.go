package course

import "gorm.io/gorm"

// LessonCompletion marks a lesson as completed by a user. The unique
// (user_id, lesson_id) index makes completion idempotent under concurrent
// writes. Rows are kept when a lesson is unpublished; they simply stop
// counting toward progress until the lesson is published again.
type LessonCompletion struct {
	gorm.Model
	UserID    uint `json:"user_id" gorm:"uniqueIndex:idx_user_lesson_completion;not null"`
	LessonID  uint `json:"lesson_id" gorm:"uniqueIndex:idx_user_lesson_completion;not null"`
	CourseID  uint `json:"course_id" gorm:"index;not null"`
	IsDeleted bool `gorm:"default:false"`
}
