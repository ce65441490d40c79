package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lesson content types
const (
	ContentText  = "TEXT"
	ContentVideo = "VIDEO"
	ContentQuiz  = "QUIZ"
)

// Lesson represents a single piece of content within a module. CourseID is
// denormalized so progress queries don't have to join through modules.
// OrderIndex values are dense and zero-based among the live lessons of one
// module. A lesson is visible to non-admin callers only when both the lesson
// and its module are published.
type Lesson struct {
	gorm.Model
	ModuleID    uint           `json:"module_id" gorm:"index;not null"`
	CourseID    uint           `json:"course_id" gorm:"index;not null"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	ContentType string         `json:"content_type" gorm:"default:'TEXT'"` // TEXT, VIDEO, QUIZ
	TextContent string         `json:"text_content" gorm:"type:text"`
	VideoURL    string         `json:"video_url"`
	QuizData    datatypes.JSON `json:"quiz_data"` // questions/options for QUIZ type
	Duration    int64          `json:"duration" gorm:"default:0"` // minutes
	OrderIndex  int            `json:"order_index" gorm:"default:0"`
	IsPublished bool           `json:"is_published" gorm:"default:false"`
	IsDeleted   bool           `gorm:"default:false"`
}
