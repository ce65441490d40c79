package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses
const (
	StatusEnrolled   = "ENROLLED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

// Enrollment tracks a user's relationship with a course. Progress is an
// integer percentage over the currently published lessons of the course;
// Completed and Status are derived from it, never set independently.
type Enrollment struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"uniqueIndex:idx_user_course_enrollment;not null"`
	CourseID    uint       `json:"course_id" gorm:"uniqueIndex:idx_user_course_enrollment;not null"`
	Progress    int        `json:"progress" gorm:"default:0"` // 0-100
	Completed   bool       `json:"completed" gorm:"default:false"`
	Status      string     `json:"status" gorm:"default:'ENROLLED'"`
	CompletedAt *time.Time `json:"completed_at"`
	IsDeleted   bool       `gorm:"default:false"`
}
