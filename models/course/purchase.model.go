package course

import "gorm.io/gorm"

// Purchase records a one-time payment for a course, reported by the payment
// collaborator. At most one live purchase exists per (user, course); replaying
// the same purchase event is a no-op. A purchase grants access but does not
// create an enrollment by itself.
type Purchase struct {
	gorm.Model
	UserID    uint    `json:"user_id" gorm:"uniqueIndex:idx_user_course_purchase;not null"`
	CourseID  uint    `json:"course_id" gorm:"uniqueIndex:idx_user_course_purchase;not null"`
	Amount    float64 `json:"amount"`
	Reference string  `json:"reference" gorm:"unique"` // receipt number issued by us
	IsDeleted bool    `gorm:"default:false"`
}
