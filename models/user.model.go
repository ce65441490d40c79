package models

import (
	"time"

	"gorm.io/gorm"
)

// Permission levels. PermissionLevel is the current five-tier field; IsAdmin
// is the legacy boolean kept for rows created before the tiers existed. The
// access package owns the mapping between the two.
const (
	LevelMember         = "MEMBER"
	LevelBlogAdmin      = "BLOG_ADMIN"
	LevelCourseAdmin    = "COURSE_ADMIN"
	LevelForumModerator = "FORUM_MODERATOR"
	LevelSuperAdmin     = "SUPER_ADMIN"
)

type User struct {
	gorm.Model
	ProfileImage    string     `gorm:"default:''"`
	Name            string     `gorm:"default:''"`
	Email           string     `gorm:"unique;not null"`
	Password        string     `gorm:"not null"`
	PermissionLevel string     `json:"permission_level" gorm:"default:'MEMBER'"`
	IsAdmin         bool       `json:"is_admin" gorm:"default:false"` // legacy flag, see access package
	IsPremium       bool       `json:"is_premium" gorm:"default:false"`
	IsEmailVerified bool       `gorm:"default:false"`
	LastLogin       *time.Time `json:"last_login"`
	IsDeleted       bool       `gorm:"default:false"`
}
