package access

import "lms/models"

// Capability is a single administrative ability granted by a permission level.
type Capability string

const (
	CapManageBlog     Capability = "manage_blog"
	CapManageCourses  Capability = "manage_courses"
	CapModerateForum  Capability = "moderate_forum"
	CapManageAccounts Capability = "manage_accounts"
)

// CapabilitySet is the set of capabilities a caller holds.
type CapabilitySet map[Capability]bool

func (s CapabilitySet) Has(c Capability) bool {
	return s[c]
}

var levelCapabilities = map[string][]Capability{
	models.LevelMember:         {},
	models.LevelBlogAdmin:      {CapManageBlog},
	models.LevelCourseAdmin:    {CapManageCourses},
	models.LevelForumModerator: {CapModerateForum},
	models.LevelSuperAdmin:     {CapManageBlog, CapManageCourses, CapModerateForum, CapManageAccounts},
}

// ResolvePermissions maps a user record to its capability set. The zero-value
// User is the anonymous caller and gets the empty set. The legacy IsAdmin
// boolean predates the five-tier PermissionLevel field; when set it grants the
// full SUPER_ADMIN set no matter what the level field says. An unknown level
// resolves to the empty set, same as MEMBER.
func ResolvePermissions(user models.User) CapabilitySet {
	set := CapabilitySet{}
	if user.ID == 0 {
		return set
	}
	if user.IsAdmin {
		for _, c := range levelCapabilities[models.LevelSuperAdmin] {
			set[c] = true
		}
		return set
	}
	for _, c := range levelCapabilities[user.PermissionLevel] {
		set[c] = true
	}
	return set
}
