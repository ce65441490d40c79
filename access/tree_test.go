package access

import (
	"testing"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedTree builds a course with:
//
//	module 0 (published): lesson 0 published, lesson 1 draft
//	module 1 (draft):     lesson 0 published
//	module 2 (published): no lessons at all
func seedTree(t *testing.T, db *gorm.DB) courseModels.Course {
	t.Helper()

	crs := courseModels.Course{Title: "Layout", IsFree: true, IsPublished: true}
	require.NoError(t, db.Create(&crs).Error)

	m0 := courseModels.Module{CourseID: crs.ID, Title: "Intro", OrderIndex: 0, IsPublished: true}
	m1 := courseModels.Module{CourseID: crs.ID, Title: "Draft Section", OrderIndex: 1, IsPublished: false}
	m2 := courseModels.Module{CourseID: crs.ID, Title: "Coming Soon", OrderIndex: 2, IsPublished: true}
	require.NoError(t, db.Create(&m0).Error)
	require.NoError(t, db.Create(&m1).Error)
	require.NoError(t, db.Create(&m2).Error)

	lessons := []courseModels.Lesson{
		{ModuleID: m0.ID, CourseID: crs.ID, Title: "Welcome", OrderIndex: 0, IsPublished: true},
		{ModuleID: m0.ID, CourseID: crs.ID, Title: "Unfinished", OrderIndex: 1, IsPublished: false},
		{ModuleID: m1.ID, CourseID: crs.ID, Title: "Hidden", OrderIndex: 0, IsPublished: true},
	}
	for i := range lessons {
		require.NoError(t, db.Create(&lessons[i]).Error)
	}
	return crs
}

func TestLoadTreeOrdersAndGroups(t *testing.T) {
	db := setupTestDB(t)
	crs := seedTree(t, db)

	tree, err := LoadTree(db, crs)
	require.NoError(t, err)

	require.Len(t, tree.Modules, 3)
	require.Equal(t, "Intro", tree.Modules[0].Title)
	require.Equal(t, "Draft Section", tree.Modules[1].Title)
	require.Equal(t, "Coming Soon", tree.Modules[2].Title)

	require.Len(t, tree.Modules[0].Lessons, 2)
	require.Equal(t, "Welcome", tree.Modules[0].Lessons[0].Title)
	require.Equal(t, "Unfinished", tree.Modules[0].Lessons[1].Title)
	require.Len(t, tree.Modules[1].Lessons, 1)
	require.Empty(t, tree.Modules[2].Lessons)
}

func TestFilterTreeAdminSeesEverything(t *testing.T) {
	db := setupTestDB(t)
	crs := seedTree(t, db)

	tree, err := LoadTree(db, crs)
	require.NoError(t, err)

	filtered := FilterTree(tree, AdminPreview)
	require.Len(t, filtered.Modules, 3)
	require.Len(t, filtered.Modules[0].Lessons, 2)
}

func TestFilterTreePublishedOnly(t *testing.T) {
	db := setupTestDB(t)
	crs := seedTree(t, db)

	tree, err := LoadTree(db, crs)
	require.NoError(t, err)

	for _, tier := range []AccessTier{FreePreview, PremiumAccess, PurchasedAccess, EnrolledAccess} {
		filtered := FilterTree(tree, tier)

		require.Len(t, filtered.Modules, 2, "tier %s", tier)
		require.Equal(t, "Intro", filtered.Modules[0].Title)
		require.Len(t, filtered.Modules[0].Lessons, 1)
		require.Equal(t, "Welcome", filtered.Modules[0].Lessons[0].Title)

		// a published module with no published lessons stays, empty
		require.Equal(t, "Coming Soon", filtered.Modules[1].Title)
		require.NotNil(t, filtered.Modules[1].Lessons)
		require.Empty(t, filtered.Modules[1].Lessons)
	}
}

func TestFilterTreeNoAccess(t *testing.T) {
	db := setupTestDB(t)
	crs := seedTree(t, db)

	tree, err := LoadTree(db, crs)
	require.NoError(t, err)

	filtered := FilterTree(tree, NoAccess)
	require.Equal(t, crs.ID, filtered.Course.ID)
	require.NotNil(t, filtered.Modules)
	require.Empty(t, filtered.Modules)
}
