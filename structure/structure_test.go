package structure

import (
	"fmt"
	"strings"
	"testing"

	"lms/models"
	courseModels "lms/models/course"
	"lms/progress"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&courseModels.Course{},
		&courseModels.Module{},
		&courseModels.Lesson{},
		&courseModels.Enrollment{},
		&courseModels.Purchase{},
		&courseModels.LessonCompletion{},
	))
	return db
}

func createPublishedCourse(t *testing.T, db *gorm.DB) courseModels.Course {
	t.Helper()
	crs := courseModels.Course{Title: "Course", IsFree: true, IsPublished: true}
	require.NoError(t, db.Create(&crs).Error)
	return crs
}

func appendModules(t *testing.T, db *gorm.DB, courseID uint, n int) []courseModels.Module {
	t.Helper()
	out := make([]courseModels.Module, n)
	for i := range out {
		out[i] = courseModels.Module{Title: fmt.Sprintf("Module %d", i)}
		require.NoError(t, AppendModule(db, courseID, &out[i]))
	}
	return out
}

func appendLessons(t *testing.T, db *gorm.DB, moduleID uint, n int) []courseModels.Lesson {
	t.Helper()
	out := make([]courseModels.Lesson, n)
	for i := range out {
		out[i] = courseModels.Lesson{Title: fmt.Sprintf("Lesson %d", i)}
		require.NoError(t, AppendLesson(db, moduleID, &out[i]))
	}
	return out
}

func liveModuleOrder(t *testing.T, db *gorm.DB, courseID uint) []uint {
	t.Helper()
	var ids []uint
	require.NoError(t, db.Model(&courseModels.Module{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Pluck("id", &ids).Error)
	return ids
}

func liveLessonOrder(t *testing.T, db *gorm.DB, moduleID uint) []uint {
	t.Helper()
	var ids []uint
	require.NoError(t, db.Model(&courseModels.Lesson{}).
		Where("module_id = ? AND is_deleted = ?", moduleID, false).
		Order("order_index asc").Pluck("id", &ids).Error)
	return ids
}

func requireDenseIndices(t *testing.T, db *gorm.DB, model interface{}, where string, parentID uint) {
	t.Helper()
	var indices []int
	require.NoError(t, db.Model(model).
		Where(where+" = ? AND is_deleted = ?", parentID, false).
		Order("order_index asc").Pluck("order_index", &indices).Error)
	for i, idx := range indices {
		require.Equal(t, i, idx, "order indices must be dense and zero-based")
	}
}

func TestAppendModuleAssignsDenseIndices(t *testing.T) {
	db := setupTestDB(t)
	crs := createPublishedCourse(t, db)

	modules := appendModules(t, db, crs.ID, 3)
	for i, m := range modules {
		require.Equal(t, i, m.OrderIndex)
		require.Equal(t, crs.ID, m.CourseID)
		require.False(t, m.IsPublished, "new modules start as drafts")
	}
}

func TestAppendModuleUnknownCourse(t *testing.T) {
	db := setupTestDB(t)
	err := AppendModule(db, 9999, &courseModels.Module{Title: "Orphan"})
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestAppendLessonAssignsDenseIndicesAndCourseID(t *testing.T) {
	db := setupTestDB(t)
	crs := createPublishedCourse(t, db)
	module := appendModules(t, db, crs.ID, 1)[0]

	lessons := appendLessons(t, db, module.ID, 3)
	for i, l := range lessons {
		require.Equal(t, i, l.OrderIndex)
		require.Equal(t, module.ID, l.ModuleID)
		require.Equal(t, crs.ID, l.CourseID)
		require.False(t, l.IsPublished)
	}
}

func TestAppendAfterDeleteFillsGap(t *testing.T) {
	db := setupTestDB(t)
	crs := createPublishedCourse(t, db)
	modules := appendModules(t, db, crs.ID, 3)

	require.NoError(t, DeleteModule(db, modules[1].ID))

	next := courseModels.Module{Title: "Replacement"}
	require.NoError(t, AppendModule(db, crs.ID, &next))
	require.Equal(t, 2, next.OrderIndex)
	requireDenseIndices(t, db, &courseModels.Module{}, "course_id", crs.ID)
}

func TestReorderLesson(t *testing.T) {
	db := setupTestDB(t)
	crs := createPublishedCourse(t, db)
	module := appendModules(t, db, crs.ID, 1)[0]
	lessons := appendLessons(t, db, module.ID, 4)

	// move the last lesson to position 1
	require.NoError(t, ReorderLesson(db, lessons[3].ID, 1))

	order := liveLessonOrder(t, db, module.ID)
	require.Equal(t, []uint{lessons[0].ID, lessons[3].ID, lessons[1].ID, lessons[2].ID}, order)
	requireDenseIndices(t, db, &courseModels.Lesson{}, "module_id", module.ID)
}

func TestReorderLessonToSamePosition(t *testing.T) {
	db := setupTestDB(t)
	crs := createPublishedCourse(t, db)
	module := appendModules(t, db, crs.ID, 1)[0]
	lessons := appendLessons(t, db, module.ID, 3)

	require.NoError(t, ReorderLesson(db, lessons[1].ID, 1))

	order := liveLessonOrder(t, db, module.ID)
	require.Equal(t, []uint{lessons[0].ID, lessons[1].ID, lessons[2].ID}, order)
}

func TestReorderLessonInvalidIndex(t *testing.T) {
	db := setupTestDB(t)
	crs := createPublishedCourse(t, db)
	module := appendModules(t, db, crs.ID, 1)[0]
	lessons := appendLessons(t, db, module.ID, 3)

	require.ErrorIs(t, ReorderLesson(db, lessons[0].ID, 3), models.ErrInvalidOrder)
	require.ErrorIs(t, ReorderLesson(db, lessons[0].ID, -1), models.ErrInvalidOrder)

	// a rejected reorder leaves the order untouched
	order := liveLessonOrder(t, db, module.ID)
	require.Equal(t, []uint{lessons[0].ID, lessons[1].ID, lessons[2].ID}, order)
}

func TestReorderModule(t *testing.T) {
	db := setupTestDB(t)
	crs := createPublishedCourse(t, db)
	modules := appendModules(t, db, crs.ID, 3)

	require.NoError(t, ReorderModule(db, modules[0].ID, 2))

	order := liveModuleOrder(t, db, crs.ID)
	require.Equal(t, []uint{modules[1].ID, modules[2].ID, modules[0].ID}, order)
	requireDenseIndices(t, db, &courseModels.Module{}, "course_id", crs.ID)
}

func TestReorderUnknownModule(t *testing.T) {
	db := setupTestDB(t)
	require.ErrorIs(t, ReorderModule(db, 9999, 0), models.ErrNotFound)
}

func TestDeleteModuleRenumbersSurvivors(t *testing.T) {
	db := setupTestDB(t)
	crs := createPublishedCourse(t, db)
	modules := appendModules(t, db, crs.ID, 3)

	require.NoError(t, DeleteModule(db, modules[1].ID))

	order := liveModuleOrder(t, db, crs.ID)
	require.Equal(t, []uint{modules[0].ID, modules[2].ID}, order)
	requireDenseIndices(t, db, &courseModels.Module{}, "course_id", crs.ID)

	require.ErrorIs(t, DeleteModule(db, modules[1].ID), models.ErrNotFound)
}

func TestDeleteModuleCascadesAndRecomputes(t *testing.T) {
	db := setupTestDB(t)
	crs := createPublishedCourse(t, db)
	modules := appendModules(t, db, crs.ID, 2)
	lessonsA := appendLessons(t, db, modules[0].ID, 1)
	lessonsB := appendLessons(t, db, modules[1].ID, 1)

	for _, m := range modules {
		require.NoError(t, SetModulePublished(db, m.ID, true))
	}
	require.NoError(t, SetLessonPublished(db, lessonsA[0].ID, true))
	require.NoError(t, SetLessonPublished(db, lessonsB[0].ID, true))

	user := models.User{Email: "learner@test.io", Password: "x", PermissionLevel: models.LevelMember}
	require.NoError(t, db.Create(&user).Error)

	enr, err := progress.RecordCompletion(db, user, lessonsA[0].ID)
	require.NoError(t, err)
	require.Equal(t, 50, enr.Progress)

	// deleting the module with the completed lesson drops that completion;
	// the other module's lesson becomes the whole course
	require.NoError(t, DeleteModule(db, modules[0].ID))

	var lesson courseModels.Lesson
	require.NoError(t, db.First(&lesson, lessonsA[0].ID).Error)
	require.True(t, lesson.IsDeleted)

	var completion courseModels.LessonCompletion
	require.NoError(t, db.First(&completion, "lesson_id = ?", lessonsA[0].ID).Error)
	require.True(t, completion.IsDeleted)

	var after courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, crs.ID).First(&after).Error)
	require.Equal(t, 0, after.Progress)
}

func TestDeleteLessonRenumbersAndRecomputes(t *testing.T) {
	db := setupTestDB(t)
	crs := createPublishedCourse(t, db)
	module := appendModules(t, db, crs.ID, 1)[0]
	lessons := appendLessons(t, db, module.ID, 3)

	require.NoError(t, SetModulePublished(db, module.ID, true))
	for _, l := range lessons {
		require.NoError(t, SetLessonPublished(db, l.ID, true))
	}

	user := models.User{Email: "learner@test.io", Password: "x", PermissionLevel: models.LevelMember}
	require.NoError(t, db.Create(&user).Error)

	enr, err := progress.RecordCompletion(db, user, lessons[0].ID)
	require.NoError(t, err)
	require.Equal(t, 33, enr.Progress)

	// deleting an uncompleted lesson shrinks the denominator to 2
	require.NoError(t, DeleteLesson(db, lessons[2].ID))

	order := liveLessonOrder(t, db, module.ID)
	require.Equal(t, []uint{lessons[0].ID, lessons[1].ID}, order)
	requireDenseIndices(t, db, &courseModels.Lesson{}, "module_id", module.ID)

	var after courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, crs.ID).First(&after).Error)
	require.Equal(t, 50, after.Progress)
}

func TestSetLessonPublishedRecomputes(t *testing.T) {
	db := setupTestDB(t)
	crs := createPublishedCourse(t, db)
	module := appendModules(t, db, crs.ID, 1)[0]
	lessons := appendLessons(t, db, module.ID, 2)

	require.NoError(t, SetModulePublished(db, module.ID, true))
	require.NoError(t, SetLessonPublished(db, lessons[0].ID, true))
	require.NoError(t, SetLessonPublished(db, lessons[1].ID, true))

	user := models.User{Email: "learner@test.io", Password: "x", PermissionLevel: models.LevelMember}
	require.NoError(t, db.Create(&user).Error)

	_, err := progress.RecordCompletion(db, user, lessons[0].ID)
	require.NoError(t, err)

	// unpublishing the other lesson leaves one published lesson, completed
	require.NoError(t, SetLessonPublished(db, lessons[1].ID, false))

	var after courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, crs.ID).First(&after).Error)
	require.Equal(t, 100, after.Progress)
	require.True(t, after.Completed)
	require.Equal(t, courseModels.StatusCompleted, after.Status)
}

func TestSetModulePublishedRecomputes(t *testing.T) {
	db := setupTestDB(t)
	crs := createPublishedCourse(t, db)
	modules := appendModules(t, db, crs.ID, 2)
	lessonsA := appendLessons(t, db, modules[0].ID, 1)
	lessonsB := appendLessons(t, db, modules[1].ID, 1)

	require.NoError(t, SetModulePublished(db, modules[0].ID, true))
	require.NoError(t, SetLessonPublished(db, lessonsA[0].ID, true))
	require.NoError(t, SetLessonPublished(db, lessonsB[0].ID, true))

	user := models.User{Email: "learner@test.io", Password: "x", PermissionLevel: models.LevelMember}
	require.NoError(t, db.Create(&user).Error)

	// only module A is published, so its single lesson is 100% of the course
	enr, err := progress.RecordCompletion(db, user, lessonsA[0].ID)
	require.NoError(t, err)
	require.Equal(t, 100, enr.Progress)

	// publishing module B doubles the denominator
	require.NoError(t, SetModulePublished(db, modules[1].ID, true))

	var after courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, crs.ID).First(&after).Error)
	require.Equal(t, 50, after.Progress)
	require.False(t, after.Completed)
	require.Equal(t, courseModels.StatusInProgress, after.Status)
}
