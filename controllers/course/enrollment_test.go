package controllers

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupControllerDB opens an in-memory database and installs it as the global
// instance the handlers use. TranslateError is on, same as the production
// connection, so unique-index violations surface as gorm.ErrDuplicatedKey.
func setupControllerDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
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

	database.Database = database.DbInstance{Db: db}
	return db
}

// newEnrollApp wires EnrollInCourse behind a stub that injects the Locals the
// auth middleware and validator would normally set.
func newEnrollApp(user models.User, courseID uint) *fiber.App {
	app := fiber.New()
	app.Post("/course/:id/enroll", func(c *fiber.Ctx) error {
		c.Locals("authUser", user)
		c.Locals("courseID", int(courseID))
		return c.Next()
	}, EnrollInCourse)
	return app
}

func TestEnrollInCourseLifecycle(t *testing.T) {
	db := setupControllerDB(t)

	user := models.User{Email: "member@test.io", Password: "x", PermissionLevel: models.LevelMember}
	require.NoError(t, db.Create(&user).Error)
	crs := courseModels.Course{Title: "Free Course", IsFree: true, IsPublished: true}
	require.NoError(t, db.Create(&crs).Error)

	app := newEnrollApp(user, crs.ID)
	path := fmt.Sprintf("/course/%d/enroll", crs.ID)

	resp, err := app.Test(httptest.NewRequest("POST", path, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// enrolling again while the enrollment is live conflicts
	resp, err = app.Test(httptest.NewRequest("POST", path, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// a revoked enrollment is revived, not duplicated
	require.NoError(t, db.Model(&courseModels.Enrollment{}).
		Where("user_id = ?", user.ID).Update("is_deleted", true).Error)

	resp, err = app.Test(httptest.NewRequest("POST", path, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND course_id = ?", user.ID, crs.ID).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestEnrollInCourseDraftCourse(t *testing.T) {
	db := setupControllerDB(t)

	user := models.User{Email: "member@test.io", Password: "x", PermissionLevel: models.LevelMember}
	require.NoError(t, db.Create(&user).Error)
	crs := courseModels.Course{Title: "Draft Course", IsFree: true, IsPublished: false}
	require.NoError(t, db.Create(&crs).Error)

	app := newEnrollApp(user, crs.ID)
	resp, err := app.Test(httptest.NewRequest("POST", fmt.Sprintf("/course/%d/enroll", crs.ID), nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestEnrollDuplicateKeyTranslation(t *testing.T) {
	db := setupControllerDB(t)

	// the handler maps exactly this error to Conflict; anything else is a 500
	first := courseModels.Enrollment{UserID: 1, CourseID: 1, Status: courseModels.StatusEnrolled}
	require.NoError(t, db.Create(&first).Error)

	dup := courseModels.Enrollment{UserID: 1, CourseID: 1, Status: courseModels.StatusEnrolled}
	err := db.Create(&dup).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
