package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/progress"

	"github.com/gofiber/fiber/v2"
)

// CompleteLesson records a lesson completion for the caller and returns the
// recomputed enrollment. Completing an already-completed lesson is a no-op.
func CompleteLesson(c *fiber.Ctx) error {
	user, ok := authUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID := c.Locals("lessonID").(int)

	enrollment, err := progress.RecordCompletion(database.Database.Db, user, uint(lessonID))
	if err != nil {
		return engineError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as completed!", enrollment)
}

// GetUserProgress returns the caller's enrollment for a course plus a
// per-module completion breakdown over the published lesson set.
func GetUserProgress(c *fiber.Ctx) error {
	user, ok := authUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var modules []courseModels.Module
	database.Database.Db.Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Order("order_index asc").Find(&modules)

	completed := map[uint]bool{}
	var completions []courseModels.LessonCompletion
	database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, courseID, false).Find(&completions)
	for _, cc := range completions {
		completed[cc.LessonID] = true
	}

	type ModuleProgress struct {
		ModuleID         uint    `json:"module_id"`
		ModuleName       string  `json:"module_name"`
		TotalLessons     int     `json:"total_lessons"`
		CompletedLessons int     `json:"completed_lessons"`
		Progress         float64 `json:"progress"`
	}

	moduleProgress := make([]ModuleProgress, len(modules))
	for i, mod := range modules {
		var lessons []courseModels.Lesson
		database.Database.Db.Where("module_id = ? AND is_deleted = ? AND is_published = ?", mod.ID, false, true).Find(&lessons)

		done := 0
		for _, l := range lessons {
			if completed[l.ID] {
				done++
			}
		}

		mp := ModuleProgress{
			ModuleID:         mod.ID,
			ModuleName:       mod.Title,
			TotalLessons:     len(lessons),
			CompletedLessons: done,
		}
		if len(lessons) > 0 {
			mp.Progress = float64(done) / float64(len(lessons)) * 100
		}
		moduleProgress[i] = mp
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment": enrollment,
		"modules":    moduleProgress,
	})
}
