package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all user-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	userGroup := app.Group("/course", middleware.JWTMiddleware, middleware.LoadUser)

	// Catalog and tree (entitlement-filtered)
	userGroup.Get("/list", validators.CourseList(), controllers.GetAllCourses)
	userGroup.Get("/:id/tree", validators.GetCourseTree(), controllers.GetCourseTree)

	// Enrollment
	userGroup.Post("/:id/enroll", validators.EnrollCourse(), controllers.EnrollInCourse)

	// Lesson completion and progress
	userGroup.Post("/lesson/:lesson_id/complete", validators.CompleteLesson(), controllers.CompleteLesson)
	userGroup.Get("/:course_id/progress", validators.GetCourseProgress(), controllers.GetUserProgress)

	// User enrollments
	enrollGroup := app.Group("/user", middleware.JWTMiddleware, middleware.LoadUser)
	enrollGroup.Get("/enrollments", validators.GetUserEnrollments(), controllers.GetUserEnrollments)
}
