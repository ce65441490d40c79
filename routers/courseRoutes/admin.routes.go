package courseRoutes

import (
	"lms/access"
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin course management routes. Every
// route requires the ManageCourses capability (Course Admin or Super Admin).
func SetupAdminCourseRoutes(app *fiber.App) {
	manageCourses := middleware.RequireCapability(access.CapManageCourses)

	adminGroup := app.Group("/admin/course", middleware.JWTMiddleware, manageCourses)

	// Course CRUD
	adminGroup.Post("/create", validators.CreateCourseAdmin(), controllers.AdminCreateCourse)
	adminGroup.Get("/list", validators.AdminList(), controllers.AdminGetAllCourses)
	adminGroup.Put("/:id", validators.UpdateCourseAdmin(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/:id", validators.DeleteCourse(), controllers.AdminDeleteCourse)
	adminGroup.Post("/:id/publish", validators.PublishCourse(), controllers.AdminPublishCourse)

	// Module management
	adminGroup.Post("/:id/module", validators.CreateModule(), controllers.AdminCreateModule)
	adminGroup.Get("/:id/modules", validators.ListModules(), controllers.AdminListModules)

	moduleGroup := app.Group("/admin/module", middleware.JWTMiddleware, manageCourses)
	moduleGroup.Put("/:module_id", validators.UpdateModule(), controllers.AdminUpdateModule)
	moduleGroup.Post("/:module_id/publish", validators.PublishModule(), controllers.AdminPublishModule)
	moduleGroup.Put("/:module_id/reorder", validators.ReorderModule(), controllers.AdminReorderModule)
	moduleGroup.Delete("/:module_id", validators.DeleteModule(), controllers.AdminDeleteModule)

	// Lesson management
	moduleGroup.Post("/:module_id/lesson", validators.CreateLesson(), controllers.AdminCreateLesson)

	lessonGroup := app.Group("/admin/lesson", middleware.JWTMiddleware, manageCourses)
	lessonGroup.Put("/:lesson_id", validators.UpdateLesson(), controllers.AdminUpdateLesson)
	lessonGroup.Post("/:lesson_id/publish", validators.PublishLesson(), controllers.AdminPublishLesson)
	lessonGroup.Put("/:lesson_id/reorder", validators.ReorderLesson(), controllers.AdminReorderLesson)
	lessonGroup.Delete("/:lesson_id", validators.DeleteLesson(), controllers.AdminDeleteLesson)

	// Dashboard
	dashGroup := app.Group("/admin/dashboard", middleware.JWTMiddleware, manageCourses)
	dashGroup.Get("/stats", controllers.AdminDashboardStats)
}
