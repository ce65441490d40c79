package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// AdminDashboardStats returns headline counts for the admin dashboard:
// totals plus this-month enrollments, completions and revenue.
func AdminDashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalCourses, publishedCourses int64
	db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	db.Model(&courseModels.Course{}).Where("is_deleted = ? AND is_published = ?", false, true).Count(&publishedCourses)

	var totalEnrollments, completedEnrollments int64
	db.Model(&courseModels.Enrollment{}).Where("is_deleted = ?", false).Count(&totalEnrollments)
	db.Model(&courseModels.Enrollment{}).Where("is_deleted = ? AND completed = ?", false, true).Count(&completedEnrollments)

	monthStart := now.BeginningOfMonth()
	weekStart := now.BeginningOfWeek()

	var enrollmentsThisMonth, completionsThisWeek int64
	db.Model(&courseModels.Enrollment{}).Where("is_deleted = ? AND created_at >= ?", false, monthStart).Count(&enrollmentsThisMonth)
	db.Model(&courseModels.LessonCompletion{}).Where("is_deleted = ? AND created_at >= ?", false, weekStart).Count(&completionsThisWeek)

	var revenueThisMonth float64
	db.Model(&courseModels.Purchase{}).Where("is_deleted = ? AND created_at >= ?", false, monthStart).
		Select("COALESCE(SUM(amount), 0)").Scan(&revenueThisMonth)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"total_courses":          totalCourses,
		"published_courses":      publishedCourses,
		"total_enrollments":      totalEnrollments,
		"completed_enrollments":  completedEnrollments,
		"enrollments_this_month": enrollmentsThisMonth,
		"completions_this_week":  completionsThisWeek,
		"revenue_this_month":     revenueThisMonth,
	})
}
