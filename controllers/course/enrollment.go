package controllers

import (
	"errors"

	"lms/access"
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// EnrollInCourse explicitly enrolls the caller. Valid for any entitlement
// above NoAccess: free courses, premium users, purchasers and admins.
func EnrollInCourse(c *fiber.Ctx) error {
	user, ok := authUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var crs courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	tier, err := access.ResolveEntitlement(database.Database.Db, user, crs)
	if err != nil {
		return engineError(c, err)
	}
	if tier == access.NoAccess {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Purchase this course or upgrade to premium to enroll!", nil)
	}

	var existing courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ?", user.ID, courseID).First(&existing).Error; err == nil {
		if !existing.IsDeleted {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
		}

		// a revoked enrollment holds the unique (user, course) slot; revive it
		revived := map[string]interface{}{
			"is_deleted":   false,
			"progress":     0,
			"completed":    false,
			"status":       courseModels.StatusEnrolled,
			"completed_at": nil,
		}
		if err := database.Database.Db.Model(&existing).Updates(revived).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", existing)
	}

	enrollment := courseModels.Enrollment{
		UserID:   user.ID,
		CourseID: uint(courseID),
		Status:   courseModels.StatusEnrolled,
	}

	if err := database.Database.Db.Create(&enrollment).Error; err != nil {
		// unique (user, course) index lost to a concurrent enroll
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Concurrent enrollment detected, please retry!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

// GetUserEnrollments lists the caller's enrollments with pagination.
func GetUserEnrollments(c *fiber.Ctx) error {
	user, ok := authUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	page, limit := 1, 10
	if reqData, ok := c.Locals("validatedEnrollmentList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	}); ok {
		if reqData.Page != nil {
			page = *reqData.Page
		}
		if reqData.Limit != nil {
			limit = *reqData.Limit
		}
	}
	offset := (page - 1) * limit

	var enrollments []courseModels.Enrollment
	db := database.Database.Db.Model(&courseModels.Enrollment{}).Where("user_id = ? AND is_deleted = ?", user.ID, false)

	var total int64
	db.Count(&total)

	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	response := map[string]interface{}{
		"enrollments": enrollments,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", response)
}
