package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// RecordPurchase converts a "purchase completed" event from the payment
// collaborator into a Purchase row. Replaying the same event is an idempotent
// no-op returning the existing purchase. A purchase grants access but does
// not enroll; enrollment stays an explicit user step.
func RecordPurchase(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedPurchaseEvent").(*struct {
		UserID     uint    `json:"user_id" validate:"required"`
		CourseID   uint    `json:"course_id" validate:"required"`
		Amount     float64 `json:"amount" validate:"gte=0"`
		PaymentRef string  `json:"payment_ref" validate:"required"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var crs courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if err := utils.VerifyPurchaseEvent(reqData.PaymentRef, reqData.Amount); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment verification failed!", nil)
	}

	var existing courseModels.Purchase
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", reqData.UserID, reqData.CourseID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Purchase already recorded!", existing)
	}

	purchase := courseModels.Purchase{
		UserID:    reqData.UserID,
		CourseID:  reqData.CourseID,
		Amount:    reqData.Amount,
		Reference: uuid.NewString(),
	}

	if err := database.Database.Db.Clauses(clause.OnConflict{DoNothing: true}).Create(&purchase).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record purchase!", nil)
	}

	// A concurrent replay may have won the insert; return the winning row.
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", reqData.UserID, reqData.CourseID, false).First(&purchase).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record purchase!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Purchase recorded successfully!", purchase)
}
