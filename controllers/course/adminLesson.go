package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/structure"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// AdminCreateLesson appends a new (draft) lesson at the end of the module.
func AdminCreateLesson(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(int)

	reqData, ok := c.Locals("validatedLesson").(*struct {
		Title       string `json:"title" validate:"required,min=3"`
		Description string `json:"description"`
		ContentType string `json:"content_type" validate:"required,oneof=TEXT VIDEO QUIZ"`
		TextContent string `json:"text_content"`
		VideoURL    string `json:"video_url"`
		QuizData    string `json:"quiz_data"`
		Duration    int64  `json:"duration" validate:"gte=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lesson := courseModels.Lesson{
		Title:       reqData.Title,
		Description: reqData.Description,
		ContentType: reqData.ContentType,
		TextContent: reqData.TextContent,
		VideoURL:    reqData.VideoURL,
		Duration:    reqData.Duration,
	}
	if reqData.QuizData != "" {
		lesson.QuizData = datatypes.JSON(reqData.QuizData)
	}

	if err := structure.AppendLesson(database.Database.Db, uint(moduleID), &lesson); err != nil {
		return engineError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// AdminUpdateLesson updates a lesson's content fields.
func AdminUpdateLesson(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(int)

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	reqData, ok := c.Locals("validatedLessonUpdate").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		TextContent string `json:"text_content"`
		VideoURL    string `json:"video_url"`
		QuizData    string `json:"quiz_data"`
		Duration    *int64 `json:"duration"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		lesson.Title = reqData.Title
	}
	if reqData.Description != "" {
		lesson.Description = reqData.Description
	}
	if reqData.TextContent != "" {
		lesson.TextContent = reqData.TextContent
	}
	if reqData.VideoURL != "" {
		lesson.VideoURL = reqData.VideoURL
	}
	if reqData.QuizData != "" {
		lesson.QuizData = datatypes.JSON(reqData.QuizData)
	}
	if reqData.Duration != nil {
		lesson.Duration = *reqData.Duration
	}

	if err := database.Database.Db.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// AdminPublishLesson toggles a lesson's publish flag; enrollment progress for
// the course is recomputed against the new published set.
func AdminPublishLesson(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(int)
	publishStatus := c.Locals("publishStatus").(bool)

	if err := structure.SetLessonPublished(database.Database.Db, uint(lessonID), publishStatus); err != nil {
		return engineError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson publish state updated!", nil)
}

// AdminReorderLesson moves a lesson to a new position within its module.
func AdminReorderLesson(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(int)
	newIndex := c.Locals("newIndex").(int)

	if err := structure.ReorderLesson(database.Database.Db, uint(lessonID), newIndex); err != nil {
		return engineError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson reordered successfully!", nil)
}

// AdminDeleteLesson soft deletes a lesson and its completions; surviving
// siblings are renumbered.
func AdminDeleteLesson(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(int)

	if err := structure.DeleteLesson(database.Database.Db, uint(lessonID)); err != nil {
		return engineError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}
