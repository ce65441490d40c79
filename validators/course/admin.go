package courseValidator

import (
	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// fieldErrors turns validator.ValidationErrors into a field -> message map
// for the standard validation response.
func fieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			errors[fe.Field()] = "failed on '" + fe.Tag() + "' validation"
		}
	} else {
		errors["body"] = err.Error()
	}
	return errors
}

func CreateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string  `json:"title" validate:"required,min=3"`
			Description string  `json:"description"`
			Author      string  `json:"author"`
			Price       float64 `json:"price" validate:"gte=0"`
			IsFree      bool    `json:"is_free"`
			Duration    int64   `json:"duration" validate:"gte=0"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func UpdateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}
		c.Locals("courseID", id)

		reqData := new(struct {
			Title       string   `json:"title"`
			Description string   `json:"description"`
			Author      string   `json:"author"`
			Price       *float64 `json:"price"`
			IsFree      *bool    `json:"is_free"`
			Duration    *int64   `json:"duration"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if reqData.Price != nil && *reqData.Price < 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"price": "Price cannot be negative!"})
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

func DeleteCourse() fiber.Handler {
	return paramID("id", "courseID")
}

func AdminList() fiber.Handler {
	return CourseList()
}

// publishBody validates the {"is_published": bool} payload shared by the
// course/module/lesson publish endpoints.
func publishBody(param, key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, param)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ID!", nil)
		}
		c.Locals(key, id)

		reqData := new(struct {
			IsPublished *bool `json:"is_published"`
		})
		if err := c.BodyParser(reqData); err != nil || reqData.IsPublished == nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "is_published is required!", nil)
		}

		c.Locals("publishStatus", *reqData.IsPublished)
		return c.Next()
	}
}

func PublishCourse() fiber.Handler {
	return publishBody("id", "courseID")
}

func PublishModule() fiber.Handler {
	return publishBody("module_id", "moduleID")
}

func PublishLesson() fiber.Handler {
	return publishBody("lesson_id", "lessonID")
}

func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}
		c.Locals("courseID", id)

		reqData := new(struct {
			Title       string `json:"title" validate:"required,min=3"`
			Description string `json:"description"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

func UpdateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "module_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Module ID!", nil)
		}
		c.Locals("moduleID", id)

		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedModuleUpdate", reqData)
		return c.Next()
	}
}

func DeleteModule() fiber.Handler {
	return paramID("module_id", "moduleID")
}

func ListModules() fiber.Handler {
	return paramID("id", "courseID")
}

// reorderBody validates the {"new_index": int} payload shared by the module
// and lesson reorder endpoints. Range checking against the sibling count is
// the engine's job; only non-negativity is checked here.
func reorderBody(param, key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, param)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ID!", nil)
		}
		c.Locals(key, id)

		reqData := new(struct {
			NewIndex *int `json:"new_index"`
		})
		if err := c.BodyParser(reqData); err != nil || reqData.NewIndex == nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "new_index is required!", nil)
		}
		if *reqData.NewIndex < 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"new_index": "Index cannot be negative!"})
		}

		c.Locals("newIndex", *reqData.NewIndex)
		return c.Next()
	}
}

func ReorderModule() fiber.Handler {
	return reorderBody("module_id", "moduleID")
}

func ReorderLesson() fiber.Handler {
	return reorderBody("lesson_id", "lessonID")
}

func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "module_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Module ID!", nil)
		}
		c.Locals("moduleID", id)

		reqData := new(struct {
			Title       string `json:"title" validate:"required,min=3"`
			Description string `json:"description"`
			ContentType string `json:"content_type" validate:"required,oneof=TEXT VIDEO QUIZ"`
			TextContent string `json:"text_content"`
			VideoURL    string `json:"video_url"`
			QuizData    string `json:"quiz_data"`
			Duration    int64  `json:"duration" validate:"gte=0"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "lesson_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}
		c.Locals("lessonID", id)

		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			TextContent string `json:"text_content"`
			VideoURL    string `json:"video_url"`
			QuizData    string `json:"quiz_data"`
			Duration    *int64 `json:"duration"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedLessonUpdate", reqData)
		return c.Next()
	}
}

func DeleteLesson() fiber.Handler {
	return paramID("lesson_id", "lessonID")
}
