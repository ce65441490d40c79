package courseValidator

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// PurchaseEvent validates the payment collaborator's purchase-completed
// payload.
func PurchaseEvent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID     uint    `json:"user_id" validate:"required"`
			CourseID   uint    `json:"course_id" validate:"required"`
			Amount     float64 `json:"amount" validate:"gte=0"`
			PaymentRef string  `json:"payment_ref" validate:"required"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedPurchaseEvent", reqData)
		return c.Next()
	}
}
