package controllers

import (
	"errors"

	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// engineError maps the engine's error taxonomy to HTTP responses. Conflict is
// the only status a client is expected to retry on.
func engineError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrEnrollmentRequired):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Enroll in this course first!", nil)
	case errors.Is(err, models.ErrAccessDenied):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	case errors.Is(err, models.ErrForbidden):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	case errors.Is(err, models.ErrNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Not found!", nil)
	case errors.Is(err, models.ErrInvalidOrder):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid order index!", nil)
	case errors.Is(err, models.ErrConflict):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Concurrent update detected, please retry!", nil)
	default:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}
}

// authUser returns the user loaded by the auth middleware chain.
func authUser(c *fiber.Ctx) (models.User, bool) {
	user, ok := c.Locals("authUser").(models.User)
	return user, ok
}
