package paymentRoutes

import (
	controllers "lms/controllers/course"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentRoutes wires the payment collaborator's webhook. The event is
// verified against the provider by the handler before anything is recorded.
func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payment")

	paymentGroup.Post("/webhook", validators.PurchaseEvent(), controllers.RecordPurchase)
}
