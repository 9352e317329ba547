package paymentRoutes

import (
	paymentControllers "coursex/controllers/payment"
	"coursex/middleware"
	paymentValidators "coursex/validators/payment"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/api/payments")

	paymentGroup.Post("/create-intent", middleware.JWTMiddleware, middleware.SyncUser, paymentValidators.CreateIntent(), paymentControllers.CreatePaymentIntent)
	paymentGroup.Post("/confirm", middleware.JWTMiddleware, middleware.SyncUser, paymentValidators.ConfirmPayment(), paymentControllers.ConfirmPayment)
	paymentGroup.Get("/purchases", middleware.JWTMiddleware, middleware.SyncUser, paymentControllers.GetPurchases)
}
