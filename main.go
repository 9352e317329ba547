package main

import (
	"coursex/config"
	"coursex/database"
	adminRoutes "coursex/routers/adminRoutes"
	authRoutes "coursex/routers/authRoutes"
	courseRoutes "coursex/routers/courseRoutes"
	instructorRoutes "coursex/routers/instructorRoutes"
	paymentRoutes "coursex/routers/paymentRoutes"
	reviewRoutes "coursex/routers/reviewRoutes"
	wishlistRoutes "coursex/routers/wishlistRoutes"
	"coursex/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"log"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	paymentRoutes.SetupPaymentRoutes(app)
	reviewRoutes.SetupReviewRoutes(app)
	wishlistRoutes.SetupWishlistRoutes(app)
	instructorRoutes.SetupInstructorRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	// Repairs completed payments that never got their enrollment
	utils.InitializePaymentReconciler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
