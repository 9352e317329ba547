package middleware

import (
	"coursex/config"
	"coursex/database"
	"coursex/models"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SyncUser mirrors the authenticated identity into the store on first
// sight. Tokens issued before the local row existed (or by an external
// identity provider sharing the signing key) still resolve to a user.
// If the token's email matches the configured admin email, the mirrored
// role is promoted to ADMIN.
func SyncUser(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		email, _ := c.Locals("userEmail").(string)
		if email == "" {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}
		name, _ := c.Locals("userName").(string)

		user = models.User{Name: name, Email: email, Password: "-", Role: models.RoleStudent}
		user.ID = userID
		if createErr := db.Create(&user).Error; createErr != nil {
			log.Printf("Error mirroring user %d: %v", userID, createErr)
			return JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve user!", nil)
		}
	} else if err != nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Promote to ADMIN on admin-email match
	if config.AppConfig.AdminEmail != "" && user.Email == config.AppConfig.AdminEmail && user.Role != models.RoleAdmin {
		user.Role = models.RoleAdmin
		if err := db.Save(&user).Error; err != nil {
			log.Printf("Error promoting admin user %d: %v", user.ID, err)
		}
	}

	c.Locals("userRole", user.Role)
	return c.Next()
}

// RequireRole returns a middleware that checks the mirrored role of the
// authenticated user
func RequireRole(requiredRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		var user models.User
		err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
			}
			return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while checking role!", nil)
		}

		if user.Role != requiredRole {
			return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
		}

		return c.Next()
	}
}
