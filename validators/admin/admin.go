package adminValidator

import (
	"coursex/middleware"
	"coursex/models"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func UpdateUserRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDStr := strings.TrimSpace(c.Params("id"))
		userID, err := strconv.Atoi(userIDStr)
		if err != nil || userID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		}

		reqData := new(struct {
			Role string `json:"role"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		switch reqData.Role {
		case models.RoleStudent, models.RoleInstructor, models.RoleAdmin:
		default:
			return middleware.ValidationErrorResponse(c, map[string]string{
				"role": "Role must be STUDENT, INSTRUCTOR or ADMIN!",
			})
		}

		c.Locals("targetUserID", userID)
		c.Locals("targetRole", reqData.Role)
		return c.Next()
	}
}
