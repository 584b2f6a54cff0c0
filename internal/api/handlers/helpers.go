package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// userID reads the authenticated user id set by the auth middleware.
func userID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals("userID").(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid user context")
	}
	return id, nil
}
