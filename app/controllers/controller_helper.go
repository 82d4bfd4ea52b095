package controllers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/FirdavsToshev/NumVault/internal/pkg/lifecycle"
)

// parseIDParam reads the :id route parameter.
func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

// serviceError maps lifecycle and storage errors onto JSON responses.
// Transactional failures come back as a generic 500 with no partial effects
// retained, everything else carries a user-facing message.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, lifecycle.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": err.Error()})
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_transition", "message": err.Error()})
	case errors.Is(err, lifecycle.ErrActiveContractExists), errors.Is(err, lifecycle.ErrContractNotActive):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conflict", "message": err.Error()})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "duplicate", "message": "A record with this unique value already exists"})
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}

	log.Printf("request failed: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Operation failed"})
}
