package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/FirdavsToshev/NumVault/app/repository"
)

// HandleGetSettings returns every stored setting as a key-value map.
func HandleGetSettings(c *fiber.Ctx) error {
	settings, err := repository.GetGlobalFactory().GetSettingRepository().GetAll()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(settings)
}

// HandleUpdateSettings upserts the submitted key-value pairs and returns the
// full settings map afterwards.
func HandleUpdateSettings(c *fiber.Ctx) error {
	var updates map[string]interface{}
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	repo := repository.GetGlobalFactory().GetSettingRepository()
	for key, value := range updates {
		if err := repo.SetValue(key, fmt.Sprintf("%v", value)); err != nil {
			return serviceError(c, err)
		}
	}

	settings, err := repo.GetAll()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(settings)
}
