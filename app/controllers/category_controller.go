package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/FirdavsToshev/NumVault/app/models"
	"github.com/FirdavsToshev/NumVault/app/repository"
	"github.com/FirdavsToshev/NumVault/internal/pkg/database"
	"github.com/FirdavsToshev/NumVault/internal/pkg/lifecycle"
)

// HandleListCategories returns all pricing categories with their number
// counts, optionally filtered by a search term.
func HandleListCategories(c *fiber.Ctx) error {
	categories, err := repository.GetGlobalFactory().GetCategoryRepository().List(c.Query("search"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(categories)
}

// HandleCreateCategory creates a pricing category.
func HandleCreateCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}
	if category.SurchargeType == "" {
		category.SurchargeType = models.SurchargeTypeFixed
	}
	if err := category.Validate(); err != nil {
		return serviceError(c, err)
	}

	if err := repository.GetGlobalFactory().GetCategoryRepository().Create(&category); err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleUpdateCategory edits a pricing category.
func HandleUpdateCategory(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	repo := repository.GetGlobalFactory().GetCategoryRepository()
	category, err := repo.GetByID(id)
	if err != nil {
		return serviceError(c, err)
	}

	if err := c.BodyParser(category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}
	category.ID = id
	if err := category.Validate(); err != nil {
		return serviceError(c, err)
	}

	if err := repo.Update(category); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(category)
}

// HandleDeleteCategory removes a category and cascades onto its numbers.
func HandleDeleteCategory(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	svc := lifecycle.NewService(database.GetDB())
	if err := svc.DeleteCategory(id); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
