package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/FirdavsToshev/NumVault/app/models"
	"github.com/FirdavsToshev/NumVault/app/repository"
	"github.com/FirdavsToshev/NumVault/internal/pkg/database"
	"github.com/FirdavsToshev/NumVault/internal/pkg/lifecycle"
)

// HandleListOperators returns all operators with their inventory counters,
// optionally filtered by a search term.
func HandleListOperators(c *fiber.Ctx) error {
	operators, err := repository.GetGlobalFactory().GetOperatorRepository().List(c.Query("search"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(operators)
}

// HandleCreateOperator creates a carrier.
func HandleCreateOperator(c *fiber.Ctx) error {
	var operator models.Operator
	if err := c.BodyParser(&operator); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}
	if err := operator.Validate(); err != nil {
		return serviceError(c, err)
	}

	if err := repository.GetGlobalFactory().GetOperatorRepository().Create(&operator); err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(operator)
}

// HandleUpdateOperator edits a carrier.
func HandleUpdateOperator(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	repo := repository.GetGlobalFactory().GetOperatorRepository()
	operator, err := repo.GetByID(id)
	if err != nil {
		return serviceError(c, err)
	}

	if err := c.BodyParser(operator); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}
	operator.ID = id
	if err := operator.Validate(); err != nil {
		return serviceError(c, err)
	}

	if err := repo.Update(operator); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(operator)
}

// HandleDeleteOperator removes a carrier and every number it owns, together
// with their contracts and history, in one transaction.
func HandleDeleteOperator(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	svc := lifecycle.NewService(database.GetDB())
	if err := svc.DeleteOperator(id); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
