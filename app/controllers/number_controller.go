package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/FirdavsToshev/NumVault/app/models"
	"github.com/FirdavsToshev/NumVault/app/repository"
	"github.com/FirdavsToshev/NumVault/internal/pkg/database"
	"github.com/FirdavsToshev/NumVault/internal/pkg/lifecycle"
)

type createNumberRequest struct {
	Number     string `json:"number"`
	OperatorID uint   `json:"operator_id"`
	CategoryID uint   `json:"category_id"`
	Status     string `json:"status"`
}

type updateNumberRequest struct {
	Number     *string `json:"number"`
	OperatorID *uint   `json:"operator_id"`
	CategoryID *uint   `json:"category_id"`
	Status     *string `json:"status"`
	Notes      string  `json:"notes"`
}

type bulkCreateRequest struct {
	Numbers    []string `json:"numbers"`
	OperatorID uint     `json:"operator_id"`
	CategoryID uint     `json:"category_id"`
}

// HandleListNumbers returns one page of the number inventory with operator,
// category and subscriber summaries.
func HandleListNumbers(c *fiber.Ctx) error {
	filter := repository.NumberFilter{
		Search:     c.Query("search"),
		OperatorID: uint(c.QueryInt("operator_id")),
		CategoryID: uint(c.QueryInt("category_id")),
		Status:     c.Query("status"),
		Page:       c.QueryInt("page", 1),
		Limit:      c.QueryInt("limit", 20),
	}

	page, err := repository.GetGlobalFactory().GetNumberRepository().List(filter)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"numbers":     page.Numbers,
		"total":       page.Total,
		"page":        page.Page,
		"total_pages": page.TotalPages,
	})
}

// HandleCreateNumber adds a single number to the inventory. The creation is
// logged as the first history entry of the number.
func HandleCreateNumber(c *fiber.Ctx) error {
	var req createNumberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	number := models.PhoneNumber{
		Number:     req.Number,
		OperatorID: req.OperatorID,
		CategoryID: req.CategoryID,
		Status:     req.Status,
	}
	if number.Status == "" {
		number.Status = models.NumberStatusFree
	}
	if !models.ValidNumberStatus(number.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": "Unknown status value"})
	}

	repo := repository.GetGlobalFactory().GetNumberRepository()
	if _, err := repo.GetByNumber(number.Number); err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "duplicate", "message": "This number already exists"})
	}

	svc := lifecycle.NewService(database.GetDB())
	if err := svc.CreateNumber(&number); err != nil {
		return serviceError(c, err)
	}

	created, err := repo.GetByIDWithRelations(number.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleBulkCreateNumbers imports a batch of numbers for one operator and
// category. Existing numbers are skipped silently.
func HandleBulkCreateNumbers(c *fiber.Ctx) error {
	var req bulkCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}
	if len(req.Numbers) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": "Numbers must be a non-empty array"})
	}
	if req.OperatorID == 0 || req.CategoryID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": "Operator and category are required"})
	}

	svc := lifecycle.NewService(database.GetDB())
	created, err := svc.BulkCreateNumbers(req.Numbers, req.OperatorID, req.CategoryID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"created": created,
		"skipped": len(req.Numbers) - created,
	})
}

// HandleUpdateNumber edits a number. Plain fields are written directly; a
// status change is routed through the lifecycle core so it is validated and
// logged.
func HandleUpdateNumber(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req updateNumberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	repo := repository.GetGlobalFactory().GetNumberRepository()
	number, err := repo.GetByID(id)
	if err != nil {
		return serviceError(c, err)
	}

	changed := false
	if req.Number != nil && *req.Number != number.Number {
		number.Number = *req.Number
		changed = true
	}
	if req.OperatorID != nil && *req.OperatorID != 0 {
		number.OperatorID = *req.OperatorID
		changed = true
	}
	if req.CategoryID != nil && *req.CategoryID != 0 {
		number.CategoryID = *req.CategoryID
		changed = true
	}
	if changed {
		if err := number.Validate(); err != nil {
			return serviceError(c, err)
		}
		if err := repo.Update(number); err != nil {
			return serviceError(c, err)
		}
	}

	if req.Status != nil && *req.Status != number.Status {
		svc := lifecycle.NewService(database.GetDB())
		if _, err := svc.UpdateNumberStatus(id, *req.Status, req.Notes); err != nil {
			return serviceError(c, err)
		}
	}

	updated, err := repo.GetByIDWithRelations(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(updated)
}

// HandleDeleteNumber removes a number with its contracts and history.
func HandleDeleteNumber(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	svc := lifecycle.NewService(database.GetDB())
	if err := svc.DeletePhoneNumber(id); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleNumberHistory returns the status audit trail of a number, newest
// first.
func HandleNumberHistory(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if _, err := repository.GetGlobalFactory().GetNumberRepository().GetByID(id); err != nil {
		return serviceError(c, err)
	}

	history, err := repository.GetGlobalFactory().GetHistoryRepository().ListByNumber(id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(history)
}
