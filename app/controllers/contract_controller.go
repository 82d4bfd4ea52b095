package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/FirdavsToshev/NumVault/app/repository"
	"github.com/FirdavsToshev/NumVault/internal/pkg/database"
	"github.com/FirdavsToshev/NumVault/internal/pkg/lifecycle"
)

type createContractRequest struct {
	PhoneNumberID uint   `json:"phone_number_id"`
	SubscriberID  uint   `json:"subscriber_id"`
	StartDate     string `json:"start_date"`
}

// HandleListContracts returns all contracts joined with number and
// subscriber summaries, newest start date first.
func HandleListContracts(c *fiber.Ctx) error {
	contracts, err := repository.GetGlobalFactory().GetContractRepository().List()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(contracts)
}

// HandleCreateContract binds a subscriber to a phone number. The number
// becomes active and the transition is logged, all in one transaction.
func HandleCreateContract(c *fiber.Ctx) error {
	var req createContractRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}
	if req.PhoneNumberID == 0 || req.SubscriberID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": "Phone number and subscriber are required"})
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation_failed", "message": "Invalid start date"})
	}

	svc := lifecycle.NewService(database.GetDB())
	contract, err := svc.CreateContract(req.PhoneNumberID, req.SubscriberID, startDate)
	if err != nil {
		return serviceError(c, err)
	}

	created, err := repository.GetGlobalFactory().GetContractRepository().GetByID(contract.ID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleTerminateContract ends a contract; the number enters quarantine.
func HandleTerminateContract(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	svc := lifecycle.NewService(database.GetDB())
	if err := svc.TerminateContract(id); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Contract terminated successfully"})
}

// HandleDeleteContract removes a contract as a correction; the number
// returns to free immediately, without quarantine.
func HandleDeleteContract(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	svc := lifecycle.NewService(database.GetDB())
	if err := svc.DeleteContract(id); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseDate accepts a plain date or an RFC3339 timestamp; empty means now.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
