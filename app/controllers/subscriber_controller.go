package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/FirdavsToshev/NumVault/app/models"
	"github.com/FirdavsToshev/NumVault/app/repository"
	"github.com/FirdavsToshev/NumVault/internal/pkg/database"
	"github.com/FirdavsToshev/NumVault/internal/pkg/lifecycle"
)

// HandleListSubscribers returns all subscribers ordered by name.
func HandleListSubscribers(c *fiber.Ctx) error {
	subscribers, err := repository.GetGlobalFactory().GetSubscriberRepository().List()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(subscribers)
}

// HandleCreateSubscriber registers a subscriber.
func HandleCreateSubscriber(c *fiber.Ctx) error {
	var subscriber models.Subscriber
	if err := c.BodyParser(&subscriber); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}
	if err := subscriber.Validate(); err != nil {
		return serviceError(c, err)
	}

	if err := repository.GetGlobalFactory().GetSubscriberRepository().Create(&subscriber); err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(subscriber)
}

// HandleUpdateSubscriber edits a subscriber.
func HandleUpdateSubscriber(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	repo := repository.GetGlobalFactory().GetSubscriberRepository()
	subscriber, err := repo.GetByID(id)
	if err != nil {
		return serviceError(c, err)
	}

	if err := c.BodyParser(subscriber); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}
	subscriber.ID = id
	if err := subscriber.Validate(); err != nil {
		return serviceError(c, err)
	}

	if err := repo.Update(subscriber); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(subscriber)
}

// HandleDeleteSubscriber removes a subscriber; their contracts are deleted
// and any numbers still bound to them are released to free.
func HandleDeleteSubscriber(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	svc := lifecycle.NewService(database.GetDB())
	if err := svc.DeleteSubscriber(id); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
