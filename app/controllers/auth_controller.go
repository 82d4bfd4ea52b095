package controllers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/FirdavsToshev/NumVault/app/repository"
	"github.com/FirdavsToshev/NumVault/internal/pkg/middleware"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin authenticates a manager and issues a session token. The token
// is returned in the body and additionally set as an HTTP-only cookie.
func HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	repo := repository.GetGlobalFactory().GetManagerRepository()
	manager, err := repo.GetByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("login failed: user %s not found", req.Username)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Invalid credentials"})
		}
		return serviceError(c, err)
	}

	if !manager.CheckPassword(req.Password) {
		log.Printf("login failed: password mismatch for user %s", req.Username)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Invalid credentials"})
	}

	token, err := middleware.TokenService().Generate(manager.ID, manager.Username)
	if err != nil {
		return serviceError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    token,
		HTTPOnly: true,
		SameSite: "Lax",
		Expires:  time.Now().Add(24 * time.Hour),
	})

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":       manager.ID,
			"username": manager.Username,
			"name":     manager.Name,
		},
	})
}
