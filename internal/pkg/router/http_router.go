package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HttpRouter serves the static admin SPA and the liveness endpoint.
type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	app.Static("/", "./public", fiber.Static{
		CacheDuration: 15 * time.Second,
		Compress:      true,
	})
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
