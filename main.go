package main

import (
	"fmt"
	"log"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/FirdavsToshev/NumVault/app/repository"
	"github.com/FirdavsToshev/NumVault/internal/pkg/cache"
	"github.com/FirdavsToshev/NumVault/internal/pkg/database"
	"github.com/FirdavsToshev/NumVault/internal/pkg/env"
	"github.com/FirdavsToshev/NumVault/internal/pkg/router"
	"github.com/FirdavsToshev/NumVault/internal/pkg/scheduler"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "5000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()
	repository.InitializeFactory(database.GetDB())

	sweeper := scheduler.NewQuarantineSweeper(database.GetDB())
	sweeper.Start()

	app := fiber.New(fiber.Config{
		AppName: "NumVault",
	})
	app.Use(recover.New(), logger.New(), favicon.New())

	// SWAGGER / OPENAPI
	app.Use(swagger.New(swagger.Config{
		BasePath: "/docs/api/",
		FilePath: "./public/docs/v1/openapi.yml",
		Path:     "v1",
	}))

	// ROUTER
	router.InstallRouter(app)

	return app
}
