package router

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/redis"

	"github.com/FirdavsToshev/NumVault/app/controllers"
	"github.com/FirdavsToshev/NumVault/internal/pkg/env"
	"github.com/FirdavsToshev/NumVault/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        100,
		Expiration: 15 * time.Minute,
		Storage:    limiterStorage(),
	}))

	requireManager := middleware.RequireManager()

	api.Post("/auth/login", controllers.HandleLogin)
	api.Get("/stats", controllers.HandleGetStats)

	api.Get("/operators", controllers.HandleListOperators)
	api.Post("/operators", requireManager, controllers.HandleCreateOperator)
	api.Put("/operators/:id", requireManager, controllers.HandleUpdateOperator)
	api.Delete("/operators/:id", requireManager, controllers.HandleDeleteOperator)

	api.Get("/categories", controllers.HandleListCategories)
	api.Post("/categories", requireManager, controllers.HandleCreateCategory)
	api.Put("/categories/:id", requireManager, controllers.HandleUpdateCategory)
	api.Delete("/categories/:id", requireManager, controllers.HandleDeleteCategory)

	numbers := api.Group("/numbers")
	numbers.Get("/", controllers.HandleListNumbers)
	numbers.Post("/", requireManager, controllers.HandleCreateNumber)
	numbers.Post("/bulk", requireManager, controllers.HandleBulkCreateNumbers)
	numbers.Put("/:id", requireManager, controllers.HandleUpdateNumber)
	numbers.Delete("/:id", requireManager, controllers.HandleDeleteNumber)
	numbers.Get("/:id/history", requireManager, controllers.HandleNumberHistory)

	subs := api.Group("/subs")
	subs.Get("/subscribers", controllers.HandleListSubscribers)
	subs.Post("/subscribers", requireManager, controllers.HandleCreateSubscriber)
	subs.Put("/subscribers/:id", requireManager, controllers.HandleUpdateSubscriber)
	subs.Delete("/subscribers/:id", requireManager, controllers.HandleDeleteSubscriber)

	subs.Get("/contracts", controllers.HandleListContracts)
	subs.Post("/contracts", requireManager, controllers.HandleCreateContract)
	subs.Delete("/contracts/:id", requireManager, controllers.HandleTerminateContract)
	subs.Delete("/contracts/hard/:id", requireManager, controllers.HandleDeleteContract)

	settings := api.Group("/settings", requireManager)
	settings.Get("/", controllers.HandleGetSettings)
	settings.Post("/", controllers.HandleUpdateSettings)
}

// limiterStorage backs the rate limiter with redis so the counters survive
// restarts and are shared between instances. Database 1 keeps them apart
// from the stats cache.
func limiterStorage() fiber.Storage {
	port, err := strconv.Atoi(env.GetEnv("CACHE_PORT", "6379"))
	if err != nil {
		port = 6379
	}
	return redis.New(redis.Config{
		Host:     env.GetEnv("CACHE_HOST", "localhost"),
		Port:     port,
		Password: env.GetEnv("CACHE_PASSWORD", ""),
		Database: 1,
	})
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
