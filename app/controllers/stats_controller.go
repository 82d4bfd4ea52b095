package controllers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/FirdavsToshev/NumVault/app/models"
	"github.com/FirdavsToshev/NumVault/app/repository"
	"github.com/FirdavsToshev/NumVault/internal/pkg/cache"
)

const statsCacheKey = "dashboard:stats"
const statsCacheTTL = 30 * time.Second

type dashboardStats struct {
	TotalNumbers      int64 `json:"total_numbers"`
	FreeNumbers       int64 `json:"free_numbers"`
	ActiveNumbers     int64 `json:"active_numbers"`
	ReservedNumbers   int64 `json:"reserved_numbers"`
	BlockedNumbers    int64 `json:"blocked_numbers"`
	QuarantineNumbers int64 `json:"quarantine_numbers"`
	TotalSubscribers  int64 `json:"total_subscribers"`
	OperatorsCount    int64 `json:"operators_count"`
}

// HandleGetStats returns dashboard counters. Results are cached briefly so
// the dashboard poll does not hammer the database.
func HandleGetStats(c *fiber.Ctx) error {
	if cached, err := cache.Get(statsCacheKey); err == nil && cached != "" {
		var stats dashboardStats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return c.JSON(stats)
		}
	}

	repos := repository.GetGlobalRepositories()
	var stats dashboardStats
	var err error

	if stats.TotalNumbers, err = repos.Number.Count(); err != nil {
		return serviceError(c, err)
	}
	counters := []struct {
		status string
		dest   *int64
	}{
		{models.NumberStatusFree, &stats.FreeNumbers},
		{models.NumberStatusActive, &stats.ActiveNumbers},
		{models.NumberStatusReserved, &stats.ReservedNumbers},
		{models.NumberStatusBlocked, &stats.BlockedNumbers},
		{models.NumberStatusQuarantine, &stats.QuarantineNumbers},
	}
	for _, counter := range counters {
		if *counter.dest, err = repos.Number.CountByStatus(counter.status); err != nil {
			return serviceError(c, err)
		}
	}
	if stats.TotalSubscribers, err = repos.Subscriber.Count(); err != nil {
		return serviceError(c, err)
	}
	if stats.OperatorsCount, err = repos.Operator.Count(); err != nil {
		return serviceError(c, err)
	}

	if payload, err := json.Marshal(stats); err == nil {
		// Best effort, the dashboard works without the cache.
		_ = cache.Set(statsCacheKey, payload, statsCacheTTL)
	}

	return c.JSON(stats)
}
