package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/FirdavsToshev/NumVault/app/models"
	"github.com/FirdavsToshev/NumVault/app/repository"
	"github.com/FirdavsToshev/NumVault/internal/pkg/database"
	"github.com/FirdavsToshev/NumVault/internal/pkg/middleware"
)

// newTestApp wires the number and contract routes against an in-memory
// database and returns the app plus seeded reference rows.
func newTestApp(t *testing.T) (*fiber.App, models.Operator, models.Category, models.Subscriber) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// sqlite has no row locks; drop the FOR UPDATE clause so the
	// lifecycle service runs unchanged.
	db.ClauseBuilders["FOR"] = func(c clause.Clause, builder clause.Builder) {}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.AutoMigrate(db)
	database.SetDB(db)
	repository.InitializeFactory(db)

	operator := models.Operator{Name: "Tcell", MNC: "03"}
	category := models.Category{Name: "Gold", Code: "gold", SurchargeType: models.SurchargeTypeFixed}
	subscriber := models.Subscriber{Type: models.SubscriberTypeIndividual, Name: "Ivanov Ivan", ContactPhone: "+992900000001", Address: "Dushanbe"}
	require.NoError(t, db.Create(&operator).Error)
	require.NoError(t, db.Create(&category).Error)
	require.NoError(t, db.Create(&subscriber).Error)

	app := fiber.New()
	requireManager := middleware.RequireManager()
	app.Get("/api/numbers", HandleListNumbers)
	app.Post("/api/numbers", requireManager, HandleCreateNumber)
	app.Put("/api/numbers/:id", requireManager, HandleUpdateNumber)
	app.Delete("/api/numbers/:id", requireManager, HandleDeleteNumber)
	app.Get("/api/numbers/:id/history", requireManager, HandleNumberHistory)
	app.Post("/api/subs/contracts", requireManager, HandleCreateContract)
	app.Delete("/api/subs/contracts/:id", requireManager, HandleTerminateContract)

	return app, operator, category, subscriber
}

func managerToken(t *testing.T) string {
	t.Helper()
	token, err := middleware.TokenService().Generate(1, "admin")
	require.NoError(t, err)
	return token
}

func jsonRequest(t *testing.T, method, target, token string, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(payload, dest))
}

func TestCreateAndListNumbers(t *testing.T) {
	app, operator, category, _ := newTestApp(t)
	token := managerToken(t)

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/api/numbers", token, fiber.Map{
		"number":      "+992900777777",
		"operator_id": operator.ID,
		"category_id": category.ID,
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created models.PhoneNumber
	decodeBody(t, resp, &created)
	assert.Equal(t, models.NumberStatusFree, created.Status)
	require.NotNil(t, created.Operator)
	assert.Equal(t, "Tcell", created.Operator.Name)

	// Duplicate number is rejected.
	resp, err = app.Test(jsonRequest(t, fiber.MethodPost, "/api/numbers", token, fiber.Map{
		"number":      "+992900777777",
		"operator_id": operator.ID,
		"category_id": category.ID,
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, fiber.MethodGet, "/api/numbers?search=900777", "", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var page struct {
		Numbers    []models.PhoneNumber `json:"numbers"`
		Total      int64                `json:"total"`
		Page       int                  `json:"page"`
		TotalPages int                  `json:"total_pages"`
	}
	decodeBody(t, resp, &page)
	assert.EqualValues(t, 1, page.Total)
	require.Len(t, page.Numbers, 1)
	assert.Equal(t, "+992900777777", page.Numbers[0].Number)
}

func TestCreateNumberRequiresAuth(t *testing.T) {
	app, operator, category, _ := newTestApp(t)

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/api/numbers", "", fiber.Map{
		"number":      "+992900777777",
		"operator_id": operator.ID,
		"category_id": category.ID,
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, fiber.MethodPost, "/api/numbers", "garbage-token", fiber.Map{}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestUpdateNumberStatusOverAPI(t *testing.T) {
	app, operator, category, _ := newTestApp(t)
	token := managerToken(t)

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/api/numbers", token, fiber.Map{
		"number":      "+992900111111",
		"operator_id": operator.ID,
		"category_id": category.ID,
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created models.PhoneNumber
	decodeBody(t, resp, &created)

	resp, err = app.Test(jsonRequest(t, fiber.MethodPut, fmt.Sprintf("/api/numbers/%d", created.ID), token, fiber.Map{
		"status": models.NumberStatusBlocked,
		"notes":  "fraud complaint",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.PhoneNumber
	decodeBody(t, resp, &updated)
	assert.Equal(t, models.NumberStatusBlocked, updated.Status)

	// Setting active directly must fail.
	resp, err = app.Test(jsonRequest(t, fiber.MethodPut, fmt.Sprintf("/api/numbers/%d", created.ID), token, fiber.Map{
		"status": models.NumberStatusActive,
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, fiber.MethodGet, fmt.Sprintf("/api/numbers/%d/history", created.ID), token, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var history []models.StatusHistory
	decodeBody(t, resp, &history)
	require.Len(t, history, 2)
	assert.Equal(t, "fraud complaint", history[0].Notes)
}

func TestContractFlowOverAPI(t *testing.T) {
	app, operator, category, subscriber := newTestApp(t)
	token := managerToken(t)

	resp, err := app.Test(jsonRequest(t, fiber.MethodPost, "/api/numbers", token, fiber.Map{
		"number":      "+992900222222",
		"operator_id": operator.ID,
		"category_id": category.ID,
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var number models.PhoneNumber
	decodeBody(t, resp, &number)

	resp, err = app.Test(jsonRequest(t, fiber.MethodPost, "/api/subs/contracts", token, fiber.Map{
		"phone_number_id": number.ID,
		"subscriber_id":   subscriber.ID,
		"start_date":      "2026-01-15",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var contract models.Contract
	decodeBody(t, resp, &contract)
	assert.Equal(t, models.ContractStatusActive, contract.Status)

	// The bound number cannot take a second contract.
	resp, err = app.Test(jsonRequest(t, fiber.MethodPost, "/api/subs/contracts", token, fiber.Map{
		"phone_number_id": number.ID,
		"subscriber_id":   subscriber.ID,
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, fiber.MethodDelete, fmt.Sprintf("/api/subs/contracts/%d", contract.ID), token, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Terminating again is a conflict.
	resp, err = app.Test(jsonRequest(t, fiber.MethodDelete, fmt.Sprintf("/api/subs/contracts/%d", contract.ID), token, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}
