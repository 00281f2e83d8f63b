package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/carnaval-microservice/internal/delivery/http/handler"
	"github.com/carnaval-microservice/internal/domain"
	"github.com/carnaval-microservice/internal/repository/memory"
	"github.com/carnaval-microservice/internal/usecase"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	logger := zap.NewNop()
	venueUC := usecase.NewVenueUseCase(
		memory.NewVenueRepository(logger),
		nil,
		logger,
		domain.DefaultThresholds(),
	)
	h := handler.NewVenueHandler(venueUC, logger)

	app := fiber.New()
	aforo := app.Group("/api/v1/aforo")
	aforo.Post("/venues", h.CreateVenue)
	aforo.Get("/venues", h.GetVenues)
	aforo.Get("/venues/:id", h.GetVenueDetails)
	aforo.Put("/venues/:id/occupancy", h.UpdateOccupancy)
	aforo.Post("/venues/:id/entries", h.RegisterEntry)
	aforo.Post("/venues/:id/exits", h.RegisterExit)
	aforo.Get("/venues/:id/alerts", h.GetActiveAlerts)
	aforo.Get("/venues/:id/state", h.GetOccupancyState)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Data
}

func TestVenueHandler_CreateVenue(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/v1/aforo/venues", map[string]interface{}{
		"name":         "Plaza Mayor",
		"location":     "Centro Histórico",
		"max_capacity": 500,
		"category":     "plaza",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data := decodeData(t, resp)
	assert.Equal(t, "Plaza Mayor", data["name"])
	assert.Equal(t, float64(500), data["max_capacity"])
	assert.Equal(t, "active", data["status"])
	assert.NotEmpty(t, data["id"])
}

func TestVenueHandler_CreateVenueValidation(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing name", map[string]interface{}{
			"location": "Centro Histórico", "max_capacity": 500, "category": "plaza",
		}},
		{"zero capacity", map[string]interface{}{
			"name": "Plaza Mayor", "location": "Centro Histórico", "max_capacity": 0, "category": "plaza",
		}},
		{"unknown category", map[string]interface{}{
			"name": "Plaza Mayor", "location": "Centro Histórico", "max_capacity": 500, "category": "discoteca",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, "POST", "/api/v1/aforo/venues", tt.body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestVenueHandler_EntryFlowWithAlert(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/v1/aforo/venues", map[string]interface{}{
		"name":         "Auditorio Sur",
		"location":     "Barrio del Río",
		"max_capacity": 100,
		"category":     "auditorio",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	venueID := decodeData(t, resp)["id"].(string)

	resp = doJSON(t, app, "POST", fmt.Sprintf("/api/v1/aforo/venues/%s/entries", venueID),
		map[string]interface{}{"count": 95})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := decodeData(t, resp)
	assert.Equal(t, float64(95), data["current"])
	assert.Equal(t, float64(95), data["percentage"])

	// The critical entry must have raised one alert
	resp = doJSON(t, app, "GET", fmt.Sprintf("/api/v1/aforo/venues/%s/alerts", venueID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data []map[string]interface{} `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "critical-capacity", envelope.Data[0]["kind"])
	assert.Equal(t, 1, envelope.Meta.Total)

	// State endpoint classifies the same percentage
	resp = doJSON(t, app, "GET", fmt.Sprintf("/api/v1/aforo/venues/%s/state", venueID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "critical", decodeData(t, resp)["state"])
}

func TestVenueHandler_EntryOverCapacity(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/v1/aforo/venues", map[string]interface{}{
		"name":         "Parque Chico",
		"location":     "Camino Verde 12",
		"max_capacity": 10,
		"category":     "parque",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	venueID := decodeData(t, resp)["id"].(string)

	resp = doJSON(t, app, "POST", fmt.Sprintf("/api/v1/aforo/venues/%s/entries", venueID),
		map[string]interface{}{"count": 11})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "CAPACITY_EXCEEDED", envelope.Error.Code)
}

func TestVenueHandler_InvalidVenueID(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, "GET", "/api/v1/aforo/venues/not-a-uuid", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestVenueHandler_VenueNotFound(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, "GET", "/api/v1/aforo/venues/00000000-0000-0000-0000-000000000001", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
