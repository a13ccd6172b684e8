package importer

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"meet-importer/core/errors"
	"meet-importer/core/meetservice"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T, remote *meetservice.Memory) (*fiber.App, *memoryLedger) {
	t.Helper()
	app := fiber.New()
	led := &memoryLedger{}
	svc := newTestService(remote, Options{Ledger: led})
	NewHandler(svc).RegisterRoutes(app)
	return app, led
}

func TestHandleCreateImport(t *testing.T) {
	app, led := setupTestApp(t, meetservice.NewMemory())

	req := httptest.NewRequest("POST", "/imports", strings.NewReader(`{"source":"meet.mdb","dry_run":true}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "dry_run", body.Status)
	assert.Equal(t, "Spring Open", body.Meet)
	assert.Len(t, led.runs, 1)
}

func TestHandleCreateImport_MissingSource(t *testing.T) {
	app, _ := setupTestApp(t, meetservice.NewMemory())

	req := httptest.NewRequest("POST", "/imports", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleCreateImport_Aborted(t *testing.T) {
	remote := meetservice.NewMemory()
	remote.Fail = func(op string) error {
		if op == "create meet" {
			return &errors.RemoteError{Operation: op, Method: "POST", Path: "/meet", StatusCode: 500}
		}
		return nil
	}
	app, _ := setupTestApp(t, remote)

	req := httptest.NewRequest("POST", "/imports", strings.NewReader(`{"source":"meet.mdb"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 422, resp.StatusCode)

	var body Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "failed", body.Status)
	assert.Contains(t, body.Error, "phase meet aborted")
}

func TestHandleListAndGetImports(t *testing.T) {
	app, led := setupTestApp(t, meetservice.NewMemory())

	req := httptest.NewRequest("POST", "/imports", strings.NewReader(`{"source":"meet.mdb"}`))
	req.Header.Set("Content-Type", "application/json")
	_, err := app.Test(req)
	require.NoError(t, err)
	require.Len(t, led.runs, 1)

	resp, err := app.Test(httptest.NewRequest("GET", "/imports?limit=5", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	var runs []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&runs))
	require.Len(t, runs, 1)
	assert.Equal(t, "succeeded", runs[0]["status"])

	resp, err = app.Test(httptest.NewRequest("GET", "/imports/"+led.runs[0].ID, nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/imports/unknown", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestLoader(t *testing.T) {
	feature := NewFeature(newTestService(meetservice.NewMemory(), Options{}))

	assert.Equal(t, "importer", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	err := feature.Load(app)
	assert.NoError(t, err)
}
