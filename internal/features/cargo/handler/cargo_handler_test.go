package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"privacy-cargo-tracking/internal/core/cache"
	"privacy-cargo-tracking/internal/features/cargo/adapters"
	"privacy-cargo-tracking/internal/features/cargo/service"
	"privacy-cargo-tracking/internal/fhe"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApp wires the handler against a real service backed by
// miniredis, mirroring how main assembles the application.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	engine, err := fhe.NewEngine(store, 12)
	require.NoError(t, err)

	repo := adapters.NewRedisShipmentRepository(store)
	svc := service.NewCargoService(repo, engine, nil)
	h := NewCargoHandler(svc)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("requestid", "test-ray-id")
		return c.Next()
	})

	app.Post("/cargo", h.CreateCargo)
	app.Get("/cargo", h.ListOwned)
	app.Put("/cargo/:id/status", h.UpdateStatus)
	app.Put("/cargo/:id/privacy", h.UpdatePrivacy)
	app.Post("/cargo/:id/viewer", h.AuthorizeViewer)
	app.Get("/cargo/:id/encrypted/:field", h.GetEncryptedField)
	app.Get("/cargo/:id/:field", h.GetField)
	app.Get("/public/cargo/:id/:field", h.GetPublicField)

	return app
}

func request(t *testing.T, app *fiber.App, method, url, caller, body string) (int, map[string]interface{}) {
	t.Helper()

	var req = httptest.NewRequest(method, url, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if caller != "" {
		req.Header.Set(CallerHeader, caller)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&parsed)
	return resp.StatusCode, parsed
}

func createCargo(t *testing.T, app *fiber.App, caller, id string) {
	t.Helper()
	status, _ := request(t, app, "POST", "/cargo", caller,
		`{"id":"`+id+`","destination":"Paris","priority":2,"fragile":false,"value":500}`)
	require.Equal(t, fiber.StatusCreated, status)
}

func TestCargoHandler_Create(t *testing.T) {
	app := newTestApp(t)

	status, body := request(t, app, "POST", "/cargo", "0xAlice",
		`{"id":"C1","destination":"Paris","priority":2,"fragile":false,"value":500}`)
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "C1", body["id"])
	assert.Equal(t, "0xAlice", body["owner"])
	assert.Equal(t, "Created", body["status"])
	assert.NotEmpty(t, body["enc_priority"])
}

func TestCargoHandler_Create_MissingCaller(t *testing.T) {
	app := newTestApp(t)

	status, body := request(t, app, "POST", "/cargo", "",
		`{"id":"C1","destination":"Paris","priority":2,"fragile":false,"value":500}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["message"], "wallet address header is required")
	assert.Equal(t, "test-ray-id", body["ray_id"])
}

func TestCargoHandler_Create_Duplicate(t *testing.T) {
	app := newTestApp(t)
	createCargo(t, app, "0xAlice", "C1")

	status, _ := request(t, app, "POST", "/cargo", "0xBob",
		`{"id":"C1","destination":"Berlin","priority":1,"fragile":true,"value":10}`)
	assert.Equal(t, fiber.StatusConflict, status)
}

func TestCargoHandler_Create_InvalidPriority(t *testing.T) {
	app := newTestApp(t)

	status, _ := request(t, app, "POST", "/cargo", "0xAlice",
		`{"id":"C1","destination":"Paris","priority":7,"fragile":false,"value":500}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestCargoHandler_UpdateStatus(t *testing.T) {
	app := newTestApp(t)
	createCargo(t, app, "0xAlice", "C1")

	status, _ := request(t, app, "PUT", "/cargo/C1/status", "0xAlice",
		`{"status":"InTransit","location":"Lyon"}`)
	assert.Equal(t, fiber.StatusOK, status)

	code, body := request(t, app, "GET", "/cargo/C1/location", "0xAlice", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "Lyon", body["value"])
}

func TestCargoHandler_UpdateStatus_NonOwner(t *testing.T) {
	app := newTestApp(t)
	createCargo(t, app, "0xAlice", "C1")

	status, _ := request(t, app, "PUT", "/cargo/C1/status", "0xBob",
		`{"status":"Hijacked","location":"Nowhere"}`)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestCargoHandler_UpdateStatus_NotFound(t *testing.T) {
	app := newTestApp(t)

	status, _ := request(t, app, "PUT", "/cargo/ghost/status", "0xAlice",
		`{"status":"InTransit","location":"Lyon"}`)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestCargoHandler_GetField_Gates(t *testing.T) {
	app := newTestApp(t)
	createCargo(t, app, "0xAlice", "C1")

	// Owner reads fine.
	code, body := request(t, app, "GET", "/cargo/C1/status", "0xAlice", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "Created", body["value"])

	// Stranger is locked out of a private record.
	code, _ = request(t, app, "GET", "/cargo/C1/status", "0xBob", "")
	assert.Equal(t, fiber.StatusForbidden, code)

	// Unknown field names are rejected.
	code, _ = request(t, app, "GET", "/cargo/C1/secret", "0xAlice", "")
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestCargoHandler_PublicRoute(t *testing.T) {
	app := newTestApp(t)
	createCargo(t, app, "0xAlice", "C1")

	// Private record: public route fails for everyone.
	code, _ := request(t, app, "GET", "/public/cargo/C1/status", "", "")
	assert.Equal(t, fiber.StatusForbidden, code)

	status, _ := request(t, app, "PUT", "/cargo/C1/privacy", "0xAlice",
		`{"is_public":true,"viewer":""}`)
	require.Equal(t, fiber.StatusOK, status)

	// Now readable with no wallet header at all.
	code, body := request(t, app, "GET", "/public/cargo/C1/status", "", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "Created", body["value"])

	// Encrypted handles stay guarded even on public records.
	code, _ = request(t, app, "GET", "/cargo/C1/encrypted/priority", "0xBob", "")
	assert.Equal(t, fiber.StatusForbidden, code)
}

func TestCargoHandler_EncryptedField_Viewer(t *testing.T) {
	app := newTestApp(t)
	createCargo(t, app, "0xAlice", "C1")

	code, _ := request(t, app, "GET", "/cargo/C1/encrypted/priority", "0xCarol", "")
	assert.Equal(t, fiber.StatusForbidden, code)

	status, _ := request(t, app, "POST", "/cargo/C1/viewer", "0xAlice", `{"viewer":"0xCarol"}`)
	require.Equal(t, fiber.StatusOK, status)

	code, body := request(t, app, "GET", "/cargo/C1/encrypted/priority", "0xCarol", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.NotEmpty(t, body["value"])
}

func TestCargoHandler_AuthorizeViewer_EmptyViewer(t *testing.T) {
	app := newTestApp(t)
	createCargo(t, app, "0xAlice", "C1")

	status, _ := request(t, app, "POST", "/cargo/C1/viewer", "0xAlice", `{"viewer":""}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestCargoHandler_ListOwned(t *testing.T) {
	app := newTestApp(t)
	createCargo(t, app, "0xAlice", "C1")
	createCargo(t, app, "0xAlice", "C2")

	code, body := request(t, app, "GET", "/cargo", "0xAlice", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, []interface{}{"C1", "C2"}, body["ids"])

	code, body = request(t, app, "GET", "/cargo", "0xBob", "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Empty(t, body["ids"])
}
