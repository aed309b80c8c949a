package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"envanter-backend/internal/auth"
	"envanter-backend/internal/config"
	"envanter-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "cok-gizli-test-anahtari-en-az-32-karakter"

func setupApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()
	cfg := &config.Config{JWTSecret: testSecret}
	svc := NewService(db)

	app := fiber.New()
	api := app.Group("/api", auth.JWTMiddleware(cfg))
	api.Get("/orders/:id", GetOrderHandler(svc))
	api.Put("/orders/:id/status", UpdateStatusHandler(svc))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestStatusEndpointPolicy(t *testing.T) {
	db := newTestDB(t)
	app := setupApp(t, db)
	svc := NewService(db)

	owner := seedUser(t, db, "ali", models.RoleUser)
	other := seedUser(t, db, "veli", models.RoleUser)
	admin := seedUser(t, db, "patron", models.RoleAdmin)
	item := seedItem(t, db, "A", 10)

	order, err := svc.Create(context.Background(), owner.ID, []Line{{StockID: item.ID, Quantity: 2}})
	require.NoError(t, err)

	ownerToken, err := auth.GenerateToken(testSecret, owner)
	require.NoError(t, err)
	otherToken, err := auth.GenerateToken(testSecret, other)
	require.NoError(t, err)
	adminToken, err := auth.GenerateToken(testSecret, admin)
	require.NoError(t, err)

	path := fmt.Sprintf("/api/orders/%d/status", order.ID)

	// token olmadan erişim yok
	resp := doJSON(t, app, http.MethodPut, path, "", fiber.Map{"new_status": 5})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// başka kullanıcı iptal isteyemez
	resp = doJSON(t, app, http.MethodPut, path, otherToken, fiber.Map{"new_status": 5})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// sahibi ilerletemez, sadece iptal edebilir
	resp = doJSON(t, app, http.MethodPut, path, ownerToken, fiber.Map{"new_status": 2})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// başka kullanıcı siparişi göremez
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/orders/%d", order.ID), otherToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// admin ilerletebilir
	resp = doJSON(t, app, http.MethodPut, path, adminToken, fiber.Map{"new_status": 2})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Order OrderResponse `json:"order"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, uint(2), payload.Order.Status)

	// sahibi Beklemede olmayan siparişi artık iptal edemez
	resp = doJSON(t, app, http.MethodPut, path, ownerToken, fiber.Map{"new_status": 5})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
