package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMetrics_Snapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/api/restaurants", http.MethodGet, 200, 10*time.Millisecond)
	m.RecordRequest("/api/restaurants", http.MethodGet, 200, 30*time.Millisecond)
	m.RecordRequest("/api/restaurants", http.MethodGet, 401, 0)
	m.RecordError("/api/restaurants", http.MethodGet, "UNAUTHENTICATED")

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/api/restaurants|GET|200"])
	assert.Equal(t, int64(1), snap.Requests["/api/restaurants|GET|401"])
	assert.Equal(t, int64(1), snap.Errors["/api/restaurants|GET|UNAUTHENTICATED"])

	route := snap.Routes["GET /api/restaurants"]
	assert.Equal(t, int64(3), route.Requests)
	assert.InDelta(t, 40.0/3, route.AvgLatency, 0.01)
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", http.MethodGet, 200, time.Millisecond)
	m.RecordError("/", http.MethodGet, "X")
	assert.Empty(t, m.Snapshot().Requests)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	metrics := NewMetrics()

	app := fiber.New()
	app.Use(RequestLogger(zap.New(core), metrics))
	app.Get("/api/restaurants/:id", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNotFound) })

	req := httptest.NewRequest(http.MethodGet, "/api/restaurants/42", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "secret-token"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/api/restaurants/42", fields["path"])
	assert.NotContains(t, fields, "cookie")

	assert.Equal(t, int64(1), metrics.Snapshot().Requests["/api/restaurants/:id|GET|404"])
}
