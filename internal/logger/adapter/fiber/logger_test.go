package fiber_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapter "github.com/gywan/gywan-site/internal/logger/adapter/fiber"
)

// accessLine implements the loggers default json format.
type accessLine struct {
	IP        string `json:"IP"`
	Status    int    `json:"status"`
	URI       string `json:"URI"`
	Method    string `json:"method"`
	Host      string `json:"host"`
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
}

func newApp(cfg adapter.Config) *fiber.App {
	app := fiber.New(fiber.Config{CaseSensitive: true, Immutable: true})

	app.Use(requestid.New(requestid.Config{Generator: func() string { return "rid-1" }}))
	app.Use(adapter.New(cfg))

	app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.SendString("hello test")
	})
	app.Get("/checkalive", func(ctx *fiber.Ctx) error {
		return ctx.SendString("ok")
	})
	app.Get("/boom", func(_ *fiber.Ctx) error {
		return fiber.ErrTeapot
	})

	return app
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		targetPath string
		wantStatus int
		wantURI    string
		wantError  bool
	}{
		{name: "get /", targetPath: "/", wantStatus: fiber.StatusOK, wantURI: "/"},
		{name: "get with params", targetPath: "/?test=123", wantStatus: fiber.StatusOK, wantURI: "/?test=123"},
		{name: "unknown path", targetPath: "/no_path", wantStatus: fiber.StatusNotFound, wantURI: "/no_path", wantError: true},
		{name: "handler error", targetPath: "/boom", wantStatus: fiber.StatusTeapot, wantURI: "/boom", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			app := newApp(adapter.Config{Output: &out})

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, tt.targetPath, nil), -1)
			require.NoError(t, err)

			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get("X-Performance"))

			var line accessLine
			require.NoError(t, json.Unmarshal(out.Bytes(), &line), out.String())

			assert.Equal(t, tt.wantStatus, line.Status)
			assert.Equal(t, tt.wantURI, line.URI)
			assert.Equal(t, fiber.MethodGet, line.Method)
			assert.Equal(t, "example.com", line.Host)
			assert.Equal(t, "rid-1", line.RequestID)
			assert.Equal(t, tt.wantError, line.Error != "")
		})
	}
}

func TestNew_SkipsCheckAlive(t *testing.T) {
	var (
		out bytes.Buffer
		cfg = adapter.Config{Output: &out, CheckAliveURI: "/checkalive"}
	)

	cfg.Config.DisableCheckAlive = true

	app := newApp(cfg)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/checkalive", nil), -1)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, out.String())
}

func TestNew_NoWritersNoOutput(t *testing.T) {
	app := newApp(adapter.Config{})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil), -1)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
