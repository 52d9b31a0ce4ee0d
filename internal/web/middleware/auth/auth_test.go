package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gywan/gywan-site/internal/web/handler/login"
	"github.com/gywan/gywan-site/internal/web/session"
)

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(Middleware)

	ok := func(c *fiber.Ctx) error {
		if u, found := CurrentUser(c); found {
			return c.SendString("hello " + u.Username)
		}

		return c.SendString("hello guest")
	}

	app.Get("/", ok)
	app.Get(login.Path, ok)
	app.Get("/admin", ok)
	app.Get("/admin/stats", ok)
	app.Get("/administrators", ok)

	return app
}

func do(t *testing.T, app *fiber.App, path, cookie string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: cookie})
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func TestMiddleware_Anonymous(t *testing.T) {
	session.Init(nil, time.Hour)

	app := newApp()

	tests := []struct {
		path       string
		wantStatus int
		wantLoc    string
	}{
		{path: "/", wantStatus: fiber.StatusOK},
		{path: "/administrators", wantStatus: fiber.StatusOK},
		{path: login.Path, wantStatus: fiber.StatusOK},
		{path: "/admin", wantStatus: fiber.StatusFound, wantLoc: login.Path},
		{path: "/admin/stats", wantStatus: fiber.StatusFound, wantLoc: login.Path},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := do(t, app, tt.path, "")
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantLoc, resp.Header.Get("Location"))
		})
	}

	resp := do(t, app, "/admin", "forged")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
}

func TestMiddleware_LoggedIn(t *testing.T) {
	session.Init(nil, time.Hour)

	id, err := session.GenerateSessionID()
	require.NoError(t, err)
	require.NoError(t, (&session.Data{User: session.User{ID: 1, Username: "admin"}}).Write(id, time.Minute))

	app := newApp()

	resp := do(t, app, "/admin", id)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = do(t, app, login.Path, id)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, login.SuccessPath, resp.Header.Get("Location"))
}
