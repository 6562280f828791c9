package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillblog/quill/internal/pkg/usercontext"
)

func newAuthTestApp(loggedIn, isAdmin bool) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(usercontext.KeyFromProtected, loggedIn)
		c.Locals(usercontext.KeyIsAdmin, isAdmin)
		return c.Next()
	})
	app.Get("/protected", RequireAuth, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/admin", RequireAdmin, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		loggedIn   bool
		wantStatus int
	}{
		{name: "anonymous is rejected", loggedIn: false, wantStatus: fiber.StatusUnauthorized},
		{name: "logged-in passes", loggedIn: true, wantStatus: fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newAuthTestApp(tt.loggedIn, false)

			resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		loggedIn   bool
		isAdmin    bool
		wantStatus int
	}{
		{name: "anonymous is rejected", loggedIn: false, isAdmin: false, wantStatus: fiber.StatusUnauthorized},
		{name: "non-admin is forbidden", loggedIn: true, isAdmin: false, wantStatus: fiber.StatusForbidden},
		{name: "admin passes", loggedIn: true, isAdmin: true, wantStatus: fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newAuthTestApp(tt.loggedIn, tt.isAdmin)

			resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
