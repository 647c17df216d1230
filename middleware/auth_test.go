package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"PalletTrack/Models"
	"PalletTrack/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// issueCookie runs IssueSessionCookie through a throwaway route and returns
// the cookie value it set.
func issueCookie(t *testing.T, user Models.User) string {
	t.Helper()

	app := fiber.New()
	app.Get("/issue", func(c *fiber.Ctx) error {
		return middleware.IssueSessionCookie(c, user)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/issue", nil))
	require.NoError(t, err)
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookie {
			return c.Value
		}
	}
	t.Fatal("no session cookie issued")
	return ""
}

func guardedApp(role string) *fiber.App {
	app := fiber.New()
	app.Get("/guarded", middleware.Verify(role), func(c *fiber.Ctx) error {
		return c.JSON(middleware.SessionFrom(c))
	})
	return app
}

func get(t *testing.T, app *fiber.App, cookie string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: cookie})
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestSessionRoundTrip(t *testing.T) {
	user := Models.User{ID: 7, Name: "Alex", Role: Models.RoleEmployee, IsActive: true}
	cookie := issueCookie(t, user)

	app := fiber.New()
	var got Models.Session
	app.Get("/decode", func(c *fiber.Ctx) error {
		got = middleware.DecodeSession(c)
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/decode", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: cookie})
	_, err := app.Test(req)
	require.NoError(t, err)

	assert.True(t, got.IsLoggedIn)
	assert.Equal(t, uint(7), got.UserID)
	assert.Equal(t, "Alex", got.UserName)
	assert.Equal(t, Models.RoleEmployee, got.Role)
}

func TestVerifyRejectsMissingAndTamperedCookies(t *testing.T) {
	app := guardedApp("")

	resp := get(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	cookie := issueCookie(t, Models.User{ID: 1, Name: "Admin", Role: Models.RoleAdmin})
	resp = get(t, app, cookie+"tampered")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestVerifyRoleGate(t *testing.T) {
	adminOnly := guardedApp(Models.RoleAdmin)

	employee := issueCookie(t, Models.User{ID: 2, Name: "Alex", Role: Models.RoleEmployee})
	admin := issueCookie(t, Models.User{ID: 1, Name: "Admin", Role: Models.RoleAdmin})

	// Wrong role answers 401, indistinguishable from no session.
	resp := get(t, adminOnly, employee)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = get(t, adminOnly, admin)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	anyRole := guardedApp("")
	resp = get(t, anyRole, employee)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
