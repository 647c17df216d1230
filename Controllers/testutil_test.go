package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"PalletTrack/FiberConfig"
	"PalletTrack/Models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestApp builds the full application against a fresh in-memory
// database. name must be unique per test so databases do not leak across
// tests.
func setupTestApp(t *testing.T, name string) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, Models.Migrate(db))
	require.NoError(t, Models.SeedAdmin(db))

	return FiberConfig.NewApp(db), db
}

// createEmployee inserts an employee directly, bypassing the API.
func createEmployee(t *testing.T, db *gorm.DB, name, pin string) Models.User {
	t.Helper()

	user := Models.User{Name: name, Pin: pin, Role: Models.RoleEmployee, IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// login performs a PIN login and returns the session cookie value.
func login(t *testing.T, app *fiber.App, pin string) string {
	t.Helper()

	resp := request(t, app, http.MethodPost, "/api/auth/login", fmt.Sprintf(`{"pin":%q}`, pin), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, c := range resp.Cookies() {
		if c.Name == "session" && c.Value != "" {
			return c.Value
		}
	}
	t.Fatal("login response did not set a session cookie")
	return ""
}

// request runs one request through the app, optionally with a JSON body and
// a session cookie.
func request(t *testing.T, app *fiber.App, method, path, body, sessionCookie string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionCookie != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: sessionCookie})
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeBody reads a JSON response body into a generic map.
func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
