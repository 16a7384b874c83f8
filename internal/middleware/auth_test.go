package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/vijay0896/LoanApp/internal/auth"
)

var secret = []byte("mw-secret")

func newApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", JWTAuth(secret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userID": UserID(c)})
	})
	return app
}

func request(t *testing.T, app *fiber.App, authHeader string) int {
	t.Helper()
	req := httptest.NewRequest("GET", "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestJWTAuth_ValidToken(t *testing.T) {
	t.Parallel()

	tok, err := auth.GenerateToken("u1", "u1@x.com", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	if code := request(t, newApp(), "Bearer "+tok); code != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
}

func TestJWTAuth_Rejections(t *testing.T) {
	t.Parallel()

	expired, err := auth.GenerateToken("u1", "u1@x.com", secret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	wrongKey, err := auth.GenerateToken("u1", "u1@x.com", []byte("other"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	app := newApp()
	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired", "Bearer " + expired},
		{"wrong key", "Bearer " + wrongKey},
	}
	for _, tc := range cases {
		if code := request(t, app, tc.header); code != fiber.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", tc.name, code)
		}
	}
}
