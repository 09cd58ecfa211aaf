package middleware

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/forgeline/leaddesk/internal/models"
	"github.com/forgeline/leaddesk/internal/types"
	"github.com/gofiber/fiber/v2"
)

type tokenAuth map[string]*models.AdminUser

func (a tokenAuth) Authenticate(ctx context.Context, token string) (*models.AdminUser, error) {
	if user, ok := a[token]; ok {
		return user, nil
	}
	return nil, errors.New("invalid token")
}

func newAuthApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var ce *types.CustomError
			if errors.As(err, &ce) {
				return c.Status(ce.Code).SendString(ce.Type)
			}
			return c.SendStatus(fiber.StatusInternalServerError)
		},
	})
	auth := tokenAuth{"good": {ID: 1, Username: "ops"}}
	app.Get("/me", AuthAdmin(auth), func(c *fiber.Ctx) error {
		return c.SendString(CurrentUser(c).Username)
	})
	return app
}

func TestAuthAdmin(t *testing.T) {
	app := newAuthApp()

	tests := []struct {
		name     string
		header   string
		value    string
		wantCode int
		wantBody string
	}{
		{name: "bearer", header: "Authorization", value: "Bearer good", wantCode: 200, wantBody: "ops"},
		{name: "bearer lower case", header: "Authorization", value: "bearer good", wantCode: 200, wantBody: "ops"},
		{name: "x-auth-token", header: "x-auth-token", value: "good", wantCode: 200, wantBody: "ops"},
		{name: "missing", wantCode: 401, wantBody: "auth.token.missing"},
		{name: "wrong scheme", header: "Authorization", value: "Basic good", wantCode: 401, wantBody: "auth.token.missing"},
		{name: "invalid", header: "Authorization", value: "Bearer bad", wantCode: 401, wantBody: "auth.token.invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("Failed to execute request: %v", err)
			}
			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != tt.wantCode || string(body) != tt.wantBody {
				t.Errorf("Expected %d %q, got %d %q", tt.wantCode, tt.wantBody, resp.StatusCode, body)
			}
		})
	}
}

func TestRequestMeta(t *testing.T) {
	app := fiber.New()
	app.Use(RequestMeta())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(ClientIP(c))
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "203.0.113.7" {
		t.Errorf("Expected forwarded address, got %q", body)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	if len(body) == 0 || string(body) == "203.0.113.7" {
		t.Errorf("Expected socket address, got %q", body)
	}
}
