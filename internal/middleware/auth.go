package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/forgeline/leaddesk/internal/models"
	"github.com/forgeline/leaddesk/internal/types"
	"github.com/gofiber/fiber/v2"
	"github.com/powerman/structlog"
)

var log = structlog.New(structlog.KeyUnit, "middleware")

const userKey = "user"

// Authenticator resolves a bearer token to an active admin user
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.AdminUser, error)
}

// AuthAdmin validates the bearer token and stores the admin user in context
func AuthAdmin(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := BearerToken(c)
		if token == "" {
			return types.Unauthorized("No token, authorization denied", "auth.token.missing")
		}

		user, err := auth.Authenticate(c.UserContext(), token)
		if err != nil {
			var ce *types.CustomError
			if errors.As(err, &ce) {
				return ce
			}
			log.Debug("admin token rejected", "ip", ClientIP(c), "err", err)
			return types.Unauthorized("Token is not valid", "auth.token.invalid")
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

// BearerToken reads the token from the Authorization header or x-auth-token
func BearerToken(c *fiber.Ctx) string {
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(c.Get("x-auth-token"))
}

// CurrentUser returns the admin user stored by AuthAdmin
func CurrentUser(c *fiber.Ctx) *models.AdminUser {
	user, _ := c.Locals(userKey).(*models.AdminUser)
	return user
}
