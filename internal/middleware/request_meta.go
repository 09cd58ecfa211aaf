package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const clientIPKey = "clientIP"

// RequestMeta resolves the client address once per request, honouring the
// first X-Forwarded-For hop set by the reverse proxy
func RequestMeta() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.IP()
		if fwd := c.Get(fiber.HeaderXForwardedFor); fwd != "" {
			first, _, _ := strings.Cut(fwd, ",")
			if first = strings.TrimSpace(first); first != "" {
				ip = first
			}
		}

		c.Locals(clientIPKey, ip)

		return c.Next()
	}
}

// ClientIP returns the address resolved by RequestMeta, or the socket address
func ClientIP(c *fiber.Ctx) string {
	if ip, ok := c.Locals(clientIPKey).(string); ok {
		return ip
	}
	return c.IP()
}
