package middleware

import (
	"strings"

	"subasta/internal/permissions"
	"subasta/internal/services"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// principalKey is the fiber Locals key under which the authenticated
// principal is stored.
const principalKey = "principal"

// AuthRequired is a Fiber middleware that checks for a valid JWT token and
// stores the authenticated principal for subsequent handlers.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Warnf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		principal := permissions.Principal{}
		if id, ok := claims["user_id"].(string); ok {
			principal.ID = id
		}
		if username, ok := claims["username"].(string); ok {
			principal.Username = username
		}
		if isAdmin, ok := claims["is_admin"].(bool); ok {
			principal.IsAdmin = isAdmin
		}
		c.Locals(principalKey, principal)

		return c.Next()
	}
}

// PrincipalFromCtx returns the principal stored by AuthRequired, if any.
func PrincipalFromCtx(c *fiber.Ctx) (permissions.Principal, bool) {
	principal, ok := c.Locals(principalKey).(permissions.Principal)
	return principal, ok
}
