package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/users-api/internal/application/dto"
	"github.com/jhoicas/users-api/pkg/jwt"
)

// LocalUserID clave en c.Locals con el subject del token.
const LocalUserID = "user_id"

// tokenParser es el contrato mínimo que necesita el middleware; lo implementa *jwt.Issuer.
type tokenParser interface {
	Parse(token string) (*jwt.Claims, error)
}

// AuthMiddleware valida el Bearer Token JWT y guarda el subject en c.Locals.
func AuthMiddleware(tokens tokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "authorization header required"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "format: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "empty token"})
		}
		claims, err := tokens.Parse(tokenString)
		if errors.Is(err, jwt.ErrMissingSecret) {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "CONFIGURATION", Message: "server misconfigured"})
		}
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "invalid or expired token"})
		}
		c.Locals(LocalUserID, claims.Subject)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}
