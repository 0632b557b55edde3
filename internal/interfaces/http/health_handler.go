package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger lo implementa *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responde el estado del servicio y de la base de datos.
func HealthHandler(service string, db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "service": service})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": service})
	}
}
