package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/users-api/pkg/logger"
)

// AccessLog registra una línea por petición con método, ruta, status, latencia y request id.
// Los 5xx quedan en warn: el detalle con el error ya lo registra writeError en error,
// con el mismo request_id. Las sondas de /health exitosas van a debug.
func AccessLog(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			// El ErrorHandler de Fiber aún no escribió la respuesta.
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		var ev *zerolog.Event
		switch {
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		case c.Path() == "/health":
			ev = log.Debug()
		default:
			ev = log.Info()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", requestID(c)).
			Msg("petición HTTP")
		return err
	}
}

// requestID devuelve el ID que el middleware requestid puso en la respuesta.
func requestID(c *fiber.Ctx) string {
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
