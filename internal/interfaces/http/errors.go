package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/users-api/internal/application/dto"
	"github.com/jhoicas/users-api/internal/domain"
	"github.com/jhoicas/users-api/pkg/logger"
)

// writeError traduce errores de dominio a status y cuerpo HTTP. Los 5xx se registran.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: ve.Message})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrMissingSigningSecret):
		log.Error().Err(err).Str("path", c.Path()).Str("request_id", requestID(c)).Msg("JWT_SECRET no configurado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "CONFIGURATION", Message: "server misconfigured"})
	default:
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Str("request_id", requestID(c)).Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "internal server error"})
	}
}

// ErrorHandler reemplaza el manejador por defecto de Fiber para responder siempre con dto.ErrorResponse.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: codeForStatus(fe.Code), Message: fe.Message})
		}
		return writeError(c, log, err)
	}
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	default:
		if status >= fiber.StatusInternalServerError {
			return "INTERNAL"
		}
		return "BAD_REQUEST"
	}
}
