package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/users-api/internal/application/account"
	"github.com/jhoicas/users-api/internal/application/dto"
	"github.com/jhoicas/users-api/pkg/logger"
)

// UserHandler maneja registro, sesión y consulta de usuarios.
type UserHandler struct {
	uc  *account.AccountUseCase
	log *logger.Logger
}

// NewUserHandler construye el handler inyectando el caso de uso.
func NewUserHandler(uc *account.AccountUseCase, log *logger.Logger) *UserHandler {
	return &UserHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar usuario
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "name, email, password"
// @Success      201   {object}  dto.RegisterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Session godoc
// @Summary      Iniciar sesión
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SessionRequest  true  "email, password"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /users/session [post]
func (h *UserHandler) Session(c *fiber.Ctx) error {
	var in dto.SessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Router       /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListUsers(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener usuario por ID
// @Tags         users
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetUserByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Usuario de la sesión actual
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.GetUserByID(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
