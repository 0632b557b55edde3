package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/users-api/internal/application/account"
	"github.com/jhoicas/users-api/pkg/jwt"
	"github.com/jhoicas/users-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName   string
	AccountUC *account.AccountUseCase
	Tokens    *jwt.Issuer
	DB        Pinger
	Logger    *logger.Logger
}

// NewApp crea la aplicación Fiber con los middlewares comunes y registra las rutas.
func NewApp(deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		UnescapePath: true,
		ErrorHandler: ErrorHandler(deps.Logger),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(AccessLog(deps.Logger))

	app.Get("/health", HealthHandler(deps.AppName, deps.DB))
	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app fiber.Router, deps RouterDeps) {
	users := app.Group("/users")
	userHandler := NewUserHandler(deps.AccountUC, deps.Logger)

	users.Post("/", userHandler.Create)
	users.Post("/session", userHandler.Session)
	users.Get("/", userHandler.List)
	// /me antes de /:id para que no lo capture el parámetro.
	users.Get("/me", AuthMiddleware(deps.Tokens), userHandler.Me)
	users.Get("/:id", userHandler.GetByID)
}
