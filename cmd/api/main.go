package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	_ "github.com/jhoicas/users-api/docs"
	"github.com/jhoicas/users-api/internal/application/account"
	"github.com/jhoicas/users-api/internal/domain/repository"
	infracrypto "github.com/jhoicas/users-api/internal/infrastructure/crypto"
	"github.com/jhoicas/users-api/internal/infrastructure/memory"
	"github.com/jhoicas/users-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/users-api/internal/interfaces/http"
	"github.com/jhoicas/users-api/pkg/config"
	"github.com/jhoicas/users-api/pkg/jwt"
	"github.com/jhoicas/users-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// @title        Users API
// @version      1.0
// @description  Registro, sesión y consulta de cuentas de usuario.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: POST /users/session fallará hasta configurarlo")
	}

	ctx := context.Background()
	var (
		userRepo repository.UserRepository
		db       httpRouter.Pinger
	)
	switch cfg.DB.Driver {
	case "memory":
		log.Warn().Msg("STORE_DRIVER=memory: los usuarios se pierden al reiniciar")
		userRepo = memory.NewUserRepository()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		if cfg.DB.AutoMigrate {
			applied, err := postgres.Migrate(ctx, pool)
			if err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Strs("migrations", applied).Msg("migraciones aplicadas")
		}
		userRepo = postgres.NewUserRepository(pool)
		db = pool
	}

	hasher := infracrypto.NewBcryptHasher(cfg.Password.BcryptCost)
	tokens := jwt.NewIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	accountUC := account.NewAccountUseCase(userRepo, hasher, tokens)

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		AppName:   cfg.App.Name,
		AccountUC: accountUC,
		Tokens:    tokens,
		DB:        db,
		Logger:    log,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Users API",
		}))
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
