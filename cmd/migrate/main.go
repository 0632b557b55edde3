package main

import (
	"context"
	"time"

	"github.com/jhoicas/users-api/internal/infrastructure/postgres"
	"github.com/jhoicas/users-api/pkg/config"
	"github.com/jhoicas/users-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}
	log.Info().Strs("migrations", applied).Msg("migraciones aplicadas")
}
