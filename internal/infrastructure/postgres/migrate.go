package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate aplica en orden los scripts de migrations/. Los scripts son idempotentes
// (IF NOT EXISTS), por lo que puede ejecutarse en cada arranque.
func Migrate(ctx context.Context, q Querier) ([]string, error) {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return nil, fmt.Errorf("listar migraciones: %w", err)
	}
	sort.Strings(names)
	for _, name := range names {
		sqlBytes, err := migrationsFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("leer %s: %w", name, err)
		}
		if _, err := q.Exec(ctx, string(sqlBytes)); err != nil {
			return nil, fmt.Errorf("aplicar %s: %w", name, err)
		}
	}
	return names, nil
}
