package bootstrap

import (
	"context"

	"cedra-backend/internal/infra/db"
	"cedra-backend/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
	fx.Invoke(runMigrations),
)

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}

// runMigrations brings the schema up to date before the server accepts
// traffic. Ordering against NewDB is guaranteed by the pool dependency.
func runMigrations(_ *pgxpool.Pool, cfg config.Config) error {
	return db.RunMigrations(cfg.DB.BuildDSN())
}
