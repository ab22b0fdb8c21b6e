package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"tg-storefront/internal/infra/db"
	"tg-storefront/internal/infra/migration"
	"tg-storefront/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

// MigrateModule applies the embedded migrations before the server starts
// when DB_AUTO_MIGRATE is set.
var MigrateModule = fx.Module("migrate",
	fx.Invoke(RunMigrations),
)

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, cleanup, err := db.Connect(ctx, cfg.DB)
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

func RunMigrations(cfg config.Config, logger *slog.Logger) error {
	if !cfg.DB.AutoMigrate {
		logger.Info("auto migration disabled")
		return nil
	}

	m, err := migration.New(cfg.DB.BuildDSN(), logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			logger.Warn("failed to close migrator", "error", err.Error())
		}
	}()

	return m.Up()
}
