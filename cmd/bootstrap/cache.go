package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"tg-storefront/internal/bot"
	"tg-storefront/internal/infra/cache"
	"tg-storefront/internal/pkg/clock"
	"tg-storefront/internal/pkg/config"

	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewUpdateStore,
	),
)

// NewUpdateStore uses Redis when REDIS_ADDR is set so several bot replicas
// share one dedupe window. Otherwise updates are tracked in process memory.
func NewUpdateStore(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, logger *slog.Logger) (bot.UpdateStore, error) {
	if cfg.Redis.Addr == "" {
		logger.Info("update dedupe: in-memory")
		store := cache.NewInMemoryUpdateStore(clk)
		lc.Append(fx.StopHook(store.Close))
		return store, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	logger.Info("update dedupe: redis", "addr", cfg.Redis.Addr)
	store := cache.NewRedisUpdateStore(client, "")
	lc.Append(fx.StopHook(store.Close))
	return store, nil
}
