package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"tg-storefront/internal/bot"
	"tg-storefront/internal/pkg/config"
	"tg-storefront/internal/usecase/commands"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/fx"
)

var BotModule = fx.Module("bot",
	fx.Invoke(StartBot),
)

func StartBot(lc fx.Lifecycle, cfg config.Config, users commands.UserCommands, seen bot.UpdateStore, logger *slog.Logger) {
	if cfg.Telegram.BotToken == "" {
		logger.Warn("TELEGRAM_BOT_TOKEN not set, bot disabled")
		return
	}

	var (
		cancel context.CancelFunc
		wg     sync.WaitGroup
	)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			api, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
			if err != nil {
				return fmt.Errorf("failed to connect telegram bot: %w", err)
			}

			b := bot.New(api, users, seen, cfg.Telegram, logger)

			var ctx context.Context
			ctx, cancel = context.WithCancel(context.Background())
			wg.Add(1)
			go func() {
				defer wg.Done()
				b.Poll(ctx, api)
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			if cancel != nil {
				cancel()
			}
			wg.Wait()
			return nil
		},
	})
}
