package bot

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"tg-storefront/internal/pkg/config"
	"tg-storefront/internal/usecase/commands"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the part of *tgbotapi.BotAPI the handlers reply through.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// UpdateStore remembers processed update ids. MarkProcessed reports false for
// an id already seen within ttl.
type UpdateStore interface {
	MarkProcessed(ctx context.Context, id string, ttl time.Duration) (bool, error)
}

type Bot struct {
	sender Sender
	users  commands.UserCommands
	seen   UpdateStore
	cfg    config.TelegramConfig
	logger *slog.Logger
}

func New(sender Sender, users commands.UserCommands, seen UpdateStore, cfg config.TelegramConfig, logger *slog.Logger) *Bot {
	return &Bot{
		sender: sender,
		users:  users,
		seen:   seen,
		cfg:    cfg,
		logger: logger.With("component", "bot"),
	}
}

// Poll long-polls api until ctx is cancelled.
func (b *Bot) Poll(ctx context.Context, api *tgbotapi.BotAPI) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.PollTimeout
	updates := api.GetUpdatesChan(u)
	defer api.StopReceivingUpdates()

	b.logger.Info("bot polling started", "username", api.Self.UserName)
	for {
		select {
		case <-ctx.Done():
			b.logger.Info("bot polling stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if err := b.HandleUpdate(ctx, update); err != nil {
				b.logger.Error("failed to handle update",
					"update_id", update.UpdateID,
					"error", err.Error())
			}
		}
	}
}

// HandleUpdate dispatches a single update. Redelivered updates are dropped.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) error {
	fresh, err := b.seen.MarkProcessed(ctx, strconv.Itoa(update.UpdateID), b.cfg.DedupTTL)
	if err != nil {
		// process anyway when the store is down
		b.logger.Warn("update dedupe unavailable", "update_id", update.UpdateID, "error", err.Error())
	} else if !fresh {
		b.logger.Debug("duplicate update skipped", "update_id", update.UpdateID)
		return nil
	}

	msg := update.Message
	if msg == nil || msg.From == nil || !msg.IsCommand() {
		return nil
	}

	switch msg.Command() {
	case "start":
		return b.handleStart(ctx, msg)
	default:
		return nil
	}
}
