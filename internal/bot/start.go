package bot

import (
	"context"
	"strconv"
	"strings"

	"tg-storefront/internal/pkg/errs"
	"tg-storefront/internal/usecase/commands"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const launchButtonText = "💨 Visit the shop 🛍️"

// webAppMarkup is an inline keyboard with a single Mini-App launch button.
// tgbotapi serializes ReplyMarkup as-is, so the web_app button is declared here.
type webAppMarkup struct {
	InlineKeyboard [][]webAppButton `json:"inline_keyboard"`
}

type webAppButton struct {
	Text   string     `json:"text"`
	WebApp webAppInfo `json:"web_app"`
}

type webAppInfo struct {
	URL string `json:"url"`
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	payload := strings.TrimSpace(msg.CommandArguments())
	from := msg.From

	result, err := b.users.RegisterUser(ctx, commands.RegisterUserRequest{
		TelegramID:  strconv.FormatInt(from.ID, 10),
		Username:    from.UserName,
		FirstName:   from.FirstName,
		LastName:    from.LastName,
		Ref:         payload,
		KeepProfile: true,
	})
	if err != nil {
		return errs.Wrap(err, "register user from /start")
	}

	var code string
	if result.ReferralCode != nil {
		code = *result.ReferralCode
	}
	link := LaunchURL(b.cfg.WebAppURL, payload, code)

	b.logger.Info("start handled",
		"telegram_id", result.TelegramID,
		"created", result.Created,
		"referred", result.Referred,
		"has_code", code != "")

	if _, err := b.sender.Send(b.startReply(msg.Chat.ID, link)); err != nil {
		return errs.Wrap(err, "send /start reply")
	}
	return nil
}

func (b *Bot) startReply(chatID int64, link string) tgbotapi.Chattable {
	caption := "Welcome to " + b.cfg.ShopName + "!"
	markup := webAppMarkup{InlineKeyboard: [][]webAppButton{{
		{Text: launchButtonText, WebApp: webAppInfo{URL: link}},
	}}}

	if b.cfg.StartBannerURL != "" {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(b.cfg.StartBannerURL))
		photo.Caption = caption
		photo.ReplyMarkup = markup
		return photo
	}
	reply := tgbotapi.NewMessage(chatID, caption)
	reply.ReplyMarkup = markup
	return reply
}
