package commands

import (
	"context"
	"log/slog"
	"time"

	"tg-storefront/internal/domain/user"
	"tg-storefront/internal/pkg/errs"
	"tg-storefront/internal/pkg/jwt"
)

type AdminSession struct {
	Token     string
	ExpiresAt time.Time
}

type SessionCommands interface {
	// IssueAdminSession signs a bearer token for an admin already authenticated by the static token.
	IssueAdminSession(ctx context.Context, telegramID string) (*AdminSession, error)
}

type sessionUseCaseImpl struct {
	jwtService *jwt.Service
	logger     *slog.Logger
}

func NewSessionUseCase(jwtService *jwt.Service, logger *slog.Logger) SessionCommands {
	return &sessionUseCaseImpl{jwtService: jwtService, logger: logger}
}

func (uc *sessionUseCaseImpl) IssueAdminSession(_ context.Context, telegramID string) (*AdminSession, error) {
	tgID, err := user.NewTelegramID(telegramID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	token, expiresAt, err := uc.jwtService.GenerateAdminToken(tgID.String())
	if err != nil {
		return nil, errs.Wrap(err, "failed to sign admin token")
	}

	uc.logger.Info("admin session issued", "telegram_id", tgID.String(), "expires_at", expiresAt)
	return &AdminSession{Token: token, ExpiresAt: expiresAt}, nil
}
