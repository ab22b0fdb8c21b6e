//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"tg-storefront/internal/pkg/config"
	"tg-storefront/internal/pkg/jwt"

	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateAdminToken(t *testing.T, telegramID string) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	service := jwt.NewService(h.cfg.Secret, duration)
	token, _, err := service.GenerateAdminToken(telegramID)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, telegramID string) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, 1*time.Millisecond)
	token, _, err := service.GenerateAdminToken(telegramID)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
