package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"tg-storefront/internal/handler/httperr"
	"tg-storefront/internal/pkg/errs"
	"tg-storefront/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const (
	AdminTokenHeader = "X-Admin-Token"

	ctxAdminTelegramIDKey = "admin_telegram_id"
	ctxAuthMethodKey      = "admin_auth_method"
)

var (
	errAdminNotConfigured = errs.New("ADMIN_TOKEN is not configured")
	errAdminUnauthorized  = errs.New("admin credentials missing or invalid")
)

type AdminAuth struct {
	token      []byte
	jwtService *jwt.Service
	logger     *slog.Logger
}

func NewAdminAuth(token string, jwtService *jwt.Service, logger *slog.Logger) *AdminAuth {
	return &AdminAuth{token: []byte(token), jwtService: jwtService, logger: logger}
}

// RequireAdmin accepts the static x-admin-token header or a bearer session
// issued by POST /admin/session. Without a configured token every admin
// request fails with 500.
func (m *AdminAuth) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(m.token) == 0 {
			httperr.AbortWithError(c, http.StatusInternalServerError, errAdminNotConfigured, "Admin token is not configured", nil)
			return
		}

		if header := c.GetHeader(AdminTokenHeader); header != "" {
			if subtle.ConstantTimeCompare([]byte(header), m.token) != 1 {
				m.logger.Warn("admin token mismatch", "client_ip", c.ClientIP())
				httperr.AbortWithError(c, http.StatusUnauthorized, errAdminUnauthorized, "Unauthorized", nil)
				return
			}
			c.Set(ctxAuthMethodKey, "token")
			c.Set("jwt_claims", map[string]any{"role": jwt.RoleAdmin})
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if m.jwtService != nil && strings.HasPrefix(authHeader, "Bearer ") {
			claims, err := m.jwtService.ValidateToken(strings.TrimSpace(authHeader[len("Bearer "):]))
			if err != nil {
				m.logger.Warn("admin session rejected", "error", err.Error())
				httperr.AbortWithError(c, http.StatusUnauthorized, errs.Wrap(err, "validate admin session"), "Invalid or expired session", nil)
				return
			}
			c.Set(ctxAuthMethodKey, "session")
			c.Set(ctxAdminTelegramIDKey, claims.TelegramID)
			c.Set("jwt_claims", map[string]any{
				"user_id": claims.TelegramID,
				"role":    claims.Role,
			})
			c.Next()
			return
		}

		httperr.AbortWithError(c, http.StatusUnauthorized, errAdminUnauthorized, "Unauthorized", nil)
	}
}

// GetAdminTelegramID is set only for bearer sessions.
func GetAdminTelegramID(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxAdminTelegramIDKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
