//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"tg-storefront/internal/handler/dto/request"
	resdto "tg-storefront/internal/handler/dto/response"
	"tg-storefront/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// IssueAdminSession exchanges the static admin token for a bearer session.
func IssueAdminSession(t *testing.T, router *gin.Engine, adminToken, telegramID string) string {
	t.Helper()

	w := httptest.PerformAdminRequest(t, router, http.MethodPost, "/admin/session",
		request.AdminSessionRequest{TelegramID: request.TelegramID(telegramID)}, adminToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp resdto.AdminSessionResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &resp))
	require.NotEmpty(t, resp.Token, "session token is empty")

	return resp.Token
}
