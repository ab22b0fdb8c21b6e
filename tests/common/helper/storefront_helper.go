//go:build e2e

package helper

import (
	"net/http"
	"testing"

	resdto "tg-storefront/internal/handler/dto/response"
	"tg-storefront/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// RegisterUser calls POST /register-user and returns the stored user.
func RegisterUser(t *testing.T, router *gin.Engine, telegramID, ref string) *resdto.UserResponse {
	t.Helper()

	body := map[string]any{"telegramId": telegramID}
	if ref != "" {
		body["ref"] = ref
	}
	rec := httptest.PerformRequest(t, router, http.MethodPost, "/register-user", body, "")

	var env resdto.UserEnvelope
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, &env)
	require.True(t, env.OK)
	require.NotNil(t, env.User)
	return env.User
}

// GetUser calls GET /get-user.
func GetUser(t *testing.T, router *gin.Engine, telegramID string) *resdto.UserResponse {
	t.Helper()

	rec := httptest.PerformRequest(t, router, http.MethodGet, "/get-user?telegramId="+telegramID, nil, "")

	var env resdto.UserEnvelope
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, &env)
	require.NotNil(t, env.User)
	return env.User
}
