//go:build unit

package httperr_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tg-storefront/internal/handler/httperr"
	"tg-storefront/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbort(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation echoes the message", errs.Mark(errs.New("qty must be at least 1"), errs.ErrValidation), http.StatusBadRequest, "qty must be at least 1"},
		{"user not found", errs.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"wrapped flavor not found", errs.Wrap(errs.ErrFlavorNotFound, "set stock"), http.StatusNotFound, "Flavor not found"},
		{"duplicate key", errs.Mark(errs.New("23505"), errs.ErrDuplicateKey), http.StatusConflict, "Duplicate key"},
		{"version conflict", errs.ErrVersionConflict, http.StatusConflict, "Version conflict, reload and retry"},
		{"anything else is hidden", errs.New("connection refused"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			httperr.Abort(c, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			var body struct {
				OK    bool `json:"ok"`
				Error struct {
					Message string `json:"message"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.OK)
			assert.Equal(t, tc.wantMsg, body.Error.Message)
			assert.Len(t, c.Errors, 1)
		})
	}
}
