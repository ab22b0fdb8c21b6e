package api

import (
	"net/http"

	reqdto "tg-storefront/internal/handler/dto/request"
	resdto "tg-storefront/internal/handler/dto/response"
	"tg-storefront/internal/handler/httperr"
	"tg-storefront/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	cmds commands.SessionCommands
}

func NewSessionHandler(cmds commands.SessionCommands) *SessionHandler {
	return &SessionHandler{cmds: cmds}
}

// @Summary Issue admin session
// @Description Exchanges x-admin-token for a bearer token bound to the admin's telegram id
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminToken
// @Param request body reqdto.AdminSessionRequest true "Admin identity"
// @Success 200 {object} resdto.AdminSessionResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /admin/session [post]
func (h *SessionHandler) Issue(c *gin.Context) {
	var req reqdto.AdminSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err)
		return
	}
	session, err := h.cmds.IssueAdminSession(c.Request.Context(), req.TelegramID.String())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.AdminSessionResponse{OK: true, Token: session.Token, ExpiresAt: session.ExpiresAt})
}
