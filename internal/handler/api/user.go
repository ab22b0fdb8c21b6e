package api

import (
	"net/http"
	"strings"

	reqdto "tg-storefront/internal/handler/dto/request"
	resdto "tg-storefront/internal/handler/dto/response"
	"tg-storefront/internal/handler/httperr"
	"tg-storefront/internal/pkg/errs"
	"tg-storefront/internal/usecase/commands"
	"tg-storefront/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errMissingTelegramID = errs.New("telegramId is required")

type UserHandler struct {
	cmds commands.UserCommands
	q    queries.UserQueries
}

func NewUserHandler(cmds commands.UserCommands, q queries.UserQueries) *UserHandler {
	return &UserHandler{cmds: cmds, q: q}
}

// @Summary Register user
// @Description Create the user on first contact or refresh the profile. A ref is applied to new users only.
// @Tags users
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterUserRequest true "Register request"
// @Success 200 {object} resdto.UserEnvelope
// @Failure 400 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /register-user [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req reqdto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err)
		return
	}

	result, err := h.cmds.RegisterUser(c.Request.Context(), req.ToCommand())
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	h.respondUser(c, result.TelegramID)
}

// @Summary Get user
// @Tags users
// @Produce json
// @Param telegramId query string true "Telegram user id"
// @Success 200 {object} resdto.UserEnvelope
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /get-user [get]
func (h *UserHandler) Get(c *gin.Context) {
	telegramID := strings.TrimSpace(c.Query("telegramId"))
	if telegramID == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errMissingTelegramID, errMissingTelegramID.Error(), nil)
		return
	}
	h.respondUser(c, telegramID)
}

// @Summary List users
// @Description Keyset-paginated user listing, newest first
// @Tags admin
// @Produce json
// @Security AdminToken
// @Param cursor query string false "Opaque cursor from a previous page"
// @Param limit query int false "Page size (1-200)"
// @Success 200 {object} resdto.UserListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /admin/users [get]
func (h *UserHandler) List(c *gin.Context) {
	var req reqdto.ListUsersQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		abortBind(c, err)
		return
	}

	var cursor *queries.Cursor
	if req.Cursor != "" {
		cursor = &queries.Cursor{After: req.Cursor}
	}
	items, next, err := h.q.List(c.Request.Context(), cursor, req.Limit)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromUserList(items, next))
}

func (h *UserHandler) respondUser(c *gin.Context, telegramID string) {
	view, err := h.q.GetByTelegramID(c.Request.Context(), telegramID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resp, err := resdto.FromUserView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}
