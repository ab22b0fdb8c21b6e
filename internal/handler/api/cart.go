package api

import (
	"net/http"
	"strings"

	reqdto "tg-storefront/internal/handler/dto/request"
	resdto "tg-storefront/internal/handler/dto/response"
	"tg-storefront/internal/handler/httperr"
	"tg-storefront/internal/usecase/commands"
	"tg-storefront/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cmds commands.CartCommands
	q    queries.CartQueries
}

func NewCartHandler(cmds commands.CartCommands, q queries.CartQueries) *CartHandler {
	return &CartHandler{cmds: cmds, q: q}
}

// @Summary Get cart
// @Description Returns the stored cart, or an empty one
// @Tags cart
// @Produce json
// @Param telegramId query string true "Telegram user id"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} httperr.Response
// @Router /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	telegramID := strings.TrimSpace(c.Query("telegramId"))
	if telegramID == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errMissingTelegramID, errMissingTelegramID.Error(), nil)
		return
	}
	h.respondCart(c, telegramID)
}

// @Summary Replace cart
// @Tags cart
// @Accept json
// @Produce json
// @Param request body reqdto.PutCartRequest true "Full cart state"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /cart [put]
func (h *CartHandler) Put(c *gin.Context) {
	var req reqdto.PutCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err)
		return
	}
	if err := h.cmds.PutCart(c.Request.Context(), req.ToCommand()); err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respondCart(c, req.TelegramID.String())
}

func (h *CartHandler) respondCart(c *gin.Context, telegramID string) {
	view, err := h.q.GetCart(c.Request.Context(), telegramID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.CartResponse{OK: true, Cart: view})
}
