package api

import (
	"net/http"

	reqdto "tg-storefront/internal/handler/dto/request"
	resdto "tg-storefront/internal/handler/dto/response"
	"tg-storefront/internal/handler/httperr"
	"tg-storefront/internal/handler/middleware"
	"tg-storefront/internal/pkg/errs"
	"tg-storefront/internal/usecase/commands"
	"tg-storefront/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errMissingQty = errs.New("totalQty is required")

type StockHandler struct {
	cmds commands.StockCommands
	q    queries.CatalogQueries
}

func NewStockHandler(cmds commands.StockCommands, q queries.CatalogQueries) *StockHandler {
	return &StockHandler{cmds: cmds, q: q}
}

// @Summary Set flavor stock at a pickup point
// @Description Overwrites totalQty (negative values become 0). The point is given by pickupPointId (id or key) or managerTelegramId.
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminToken
// @Param id path string true "Product id"
// @Param flavorId path string true "Flavor id"
// @Param request body reqdto.SetStockRequest true "Stock entry"
// @Success 200 {object} resdto.ProductResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /admin/products/{id}/flavors/{flavorId}/stock [patch]
func (h *StockHandler) SetStock(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	flavorID, ok := parseUUIDParam(c, "flavorId")
	if !ok {
		return
	}

	var req reqdto.SetStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err)
		return
	}
	qty, ok := req.Quantity()
	if !ok {
		httperr.AbortWithError(c, http.StatusBadRequest, errMissingQty, errMissingQty.Error(), nil)
		return
	}

	var actor *string
	if id, ok := middleware.GetAdminTelegramID(c); ok {
		actor = &id
	}
	if err := h.cmds.SetStock(c.Request.Context(), req.ToCommand(productID, flavorID, qty, actor)); err != nil {
		httperr.Abort(c, err)
		return
	}

	view, err := h.q.GetProductByID(c.Request.Context(), productID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.ProductResponse{OK: true, Product: view})
}
