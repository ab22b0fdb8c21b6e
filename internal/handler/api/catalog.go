package api

import (
	"net/http"

	reqdto "tg-storefront/internal/handler/dto/request"
	resdto "tg-storefront/internal/handler/dto/response"
	"tg-storefront/internal/handler/httperr"
	"tg-storefront/internal/usecase/commands"
	"tg-storefront/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	cmds commands.CatalogCommands
	q    queries.CatalogQueries
}

func NewCatalogHandler(cmds commands.CatalogCommands, q queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{cmds: cmds, q: q}
}

// ================================================================================
// Storefront
// ================================================================================

// @Summary List categories
// @Tags catalog
// @Produce json
// @Success 200 {object} resdto.CategoriesResponse
// @Router /categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	h.listCategories(c, queries.ActiveOnly)
}

// @Summary List products
// @Tags catalog
// @Produce json
// @Param categoryKey query string false "Filter by category key"
// @Success 200 {object} resdto.ProductsResponse
// @Router /products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	h.listProducts(c, queries.ActiveOnly)
}

// @Summary Get product
// @Tags catalog
// @Produce json
// @Param key path string true "Product key"
// @Success 200 {object} resdto.ProductResponse
// @Failure 404 {object} httperr.Response
// @Router /products/{key} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	view, err := h.q.GetProductByKey(c.Request.Context(), c.Param("key"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.ProductResponse{OK: true, Product: view})
}

// @Summary List pickup points
// @Tags catalog
// @Produce json
// @Success 200 {object} resdto.PickupPointsResponse
// @Router /pickup-points [get]
func (h *CatalogHandler) ListPickupPoints(c *gin.Context) {
	h.listPickupPoints(c, queries.ActiveOnly)
}

// ================================================================================
// Admin
// ================================================================================

// @Summary List all categories
// @Tags admin
// @Produce json
// @Security AdminToken
// @Success 200 {object} resdto.CategoriesResponse
// @Router /admin/categories [get]
func (h *CatalogHandler) AdminListCategories(c *gin.Context) {
	h.listCategories(c, queries.IncludeInactive)
}

// @Summary Create category
// @Description The key is derived from the title when omitted
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminToken
// @Param request body reqdto.CategoryRequest true "Category"
// @Success 201 {object} resdto.CategoryResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req reqdto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err)
		return
	}
	fields, err := req.ToFields()
	if err != nil {
		abortBind(c, err)
		return
	}
	id, err := h.cmds.CreateCategory(c.Request.Context(), fields)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respondCategory(c, http.StatusCreated, id)
}

// @Summary Patch category
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminToken
// @Param id path string true "Category id"
// @Param request body reqdto.CategoryRequest true "Fields to change"
// @Success 200 {object} resdto.CategoryResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/categories/{id} [patch]
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err)
		return
	}
	fields, err := req.ToFields()
	if err != nil {
		abortBind(c, err)
		return
	}
	if err := h.cmds.UpdateCategory(c.Request.Context(), id, fields); err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respondCategory(c, http.StatusOK, id)
}

// @Summary List all products
// @Tags admin
// @Produce json
// @Security AdminToken
// @Param categoryKey query string false "Filter by category key"
// @Success 200 {object} resdto.ProductsResponse
// @Router /admin/products [get]
func (h *CatalogHandler) AdminListProducts(c *gin.Context) {
	h.listProducts(c, queries.IncludeInactive)
}

// @Summary Create product
// @Description The key is derived from title1 when omitted
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminToken
// @Param request body reqdto.CreateProductRequest true "Product"
// @Success 201 {object} resdto.ProductResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req reqdto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err)
		return
	}
	fields, err := req.ToFields()
	if err != nil {
		abortBind(c, err)
		return
	}
	id, err := h.cmds.CreateProduct(c.Request.Context(), fields)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respondProduct(c, http.StatusCreated, id)
}

// @Summary Patch product
// @Description Applies only when version matches the stored version
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminToken
// @Param id path string true "Product id"
// @Param request body reqdto.UpdateProductRequest true "Fields to change and the version they were read at"
// @Success 200 {object} resdto.ProductResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/products/{id} [patch]
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err)
		return
	}
	cmd, err := req.ToCommand(id)
	if err != nil {
		abortBind(c, err)
		return
	}
	if _, err := h.cmds.UpdateProduct(c.Request.Context(), cmd); err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respondProduct(c, http.StatusOK, id)
}

// @Summary Add flavor
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminToken
// @Param id path string true "Product id"
// @Param request body reqdto.AddFlavorRequest true "Flavor"
// @Success 201 {object} resdto.ProductResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/products/{id}/flavors [post]
func (h *CatalogHandler) AddFlavor(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.AddFlavorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err)
		return
	}
	if _, err := h.cmds.AddFlavor(c.Request.Context(), req.ToCommand(id)); err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respondProduct(c, http.StatusCreated, id)
}

// @Summary List all pickup points
// @Tags admin
// @Produce json
// @Security AdminToken
// @Success 200 {object} resdto.PickupPointsResponse
// @Router /admin/pickup-points [get]
func (h *CatalogHandler) AdminListPickupPoints(c *gin.Context) {
	h.listPickupPoints(c, queries.IncludeInactive)
}

// @Summary Create pickup point
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminToken
// @Param request body reqdto.PickupPointRequest true "Pickup point"
// @Success 201 {object} resdto.PickupPointResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/pickup-points [post]
func (h *CatalogHandler) CreatePickupPoint(c *gin.Context) {
	var req reqdto.PickupPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err)
		return
	}
	fields, err := req.ToFields()
	if err != nil {
		abortBind(c, err)
		return
	}
	id, err := h.cmds.CreatePickupPoint(c.Request.Context(), fields)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respondPickupPoint(c, http.StatusCreated, id)
}

// @Summary Patch pickup point
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminToken
// @Param id path string true "Pickup point id"
// @Param request body reqdto.PickupPointRequest true "Fields to change"
// @Success 200 {object} resdto.PickupPointResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/pickup-points/{id} [patch]
func (h *CatalogHandler) UpdatePickupPoint(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req reqdto.PickupPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err)
		return
	}
	fields, err := req.ToFields()
	if err != nil {
		abortBind(c, err)
		return
	}
	if err := h.cmds.UpdatePickupPoint(c.Request.Context(), id, fields); err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respondPickupPoint(c, http.StatusOK, id)
}

func (h *CatalogHandler) listCategories(c *gin.Context, vis queries.Visibility) {
	views, err := h.q.ListCategories(c.Request.Context(), vis)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.Categories(views))
}

func (h *CatalogHandler) listProducts(c *gin.Context, vis queries.Visibility) {
	views, err := h.q.ListProducts(c.Request.Context(), c.Query("categoryKey"), vis)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.Products(views))
}

func (h *CatalogHandler) listPickupPoints(c *gin.Context, vis queries.Visibility) {
	views, err := h.q.ListPickupPoints(c.Request.Context(), vis)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.PickupPoints(views))
}

func (h *CatalogHandler) respondCategory(c *gin.Context, status int, id uuid.UUID) {
	view, err := h.q.GetCategoryByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(status, resdto.CategoryResponse{OK: true, Category: view})
}

func (h *CatalogHandler) respondProduct(c *gin.Context, status int, id uuid.UUID) {
	view, err := h.q.GetProductByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(status, resdto.ProductResponse{OK: true, Product: view})
}

func (h *CatalogHandler) respondPickupPoint(c *gin.Context, status int, id uuid.UUID) {
	view, err := h.q.GetPickupPointByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(status, resdto.PickupPointResponse{OK: true, PickupPoint: view})
}
