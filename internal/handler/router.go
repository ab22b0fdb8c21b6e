package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tg-storefront/internal/handler/api"
	"tg-storefront/internal/handler/middleware"
	"tg-storefront/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

type Handlers struct {
	User    *api.UserHandler
	Catalog *api.CatalogHandler
	Stock   *api.StockHandler
	Cart    *api.CartHandler
	Session *api.SessionHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, adminAuth *middleware.AdminAuth) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, adminAuth)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, adminAuth *middleware.AdminAuth) {
	engine.GET("/health", healthCheck)
	engine.GET("/ping", ping)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addRoutes(&engine.RouterGroup, []route{
		{Method: http.MethodPost, Path: "/register-user", Handler: h.User.Register},
		{Method: http.MethodGet, Path: "/get-user", Handler: h.User.Get},
		{Method: http.MethodGet, Path: "/categories", Handler: h.Catalog.ListCategories},
		{Method: http.MethodGet, Path: "/products", Handler: h.Catalog.ListProducts},
		{Method: http.MethodGet, Path: "/products/:key", Handler: h.Catalog.GetProduct},
		{Method: http.MethodGet, Path: "/pickup-points", Handler: h.Catalog.ListPickupPoints},
		{Method: http.MethodGet, Path: "/cart", Handler: h.Cart.Get},
		{Method: http.MethodPut, Path: "/cart", Handler: h.Cart.Put},
	})

	admin := engine.Group("/admin")
	admin.Use(adminAuth.RequireAdmin())
	{
		addRoutes(admin, []route{
			{Method: http.MethodPost, Path: "/session", Handler: h.Session.Issue},
			{Method: http.MethodGet, Path: "/users", Handler: h.User.List},

			{Method: http.MethodGet, Path: "/categories", Handler: h.Catalog.AdminListCategories},
			{Method: http.MethodPost, Path: "/categories", Handler: h.Catalog.CreateCategory},
			{Method: http.MethodPatch, Path: "/categories/:id", Handler: h.Catalog.UpdateCategory},

			{Method: http.MethodGet, Path: "/products", Handler: h.Catalog.AdminListProducts},
			{Method: http.MethodPost, Path: "/products", Handler: h.Catalog.CreateProduct},
			{Method: http.MethodPatch, Path: "/products/:id", Handler: h.Catalog.UpdateProduct},
			{Method: http.MethodPost, Path: "/products/:id/flavors", Handler: h.Catalog.AddFlavor},
			{Method: http.MethodPatch, Path: "/products/:id/flavors/:flavorId/stock", Handler: h.Stock.SetStock},

			{Method: http.MethodGet, Path: "/pickup-points", Handler: h.Catalog.AdminListPickupPoints},
			{Method: http.MethodPost, Path: "/pickup-points", Handler: h.Catalog.CreatePickupPoint},
			{Method: http.MethodPatch, Path: "/pickup-points/:id", Handler: h.Catalog.UpdatePickupPoint},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

// @Summary Liveness ping
// @Tags health
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /ping [get]
func ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}
