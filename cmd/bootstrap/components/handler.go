package components

import (
	"log/slog"

	"tg-storefront/internal/handler"
	"tg-storefront/internal/handler/api"
	"tg-storefront/internal/handler/middleware"
	"tg-storefront/internal/pkg/config"
	"tg-storefront/internal/pkg/jwt"
	"tg-storefront/internal/pkg/validation"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewUserHandler,
		api.NewCatalogHandler,
		api.NewStockHandler,
		api.NewCartHandler,
		api.NewSessionHandler,
		NewAdminAuth,
		NewHandlers,
	),
	fx.Invoke(
		validation.RegisterBindingValidators,
		handler.NewRouter,
	),
)

func NewAdminAuth(cfg config.Config, jwtService *jwt.Service, logger *slog.Logger) *middleware.AdminAuth {
	return middleware.NewAdminAuth(cfg.Admin.Token, jwtService, logger)
}

func NewHandlers(
	user *api.UserHandler,
	catalog *api.CatalogHandler,
	stock *api.StockHandler,
	cart *api.CartHandler,
	session *api.SessionHandler,
) handler.Handlers {
	return handler.Handlers{
		User:    user,
		Catalog: catalog,
		Stock:   stock,
		Cart:    cart,
		Session: session,
	}
}
