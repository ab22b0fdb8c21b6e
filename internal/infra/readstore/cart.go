package readstore

import (
	"context"
	"log/slog"

	"tg-storefront/internal/infra"
	"tg-storefront/internal/infra/db"
	"tg-storefront/internal/pkg/pgconv"
	"tg-storefront/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
)

type CartReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewCartReadStore(dbtx db.DBTX, logger *slog.Logger) *CartReadStore {
	return &CartReadStore{db: dbtx, logger: logger}
}

func (r *CartReadStore) FindByTelegramID(ctx context.Context, telegramID string) (*queries.CartView, error) {
	var v queries.CartView
	err := r.db.QueryRow(ctx, `
		SELECT telegram_id, checkout_delivery_type, checkout_delivery_method, checkout_pickup_point_id, updated_at
		FROM carts
		WHERE telegram_id = $1`, telegramID,
	).Scan(&v.TelegramID, &v.CheckoutDeliveryType, &v.CheckoutDeliveryMethod, &v.CheckoutPickupPointID, &v.UpdatedAt)
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to find cart", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT product_key, flavor_key, qty, unit_price::text, flavor_label, gradient
		FROM cart_items
		WHERE cart_telegram_id = $1
		ORDER BY position`, telegramID)
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to load cart items", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (queries.CartItemView, error) {
		var it queries.CartItemView
		var price string
		if err := row.Scan(&it.ProductKey, &it.FlavorKey, &it.Qty, &price, &it.FlavorLabel, &it.Gradient); err != nil {
			return it, err
		}
		unit, err := pgconv.DecimalFromText(price)
		it.UnitPrice = unit
		return it, err
	})
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to scan cart items", err)
	}

	v.Items = items
	return &v, nil
}
