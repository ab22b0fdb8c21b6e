package repository

import (
	"context"
	"log/slog"
	"time"

	"tg-storefront/internal/domain/cart"
	"tg-storefront/internal/infra"
	"tg-storefront/internal/infra/db"

	"github.com/jackc/pgx/v5"
)

type CartRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewCartRepository(dbtx db.DBTX, logger *slog.Logger) *CartRepository {
	return &CartRepository{db: dbtx, logger: logger}
}

// Replace overwrites the cart header and all its lines. Must run inside a transaction.
func (r *CartRepository) Replace(ctx context.Context, c *cart.Cart, now time.Time) error {
	co := c.Checkout()
	var deliveryType, deliveryMethod *string
	if co.DeliveryType != nil {
		s := string(*co.DeliveryType)
		deliveryType = &s
	}
	if co.DeliveryMethod != nil {
		s := string(*co.DeliveryMethod)
		deliveryMethod = &s
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO carts (telegram_id, checkout_delivery_type, checkout_delivery_method, checkout_pickup_point_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (telegram_id) DO UPDATE
		SET checkout_delivery_type = EXCLUDED.checkout_delivery_type,
		    checkout_delivery_method = EXCLUDED.checkout_delivery_method,
		    checkout_pickup_point_id = EXCLUDED.checkout_pickup_point_id,
		    updated_at = EXCLUDED.updated_at`,
		c.TelegramID(), deliveryType, deliveryMethod, co.PickupPointID, now,
	)
	if err != nil {
		return infra.WrapPgErr(r.logger, "failed to upsert cart", err)
	}

	if _, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE cart_telegram_id = $1`, c.TelegramID()); err != nil {
		return infra.WrapPgErr(r.logger, "failed to clear cart items", err)
	}

	items := c.Items()
	if len(items) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i, it := range items {
		batch.Queue(`
			INSERT INTO cart_items (cart_telegram_id, position, product_key, flavor_key, qty, unit_price, flavor_label, gradient)
			VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8)`,
			c.TelegramID(), i, it.ProductKey, it.FlavorKey, it.Qty, it.UnitPrice.String(), it.FlavorLabel, it.Gradient,
		)
	}
	if err := r.sendBatch(ctx, batch); err != nil {
		return infra.WrapPgErr(r.logger, "failed to insert cart items", err)
	}
	return nil
}

type batchSender interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

func (r *CartRepository) sendBatch(ctx context.Context, b *pgx.Batch) error {
	if sender, ok := r.db.(batchSender); ok {
		return sender.SendBatch(ctx, b).Close()
	}
	for _, q := range b.QueuedQueries {
		if _, err := r.db.Exec(ctx, q.SQL, q.Arguments...); err != nil {
			return err
		}
	}
	return nil
}
