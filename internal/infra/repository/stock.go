package repository

import (
	"context"
	"log/slog"

	"tg-storefront/internal/infra"
	"tg-storefront/internal/infra/db"
	"tg-storefront/internal/usecase/shared"

	"github.com/google/uuid"
)

type StockRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewStockRepository(dbtx db.DBTX, logger *slog.Logger) *StockRepository {
	return &StockRepository{db: dbtx, logger: logger}
}

// Upsert writes the (flavor, pickup point) entry in one statement. A nil
// ReservedQty keeps the stored reservation (zero for a new entry).
func (r *StockRepository) Upsert(ctx context.Context, w shared.StockWrite) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO stock_entries (id, flavor_id, pickup_point_id, total_qty, reserved_qty, version, updated_at, updated_by_telegram_id)
		VALUES ($1, $2, $3, GREATEST($4, 0), GREATEST(COALESCE($5::integer, 0), 0), 1, $6, $7)
		ON CONFLICT (flavor_id, pickup_point_id) DO UPDATE
		SET total_qty = EXCLUDED.total_qty,
		    reserved_qty = COALESCE($5::integer, stock_entries.reserved_qty),
		    version = stock_entries.version + 1,
		    updated_at = EXCLUDED.updated_at,
		    updated_by_telegram_id = EXCLUDED.updated_by_telegram_id`,
		uuid.New(), w.FlavorID, w.PickupPointID, w.TotalQty, w.ReservedQty, w.At, w.UpdatedByTelegram,
	)
	if err != nil {
		return infra.WrapPgErr(r.logger, "failed to upsert stock entry", err)
	}
	return nil
}
