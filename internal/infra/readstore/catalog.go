package readstore

import (
	"context"
	"log/slog"

	"tg-storefront/internal/domain/stock"
	"tg-storefront/internal/infra"
	"tg-storefront/internal/infra/db"
	"tg-storefront/internal/pkg/pgconv"
	"tg-storefront/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	categoryColumns = `id, key, title, is_active, card_bg_url, card_duck_url, class_card_duck,
	title_class, show_overlay, badge_text, badge_side, sort_order, created_at, updated_at`

	productColumns = `id, product_key, category_key, is_active, title1, title2, title_modal, price::text,
	card_bg_url, card_duck_url, order_img_url, class_card_duck, class_actions, class_new_badge,
	new_badge, accent_color, version, created_at, updated_at`

	pickupPointColumns = `id, key, title, address, sort_order, is_active, allowed_admin_telegram_ids,
	created_at, updated_at`
)

// SnapshotRunner runs fn inside one read-only transaction.
type SnapshotRunner interface {
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
}

type CatalogReadStore struct {
	db        db.DBTX
	snapshots SnapshotRunner
	logger    *slog.Logger
}

func NewCatalogReadStore(dbtx db.DBTX, snapshots SnapshotRunner, logger *slog.Logger) *CatalogReadStore {
	return &CatalogReadStore{db: dbtx, snapshots: snapshots, logger: logger}
}

// inSnapshot runs fn against a store bound to one read-only transaction, so a
// product, its flavors and their stock entries come from the same snapshot.
func (r *CatalogReadStore) inSnapshot(ctx context.Context, fn func(ctx context.Context, s *CatalogReadStore) error) error {
	if r.snapshots == nil {
		return fn(ctx, r)
	}
	return r.snapshots.WithinReadOnly(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &CatalogReadStore{db: tx, logger: r.logger})
	})
}

func (r *CatalogReadStore) ListCategories(ctx context.Context, activeOnly bool) ([]*queries.CategoryView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE is_active OR NOT $1
		ORDER BY sort_order, title, id`, activeOnly)
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to list categories", err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.CategoryView, error) {
		return scanCategoryView(row)
	})
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to scan categories", err)
	}
	return out, nil
}

func (r *CatalogReadStore) FindCategoryByID(ctx context.Context, id uuid.UUID) (*queries.CategoryView, error) {
	c, err := scanCategoryView(r.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to find category", err)
	}
	return c, nil
}

func (r *CatalogReadStore) ListProducts(ctx context.Context, categoryKey *string, activeOnly bool) ([]*queries.ProductView, error) {
	var products []*queries.ProductView
	err := r.inSnapshot(ctx, func(ctx context.Context, s *CatalogReadStore) error {
		var err error
		products, err = s.listProducts(ctx, categoryKey, activeOnly)
		return err
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *CatalogReadStore) listProducts(ctx context.Context, categoryKey *string, activeOnly bool) ([]*queries.ProductView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE (is_active OR NOT $1)
		  AND ($2::text IS NULL OR category_key = $2)
		ORDER BY created_at, id`, activeOnly, categoryKey)
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to list products", err)
	}

	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.ProductView, error) {
		return scanProductView(row)
	})
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to scan products", err)
	}

	if err := r.attachFlavors(ctx, products, activeOnly); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *CatalogReadStore) FindProductByKey(ctx context.Context, key string, activeOnly bool) (*queries.ProductView, error) {
	return r.findProduct(ctx, activeOnly, `
		SELECT `+productColumns+`
		FROM products
		WHERE product_key = $1 AND (is_active OR NOT $2)`, key, activeOnly)
}

// FindProductByID serves the admin side and includes inactive flavors.
func (r *CatalogReadStore) FindProductByID(ctx context.Context, id uuid.UUID) (*queries.ProductView, error) {
	return r.findProduct(ctx, false, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

func (r *CatalogReadStore) ListPickupPoints(ctx context.Context, activeOnly bool) ([]*queries.PickupPointView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+pickupPointColumns+`
		FROM pickup_points
		WHERE is_active OR NOT $1
		ORDER BY sort_order, title, id`, activeOnly)
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to list pickup points", err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.PickupPointView, error) {
		return scanPickupPointView(row)
	})
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to scan pickup points", err)
	}
	return out, nil
}

func (r *CatalogReadStore) FindPickupPointByID(ctx context.Context, id uuid.UUID) (*queries.PickupPointView, error) {
	p, err := scanPickupPointView(r.db.QueryRow(ctx, `SELECT `+pickupPointColumns+` FROM pickup_points WHERE id = $1`, id))
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to find pickup point", err)
	}
	return p, nil
}

func (r *CatalogReadStore) findProduct(ctx context.Context, activeOnly bool, sql string, args ...any) (*queries.ProductView, error) {
	var p *queries.ProductView
	err := r.inSnapshot(ctx, func(ctx context.Context, s *CatalogReadStore) error {
		var err error
		p, err = scanProductView(s.db.QueryRow(ctx, sql, args...))
		if err != nil {
			return infra.WrapPgErr(s.logger, "failed to find product", err)
		}
		return s.attachFlavors(ctx, []*queries.ProductView{p}, activeOnly)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// attachFlavors loads flavors and their stock entries for all products in two queries.
func (r *CatalogReadStore) attachFlavors(ctx context.Context, products []*queries.ProductView, activeOnly bool) error {
	if len(products) == 0 {
		return nil
	}

	byProduct := make(map[uuid.UUID]*queries.ProductView, len(products))
	ids := make([]uuid.UUID, 0, len(products))
	for _, p := range products {
		p.Flavors = []queries.FlavorView{}
		byProduct[p.ID] = p
		ids = append(ids, p.ID)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, product_id, flavor_key, label, is_active, gradient, sort_order
		FROM flavors
		WHERE product_id = ANY($1) AND (is_active OR NOT $2)
		ORDER BY product_id, sort_order, created_at, id`, ids, activeOnly)
	if err != nil {
		return infra.WrapPgErr(r.logger, "failed to load flavors", err)
	}

	type flavorRow struct {
		productID uuid.UUID
		view      queries.FlavorView
	}
	flavors, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (flavorRow, error) {
		var f flavorRow
		err := row.Scan(&f.view.ID, &f.productID, &f.view.FlavorKey, &f.view.Label, &f.view.IsActive,
			&f.view.Gradient, &f.view.SortOrder)
		return f, err
	})
	if err != nil {
		return infra.WrapPgErr(r.logger, "failed to scan flavors", err)
	}
	if len(flavors) == 0 {
		return nil
	}

	flavorIDs := make([]uuid.UUID, 0, len(flavors))
	for _, f := range flavors {
		flavorIDs = append(flavorIDs, f.view.ID)
	}
	entries, err := r.stockEntries(ctx, flavorIDs)
	if err != nil {
		return err
	}

	for _, f := range flavors {
		fv := f.view
		fv.Stock = entries[fv.ID]
		if fv.Stock == nil {
			fv.Stock = []queries.StockEntryView{}
		}
		reserved := 0
		for _, e := range fv.Stock {
			fv.TotalQty += e.TotalQty
			reserved += e.ReservedQty
		}
		fv.Available = stock.Available(fv.TotalQty, reserved)
		p := byProduct[f.productID]
		p.Flavors = append(p.Flavors, fv)
	}
	return nil
}

func (r *CatalogReadStore) stockEntries(ctx context.Context, flavorIDs []uuid.UUID) (map[uuid.UUID][]queries.StockEntryView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.flavor_id, s.pickup_point_id, pp.key, s.total_qty, s.reserved_qty, s.updated_at, s.updated_by_telegram_id
		FROM stock_entries s
		JOIN pickup_points pp ON pp.id = s.pickup_point_id
		WHERE s.flavor_id = ANY($1)
		ORDER BY pp.sort_order, pp.key`, flavorIDs)
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to load stock entries", err)
	}

	out := make(map[uuid.UUID][]queries.StockEntryView)
	var (
		flavorID uuid.UUID
		e        queries.StockEntryView
	)
	_, err = pgx.ForEachRow(rows, []any{&flavorID, &e.PickupPointID, &e.PickupPointKey, &e.TotalQty, &e.ReservedQty, &e.UpdatedAt, &e.UpdatedByTelegramID}, func() error {
		entry := e
		if e.UpdatedByTelegramID != nil {
			actor := *e.UpdatedByTelegramID
			entry.UpdatedByTelegramID = &actor
		}
		entry.Available = stock.Available(entry.TotalQty, entry.ReservedQty)
		out[flavorID] = append(out[flavorID], entry)
		return nil
	})
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to scan stock entries", err)
	}
	return out, nil
}

func scanCategoryView(row pgx.Row) (*queries.CategoryView, error) {
	var c queries.CategoryView
	err := row.Scan(&c.ID, &c.Key, &c.Title, &c.IsActive, &c.CardBgURL, &c.CardDuckURL, &c.ClassCardDuck,
		&c.TitleClass, &c.ShowOverlay, &c.BadgeText, &c.BadgeSide, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanPickupPointView(row pgx.Row) (*queries.PickupPointView, error) {
	var p queries.PickupPointView
	err := row.Scan(&p.ID, &p.Key, &p.Title, &p.Address, &p.SortOrder, &p.IsActive,
		&p.AllowedAdminTelegramIDs, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProductView(row pgx.Row) (*queries.ProductView, error) {
	var p queries.ProductView
	var price string
	err := row.Scan(&p.ID, &p.ProductKey, &p.CategoryKey, &p.IsActive, &p.Title1, &p.Title2, &p.TitleModal, &price,
		&p.CardBgURL, &p.CardDuckURL, &p.OrderImgURL, &p.ClassCardDuck, &p.ClassActions, &p.ClassNewBadge,
		&p.NewBadge, &p.AccentColor, &p.Version, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if p.Price, err = pgconv.DecimalFromText(price); err != nil {
		return nil, err
	}
	return &p, nil
}
