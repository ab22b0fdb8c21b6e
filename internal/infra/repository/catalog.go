package repository

import (
	"context"
	"log/slog"
	"time"

	"tg-storefront/internal/domain/catalog"
	"tg-storefront/internal/infra"
	"tg-storefront/internal/infra/db"

	"github.com/google/uuid"
)

type CategoryRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewCategoryRepository(dbtx db.DBTX, logger *slog.Logger) *CategoryRepository {
	return &CategoryRepository{db: dbtx, logger: logger}
}

func (r *CategoryRepository) Create(ctx context.Context, c *catalog.Category, now time.Time) error {
	card := c.Card()
	_, err := r.db.Exec(ctx, `
		INSERT INTO categories (id, key, title, is_active, card_bg_url, card_duck_url, class_card_duck,
		                        title_class, show_overlay, badge_text, badge_side, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)`,
		c.ID(), c.Key(), c.Title(), c.IsActive(), card.CardBgURL, card.CardDuckURL, card.ClassCardDuck,
		card.TitleClass, card.ShowOverlay, card.BadgeText, string(card.BadgeSide), c.SortOrder(), now,
	)
	if err != nil {
		return infra.WrapPgErr(r.logger, "failed to create category", err)
	}
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *catalog.Category, now time.Time) error {
	card := c.Card()
	tag, err := r.db.Exec(ctx, `
		UPDATE categories
		SET key = $2, title = $3, is_active = $4, card_bg_url = $5, card_duck_url = $6, class_card_duck = $7,
		    title_class = $8, show_overlay = $9, badge_text = $10, badge_side = $11, sort_order = $12, updated_at = $13
		WHERE id = $1`,
		c.ID(), c.Key(), c.Title(), c.IsActive(), card.CardBgURL, card.CardDuckURL, card.ClassCardDuck,
		card.TitleClass, card.ShowOverlay, card.BadgeText, string(card.BadgeSide), c.SortOrder(), now,
	)
	if err != nil {
		return infra.WrapPgErr(r.logger, "failed to update category", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "category not found", nil)
	}
	return nil
}

type ProductRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewProductRepository(dbtx db.DBTX, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{db: dbtx, logger: logger}
}

func (r *ProductRepository) Create(ctx context.Context, p *catalog.Product, now time.Time) error {
	card := p.Card()
	_, err := r.db.Exec(ctx, `
		INSERT INTO products (id, product_key, category_key, is_active, title1, title2, title_modal, price,
		                      card_bg_url, card_duck_url, order_img_url, class_card_duck, class_actions,
		                      class_new_badge, new_badge, accent_color, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::numeric, $9, $10, $11, $12, $13, $14, $15, $16, 1, $17, $17)`,
		p.ID(), p.Key(), p.CategoryKey(), p.IsActive(), card.Title1, card.Title2, card.TitleModal, p.Price().String(),
		card.CardBgURL, card.CardDuckURL, card.OrderImgURL, card.ClassCardDuck, card.ClassActions,
		card.ClassNewBadge, card.NewBadge, card.AccentColor, now,
	)
	if err != nil {
		return infra.WrapPgErr(r.logger, "failed to create product", err)
	}
	return nil
}

// Update reports KindNotFound when no row matches both id and version; the
// caller tells a missing product from a stale version.
func (r *ProductRepository) Update(ctx context.Context, p *catalog.Product, expectedVersion int, now time.Time) (int, error) {
	card := p.Card()
	var version int
	err := r.db.QueryRow(ctx, `
		UPDATE products
		SET product_key = $3, category_key = $4, is_active = $5, title1 = $6, title2 = $7, title_modal = $8,
		    price = $9::numeric, card_bg_url = $10, card_duck_url = $11, order_img_url = $12,
		    class_card_duck = $13, class_actions = $14, class_new_badge = $15, new_badge = $16,
		    accent_color = $17, version = version + 1, updated_at = $18
		WHERE id = $1 AND version = $2
		RETURNING version`,
		p.ID(), expectedVersion, p.Key(), p.CategoryKey(), p.IsActive(), card.Title1, card.Title2, card.TitleModal,
		p.Price().String(), card.CardBgURL, card.CardDuckURL, card.OrderImgURL,
		card.ClassCardDuck, card.ClassActions, card.ClassNewBadge, card.NewBadge,
		card.AccentColor, now,
	).Scan(&version)
	if err != nil {
		return 0, infra.WrapPgErr(r.logger, "failed to update product", err)
	}
	return version, nil
}

func (r *ProductRepository) AddFlavor(ctx context.Context, f *catalog.Flavor, now time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO flavors (id, product_id, flavor_key, label, is_active, gradient, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		f.ID(), f.ProductID(), f.Key(), f.Label(), f.IsActive(), f.Gradient().Slice(), f.SortOrder(), now,
	)
	if err != nil {
		return infra.WrapPgErr(r.logger, "failed to add flavor", err)
	}
	return nil
}

// Touch bumps the product version after a child row changed.
func (r *ProductRepository) Touch(ctx context.Context, productID uuid.UUID, now time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE products SET version = version + 1, updated_at = $2 WHERE id = $1`, productID, now)
	if err != nil {
		return infra.WrapPgErr(r.logger, "failed to touch product", err)
	}
	return nil
}

type PickupPointRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewPickupPointRepository(dbtx db.DBTX, logger *slog.Logger) *PickupPointRepository {
	return &PickupPointRepository{db: dbtx, logger: logger}
}

func (r *PickupPointRepository) Create(ctx context.Context, p *catalog.PickupPoint, now time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO pickup_points (id, key, title, address, sort_order, is_active, allowed_admin_telegram_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`,
		p.ID(), p.Key(), p.Title(), p.Address(), p.SortOrder(), p.IsActive(), p.AllowedAdminTelegramIDs(), now,
	)
	if err != nil {
		return infra.WrapPgErr(r.logger, "failed to create pickup point", err)
	}
	return nil
}

func (r *PickupPointRepository) Update(ctx context.Context, p *catalog.PickupPoint, now time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE pickup_points
		SET key = $2, title = $3, address = $4, sort_order = $5, is_active = $6, allowed_admin_telegram_ids = $7, updated_at = $8
		WHERE id = $1`,
		p.ID(), p.Key(), p.Title(), p.Address(), p.SortOrder(), p.IsActive(), p.AllowedAdminTelegramIDs(), now,
	)
	if err != nil {
		return infra.WrapPgErr(r.logger, "failed to update pickup point", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "pickup point not found", nil)
	}
	return nil
}
