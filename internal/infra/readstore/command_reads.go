package readstore

import (
	"context"
	"log/slog"

	"tg-storefront/internal/domain/user"
	"tg-storefront/internal/infra"
	"tg-storefront/internal/infra/db"
	"tg-storefront/internal/pkg/pgconv"
	"tg-storefront/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CommandReadStore serves the lookups commands need for validation. It runs on
// whichever handle it is given, so inside a transaction it sees uncommitted writes.
type CommandReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewCommandReadStore(dbtx db.DBTX, logger *slog.Logger) *CommandReadStore {
	return &CommandReadStore{db: dbtx, logger: logger}
}

var _ shared.CommandReads = (*CommandReadStore)(nil)

func (r *CommandReadStore) UserByTelegramID(ctx context.Context, telegramID user.TelegramID) (*shared.UserSnapshot, error) {
	return r.findUser(ctx, `telegram_id = $1`, telegramID.String())
}

func (r *CommandReadStore) UserByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	return r.findUser(ctx, `id = $1`, id)
}

func (r *CommandReadStore) findUser(ctx context.Context, where string, arg any) (*shared.UserSnapshot, error) {
	var s shared.UserSnapshot
	err := r.db.QueryRow(ctx, `
		SELECT id, telegram_id, username, first_name, last_name, photo_url, referral_code, referred_by
		FROM users
		WHERE `+where, arg,
	).Scan(&s.ID, &s.TelegramID, &s.Profile.Username, &s.Profile.FirstName, &s.Profile.LastName,
		&s.Profile.PhotoURL, &s.ReferralCode, &s.ReferredBy)
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to find user", err)
	}
	return &s, nil
}

func (r *CommandReadStore) InviterByCode(ctx context.Context, code string) (*user.Inviter, error) {
	return r.findInviter(ctx, `referral_code = $1`, code)
}

func (r *CommandReadStore) InviterByTelegramID(ctx context.Context, telegramID string) (*user.Inviter, error) {
	return r.findInviter(ctx, `telegram_id = $1`, telegramID)
}

func (r *CommandReadStore) findInviter(ctx context.Context, where string, arg any) (*user.Inviter, error) {
	var inv user.Inviter
	err := r.db.QueryRow(ctx, `SELECT id, telegram_id, username, referral_code FROM users WHERE `+where, arg).
		Scan(&inv.ID, &inv.TelegramID, &inv.Username, &inv.Code)
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to find inviter", err)
	}
	return &inv, nil
}

func (r *CommandReadStore) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE referral_code = $1)`, code)
}

func (r *CommandReadStore) CategoryByID(ctx context.Context, id uuid.UUID) (*shared.CategorySnapshot, error) {
	var c shared.CategorySnapshot
	err := r.db.QueryRow(ctx, `
		SELECT id, key, title, is_active, card_bg_url, card_duck_url, class_card_duck, title_class,
		       show_overlay, badge_text, badge_side, sort_order
		FROM categories
		WHERE id = $1`, id,
	).Scan(&c.ID, &c.Key, &c.Title, &c.IsActive, &c.CardBgURL, &c.CardDuckURL, &c.ClassCardDuck, &c.TitleClass,
		&c.ShowOverlay, &c.BadgeText, &c.BadgeSide, &c.SortOrder)
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to find category", err)
	}
	return &c, nil
}

func (r *CommandReadStore) CategoryKeyExists(ctx context.Context, key string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE key = $1)`, key)
}

func (r *CommandReadStore) ProductByID(ctx context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	var p shared.ProductSnapshot
	var price string
	err := r.db.QueryRow(ctx, `
		SELECT id, product_key, category_key, is_active, title1, title2, title_modal, price::text,
		       card_bg_url, card_duck_url, order_img_url, class_card_duck, class_actions, class_new_badge,
		       new_badge, accent_color, version
		FROM products
		WHERE id = $1`, id,
	).Scan(&p.ID, &p.Key, &p.CategoryKey, &p.IsActive, &p.Title1, &p.Title2, &p.TitleModal, &price,
		&p.CardBgURL, &p.CardDuckURL, &p.OrderImgURL, &p.ClassCardDuck, &p.ClassActions, &p.ClassNewBadge,
		&p.NewBadge, &p.AccentColor, &p.Version)
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to find product", err)
	}
	if p.Price, err = pgconv.DecimalFromText(price); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to parse product price", err)
	}
	return &p, nil
}

func (r *CommandReadStore) ProductKeyExists(ctx context.Context, key string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE product_key = $1)`, key)
}

func (r *CommandReadStore) FlavorByID(ctx context.Context, id uuid.UUID) (*shared.FlavorSnapshot, error) {
	var f shared.FlavorSnapshot
	err := r.db.QueryRow(ctx, `SELECT id, product_id, flavor_key FROM flavors WHERE id = $1`, id).
		Scan(&f.ID, &f.ProductID, &f.Key)
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to find flavor", err)
	}
	return &f, nil
}

func (r *CommandReadStore) FlavorKeyExists(ctx context.Context, productID uuid.UUID, key string) (bool, error) {
	return r.exists(ctx,
		`SELECT EXISTS (SELECT 1 FROM flavors WHERE product_id = $1 AND lower(flavor_key) = lower($2))`,
		productID, key)
}

func (r *CommandReadStore) FlavorCount(ctx context.Context, productID uuid.UUID) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM flavors WHERE product_id = $1`, productID).Scan(&n); err != nil {
		return 0, infra.WrapPgErr(r.logger, "failed to count flavors", err)
	}
	return n, nil
}

func (r *CommandReadStore) PickupPointByID(ctx context.Context, id uuid.UUID) (*shared.PickupPointSnapshot, error) {
	return r.findPickupPoint(ctx, `id = $1`, id)
}

func (r *CommandReadStore) PickupPointByKey(ctx context.Context, key string) (*shared.PickupPointSnapshot, error) {
	return r.findPickupPoint(ctx, `key = $1`, key)
}

func (r *CommandReadStore) findPickupPoint(ctx context.Context, where string, arg any) (*shared.PickupPointSnapshot, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, key, title, address, sort_order, is_active, allowed_admin_telegram_ids
		FROM pickup_points
		WHERE `+where, arg)
	p, err := scanPickupPointSnapshot(row)
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to find pickup point", err)
	}
	return &p, nil
}

func (r *CommandReadStore) ActivePickupPointsByManager(ctx context.Context, telegramID string) ([]shared.PickupPointSnapshot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, key, title, address, sort_order, is_active, allowed_admin_telegram_ids
		FROM pickup_points
		WHERE is_active AND $1 = ANY(allowed_admin_telegram_ids)
		ORDER BY sort_order, key`, telegramID)
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to find pickup points by manager", err)
	}
	points, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (shared.PickupPointSnapshot, error) {
		return scanPickupPointSnapshot(row)
	})
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to scan pickup points", err)
	}
	return points, nil
}

func (r *CommandReadStore) PickupPointKeyExists(ctx context.Context, key string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM pickup_points WHERE key = $1)`, key)
}

func (r *CommandReadStore) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var ok bool
	if err := r.db.QueryRow(ctx, query, args...).Scan(&ok); err != nil {
		return false, infra.WrapPgErr(r.logger, "failed to check existence", err)
	}
	return ok, nil
}

func scanPickupPointSnapshot(row pgx.Row) (shared.PickupPointSnapshot, error) {
	var p shared.PickupPointSnapshot
	err := row.Scan(&p.ID, &p.Key, &p.Title, &p.Address, &p.SortOrder, &p.IsActive, &p.AllowedAdminTelegramIDs)
	return p, err
}
