package readstore

import (
	"context"
	"log/slog"
	"time"

	"tg-storefront/internal/infra"
	"tg-storefront/internal/infra/db"
	"tg-storefront/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, telegram_id, username, first_name, last_name, photo_url,
	referral_code, referred_by, referred_by_code, referred_by_user_id, referred_at,
	referrals_count, created_at, updated_at`

type UserReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewUserReadStore(dbtx db.DBTX, logger *slog.Logger) *UserReadStore {
	return &UserReadStore{db: dbtx, logger: logger}
}

func (r *UserReadStore) FindByTelegramID(ctx context.Context, telegramID string) (*queries.UserView, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE telegram_id = $1`, telegramID)

	view, err := scanUserView(row)
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to find user by telegram id", err)
	}

	history, err := r.referralHistory(ctx, view.ID)
	if err != nil {
		return nil, err
	}
	view.Referral.Referrals = history
	return view, nil
}

func (r *UserReadStore) ListFirstPage(ctx context.Context, limit int) ([]*queries.UserListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, telegram_id, username, referral_code, referred_by, referrals_count, created_at
		FROM users
		ORDER BY created_at DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to list users", err)
	}
	return r.collectListItems(rows)
}

func (r *UserReadStore) ListKeyset(ctx context.Context, lastCreatedAt time.Time, lastID uuid.UUID, limit int) ([]*queries.UserListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, telegram_id, username, referral_code, referred_by, referrals_count, created_at
		FROM users
		WHERE (created_at, id) < ($1, $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3`, lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to list users", err)
	}
	return r.collectListItems(rows)
}

func (r *UserReadStore) referralHistory(ctx context.Context, inviterID uuid.UUID) ([]queries.ReferralEntryView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT invitee_telegram_id, created_at
		FROM referrals
		WHERE inviter_user_id = $1
		ORDER BY created_at, id`, inviterID)
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to load referral history", err)
	}

	history, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (queries.ReferralEntryView, error) {
		var e queries.ReferralEntryView
		err := row.Scan(&e.TelegramID, &e.At)
		return e, err
	})
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to scan referral history", err)
	}
	return history, nil
}

func (r *UserReadStore) collectListItems(rows pgx.Rows) ([]*queries.UserListItem, error) {
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.UserListItem, error) {
		var it queries.UserListItem
		err := row.Scan(&it.ID, &it.TelegramID, &it.Username, &it.ReferralCode, &it.ReferredBy, &it.ReferralsCount, &it.CreatedAt)
		return &it, err
	})
	if err != nil {
		return nil, infra.WrapPgErr(r.logger, "failed to scan users", err)
	}
	return items, nil
}

func scanUserView(row pgx.Row) (*queries.UserView, error) {
	var v queries.UserView
	err := row.Scan(
		&v.ID, &v.TelegramID, &v.Username, &v.FirstName, &v.LastName, &v.PhotoURL,
		&v.Referral.Code, &v.Referral.ReferredBy, &v.Referral.ReferredByCode,
		&v.Referral.ReferredByUserID, &v.Referral.ReferredAt,
		&v.Referral.ReferralsCount, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
