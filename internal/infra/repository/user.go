package repository

import (
	"context"
	"log/slog"
	"time"

	"tg-storefront/internal/domain/user"
	"tg-storefront/internal/infra"
	"tg-storefront/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewUserRepository(dbtx db.DBTX, logger *slog.Logger) *UserRepository {
	return &UserRepository{db: dbtx, logger: logger}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	p := u.Profile()
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, telegram_id, username, first_name, last_name, photo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
		u.ID(), u.TelegramID().String(), p.Username, p.FirstName, p.LastName, p.PhotoURL, u.CreatedAt(),
	)
	if err != nil {
		return infra.WrapPgErr(r.logger, "failed to create user", err)
	}
	return nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, profile user.Profile, now time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET username = $2, first_name = $3, last_name = $4, photo_url = $5, updated_at = $6
		WHERE id = $1`,
		id, profile.Username, profile.FirstName, profile.LastName, profile.PhotoURL, now,
	)
	if err != nil {
		return infra.WrapPgErr(r.logger, "failed to update user profile", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "user not found", nil)
	}
	return nil
}

// A duplicate code surfaces as KindDuplicateKey from the unique index.
func (r *UserRepository) SetReferralCode(ctx context.Context, id uuid.UUID, code string, now time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET referral_code = $2, updated_at = $3
		WHERE id = $1 AND referral_code IS NULL`,
		id, code, now,
	)
	if err != nil {
		return false, infra.WrapPgErr(r.logger, "failed to set referral code", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *UserRepository) ApplyAttribution(ctx context.Context, a user.Attribution) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET referred_by = $2, referred_by_code = $3, referred_by_user_id = $4, referred_at = $5, updated_at = $5
		WHERE id = $1 AND referred_by IS NULL`,
		a.InviteeID, a.Inviter.ReferredByLabel(), a.Inviter.Code, a.Inviter.ID, a.At,
	)
	if err != nil {
		return false, infra.WrapPgErr(r.logger, "failed to apply referral attribution", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *UserRepository) IncrementReferrals(ctx context.Context, inviterID uuid.UUID, now time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET referrals_count = referrals_count + 1, updated_at = $2
		WHERE id = $1`,
		inviterID, now,
	)
	if err != nil {
		return infra.WrapPgErr(r.logger, "failed to increment referrals", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "inviter not found", nil)
	}
	return nil
}

type ReferralRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewReferralRepository(dbtx db.DBTX, logger *slog.Logger) *ReferralRepository {
	return &ReferralRepository{db: dbtx, logger: logger}
}

// Append records one history row; the unique invitee column rejects a second attribution.
func (r *ReferralRepository) Append(ctx context.Context, a user.Attribution) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO referrals (id, inviter_user_id, invitee_user_id, invitee_telegram_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), a.Inviter.ID, a.InviteeID, a.InviteeTelegramID.String(), a.At,
	)
	if err != nil {
		return infra.WrapPgErr(r.logger, "failed to append referral", err)
	}
	return nil
}
