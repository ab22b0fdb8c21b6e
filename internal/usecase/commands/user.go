package commands

import (
	"context"
	"log/slog"

	"tg-storefront/internal/domain/user"
	"tg-storefront/internal/infra"
	"tg-storefront/internal/pkg/clock"
	"tg-storefront/internal/pkg/errs"
	"tg-storefront/internal/usecase/shared"

	"github.com/google/uuid"
)

type RegisterUserRequest struct {
	TelegramID string
	Username   string
	FirstName  string
	LastName   string
	PhotoURL   string
	Ref        string
	// KeepProfile leaves an existing user's profile untouched (bot /start).
	KeepProfile bool
}

type RegisterUserResult struct {
	UserID       uuid.UUID
	TelegramID   string
	ReferralCode *string
	Created      bool
	Referred     bool
}

//go:generate mockgen -destination=../../../tests/mock/commands/commands.go -package=commandsmock tg-storefront/internal/usecase/commands CartCommands,CatalogCommands,ReferralCommands,SessionCommands,StockCommands,UserCommands

type UserCommands interface {
	RegisterUser(ctx context.Context, req RegisterUserRequest) (*RegisterUserResult, error)
}

type userUseCaseImpl struct {
	uow       shared.UnitOfWork
	referrals ReferralCommands
	clock     clock.Clock
	logger    *slog.Logger
}

func NewUserUseCase(uow shared.UnitOfWork, referrals ReferralCommands, clk clock.Clock, logger *slog.Logger) UserCommands {
	return &userUseCaseImpl{uow: uow, referrals: referrals, clock: clk, logger: logger}
}

// RegisterUser finds or creates the user. Only a newly created user is attributed
// to a referrer. Referral code and attribution failures are logged and do not fail
// the registration.
func (uc *userUseCaseImpl) RegisterUser(ctx context.Context, req RegisterUserRequest) (*RegisterUserResult, error) {
	tgID, err := user.NewTelegramID(req.TelegramID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	profile := user.NewProfile(req.Username, req.FirstName, req.LastName, req.PhotoURL)

	result := &RegisterUserResult{TelegramID: tgID.String()}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, err := tx.Reads().UserByTelegramID(ctx, tgID)
		if err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return err
		}

		if existing == nil {
			u, err := user.NewUser(tgID, profile, uc.clock.Now())
			if err != nil {
				return errs.Mark(err, errs.ErrValidation)
			}
			if err := tx.Users().Create(ctx, u); err != nil {
				return err
			}
			result.UserID = u.ID()
			result.Created = true
			return nil
		}

		result.UserID = existing.ID
		if req.KeepProfile {
			return nil
		}
		return tx.Users().UpdateProfile(ctx, existing.ID, existing.Profile.Merge(profile), uc.clock.Now())
	})
	if infra.IsKind(err, infra.KindDuplicateKey) {
		// lost a concurrent first-contact race; the other request created the row
		snap, rerr := uc.uow.CommandReads().UserByTelegramID(ctx, tgID)
		if rerr != nil {
			return nil, rerr
		}
		result.UserID = snap.ID
		result.Created = false
		err = nil
	}
	if err != nil {
		return nil, err
	}

	code, err := uc.referrals.EnsureCode(ctx, result.UserID)
	if err != nil {
		uc.logger.Warn("referral code not assigned", "telegram_id", tgID.String(), "error", err.Error())
	} else {
		result.ReferralCode = &code
	}

	if result.Created && req.Ref != "" {
		referred, err := uc.referrals.Attribute(ctx, AttributeRequest{
			InviteeID:         result.UserID,
			InviteeTelegramID: tgID,
			Ref:               req.Ref,
		})
		if err != nil {
			uc.logger.Warn("referral attribution failed", "telegram_id", tgID.String(), "error", err.Error())
		}
		result.Referred = referred
	}

	return result, nil
}
