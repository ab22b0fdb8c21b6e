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

var ErrReferralCodeExhausted = errs.New("could not assign a unique referral code")

type AttributeRequest struct {
	InviteeID         uuid.UUID
	InviteeTelegramID user.TelegramID
	Ref               string
}

type ReferralCommands interface {
	// EnsureCode returns the user's referral code, assigning one on first call.
	EnsureCode(ctx context.Context, userID uuid.UUID) (string, error)
	// Attribute links the invitee to the owner of Ref. It reports whether a new link was written.
	Attribute(ctx context.Context, req AttributeRequest) (bool, error)
}

type referralUseCaseImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	codes  user.CodeGenerator
	logger *slog.Logger
}

func NewReferralUseCase(uow shared.UnitOfWork, clk clock.Clock, codes user.CodeGenerator, logger *slog.Logger) ReferralCommands {
	return &referralUseCaseImpl{uow: uow, clock: clk, codes: codes, logger: logger}
}

func (uc *referralUseCaseImpl) EnsureCode(ctx context.Context, userID uuid.UUID) (string, error) {
	reads := uc.uow.CommandReads()

	snap, err := reads.UserByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return "", errs.ErrUserNotFound
		}
		return "", err
	}
	if snap.ReferralCode != nil {
		return *snap.ReferralCode, nil
	}

	for attempt := 1; attempt <= user.ReferralCodeAttempts; attempt++ {
		code, err := uc.codes.Generate()
		if err != nil {
			return "", errs.Wrap(err, "generate referral code")
		}

		taken, err := reads.ReferralCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if taken {
			uc.logger.Debug("referral code collision", "attempt", attempt)
			continue
		}

		var wrote bool
		err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			var werr error
			wrote, werr = tx.Users().SetReferralCode(ctx, userID, code, uc.clock.Now())
			return werr
		})
		if infra.IsKind(err, infra.KindDuplicateKey) {
			// another user took the code between probe and write
			uc.logger.Debug("referral code lost race", "attempt", attempt)
			continue
		}
		if err != nil {
			return "", err
		}
		if wrote {
			return code, nil
		}

		// a concurrent request assigned a code first
		snap, err = reads.UserByID(ctx, userID)
		if err != nil {
			return "", err
		}
		if snap.ReferralCode != nil {
			return *snap.ReferralCode, nil
		}
	}

	return "", ErrReferralCodeExhausted
}

func (uc *referralUseCaseImpl) Attribute(ctx context.Context, req AttributeRequest) (bool, error) {
	ref := user.ParseRef(req.Ref)
	if ref.IsEmpty() {
		return false, nil
	}

	inviter, err := uc.resolveInviter(ctx, ref)
	if err != nil || inviter == nil {
		return false, err
	}

	attribution, ok := user.NewAttribution(req.InviteeID, req.InviteeTelegramID, *inviter, uc.clock.Now())
	if !ok {
		return false, nil
	}

	var applied bool
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		applied = false

		wrote, err := tx.Users().ApplyAttribution(ctx, attribution)
		if err != nil || !wrote {
			return err
		}
		if err := tx.Referrals().Append(ctx, attribution); err != nil {
			return err
		}
		if err := tx.Users().IncrementReferrals(ctx, attribution.Inviter.ID, attribution.At); err != nil {
			return err
		}
		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if applied {
		uc.logger.Info("referral attributed",
			"invitee", req.InviteeTelegramID.String(),
			"inviter", inviter.TelegramID)
	}
	return applied, nil
}

// resolveInviter tries the ref as a referral code, then as a raw telegram id.
// A ref that matches nobody resolves to nil without error.
func (uc *referralUseCaseImpl) resolveInviter(ctx context.Context, ref user.Ref) (*user.Inviter, error) {
	reads := uc.uow.CommandReads()

	if user.ValidateReferralCode(ref.Code()) == nil {
		inviter, err := reads.InviterByCode(ctx, ref.Code())
		if err == nil {
			return inviter, nil
		}
		if !infra.IsKind(err, infra.KindNotFound) {
			return nil, err
		}
	}

	tgID, ok := ref.TelegramID()
	if !ok {
		return nil, nil
	}
	inviter, err := reads.InviterByTelegramID(ctx, tgID.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return inviter, nil
}
