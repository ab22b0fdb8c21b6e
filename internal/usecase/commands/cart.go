package commands

import (
	"context"
	"log/slog"

	"tg-storefront/internal/domain/cart"
	"tg-storefront/internal/domain/user"
	"tg-storefront/internal/pkg/clock"
	"tg-storefront/internal/pkg/errs"
	"tg-storefront/internal/usecase/shared"

	"github.com/google/uuid"
)

type PutCartRequest struct {
	TelegramID             string
	Items                  []cart.Item
	CheckoutDeliveryType   *string
	CheckoutDeliveryMethod *string
	CheckoutPickupPointID  *uuid.UUID
}

type CartCommands interface {
	// PutCart replaces the stored cart of the user as a whole.
	PutCart(ctx context.Context, req PutCartRequest) error
}

type cartUseCaseImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
}

func NewCartUseCase(uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) CartCommands {
	return &cartUseCaseImpl{uow: uow, clock: clk, logger: logger}
}

func (uc *cartUseCaseImpl) PutCart(ctx context.Context, req PutCartRequest) error {
	tgID, err := user.NewTelegramID(req.TelegramID)
	if err != nil {
		return errs.Mark(err, errs.ErrValidation)
	}
	checkout, err := cart.NewCheckout(req.CheckoutDeliveryType, req.CheckoutDeliveryMethod, req.CheckoutPickupPointID)
	if err != nil {
		return errs.Mark(err, errs.ErrValidation)
	}
	c, err := cart.NewCart(tgID.String(), req.Items, checkout)
	if err != nil {
		return errs.Mark(err, errs.ErrValidation)
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if id := c.Checkout().PickupPointID; id != nil {
			if _, err := tx.Reads().PickupPointByID(ctx, *id); err != nil {
				return notFoundAs(err, errs.ErrPickupPointNotFound)
			}
		}
		if err := tx.Carts().Replace(ctx, c, uc.clock.Now()); err != nil {
			return notFoundAs(err, errs.ErrPickupPointNotFound)
		}
		uc.logger.Debug("cart replaced", "telegram_id", c.TelegramID(), "items", len(c.Items()))
		return nil
	})
}
