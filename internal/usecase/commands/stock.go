package commands

import (
	"context"
	"log/slog"

	"tg-storefront/internal/domain/stock"
	"tg-storefront/internal/infra"
	"tg-storefront/internal/pkg/clock"
	"tg-storefront/internal/pkg/errs"
	"tg-storefront/internal/usecase/shared"

	"github.com/google/uuid"
)

type SetStockRequest struct {
	ProductID         uuid.UUID
	FlavorID          uuid.UUID
	PickupPoint       string
	ManagerTelegramID string
	TotalQty          int
	ReservedQty       *int
	UpdatedBy         *string
}

type StockCommands interface {
	// SetStock overwrites the stock entry of one flavor at one pickup point.
	SetStock(ctx context.Context, req SetStockRequest) error
}

type stockUseCaseImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
}

func NewStockUseCase(uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) StockCommands {
	return &stockUseCaseImpl{uow: uow, clock: clk, logger: logger}
}

func (uc *stockUseCaseImpl) SetStock(ctx context.Context, req SetStockRequest) error {
	target, err := stock.NewTarget(req.PickupPoint, req.ManagerTelegramID)
	if err != nil {
		return errs.Mark(err, errs.ErrValidation)
	}
	update, err := stock.NewUpdate(req.ProductID, req.FlavorID, target, req.TotalQty, req.ReservedQty, req.UpdatedBy)
	if err != nil {
		return errs.Mark(err, errs.ErrValidation)
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		reads := tx.Reads()

		if _, err := reads.ProductByID(ctx, update.ProductID); err != nil {
			return notFoundAs(err, errs.ErrProductNotFound)
		}

		flavor, err := reads.FlavorByID(ctx, update.FlavorID)
		if err != nil {
			return notFoundAs(err, errs.ErrFlavorNotFound)
		}
		if flavor.ProductID != update.ProductID {
			return errs.ErrFlavorNotFound
		}

		pointID, err := uc.resolvePoint(ctx, reads, update.Target)
		if err != nil {
			return err
		}

		err = tx.Stock().Upsert(ctx, shared.StockWrite{
			FlavorID:          update.FlavorID,
			PickupPointID:     pointID,
			TotalQty:          update.TotalQty,
			ReservedQty:       update.ReservedQty,
			UpdatedByTelegram: update.ActorTelegramID,
			At:                uc.clock.Now(),
		})
		if err != nil {
			return notFoundAs(err, errs.ErrPickupPointNotFound)
		}

		uc.logger.Info("stock updated",
			"product_id", update.ProductID,
			"flavor_id", update.FlavorID,
			"pickup_point_id", pointID,
			"total_qty", update.TotalQty)
		return nil
	})
}

func (uc *stockUseCaseImpl) resolvePoint(ctx context.Context, reads shared.CommandReads, target stock.Target) (uuid.UUID, error) {
	if id, ok := target.PickupPointID(); ok {
		if _, err := reads.PickupPointByID(ctx, id); err != nil {
			return uuid.Nil, notFoundAs(err, errs.ErrPickupPointNotFound)
		}
		return id, nil
	}

	if !target.ByManager() {
		point, err := reads.PickupPointByKey(ctx, target.PickupPointKey())
		if err != nil {
			return uuid.Nil, notFoundAs(err, errs.ErrPickupPointNotFound)
		}
		return point.ID, nil
	}

	points, err := reads.ActivePickupPointsByManager(ctx, target.ManagerTelegramID())
	if err != nil {
		return uuid.Nil, err
	}
	switch len(points) {
	case 0:
		return uuid.Nil, errs.ErrPickupPointNotFound
	case 1:
		return points[0].ID, nil
	default:
		return uuid.Nil, errs.Mark(
			errs.Newf("manager %s is allowed on %d pickup points, pass pickupPointId", target.ManagerTelegramID(), len(points)),
			errs.ErrValidation)
	}
}

// notFoundAs maps a repository NotFound onto the given domain sentinel and
// duplicate keys onto ErrDuplicateKey. Other errors pass through.
func notFoundAs(err error, sentinel error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound), infra.IsKind(err, infra.KindForeignKeyViolated):
		return sentinel
	case infra.IsKind(err, infra.KindDuplicateKey):
		return errs.Mark(err, errs.ErrDuplicateKey)
	default:
		return err
	}
}
