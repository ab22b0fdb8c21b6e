package queries

import (
	"context"

	"tg-storefront/internal/domain/user"
	"tg-storefront/internal/infra"
	"tg-storefront/internal/pkg/errs"
)

type CartQueries interface {
	GetCart(ctx context.Context, telegramID string) (*CartView, error)
}

type CartReadStore interface {
	FindByTelegramID(ctx context.Context, telegramID string) (*CartView, error)
}

type cartQueriesImpl struct {
	readStore CartReadStore
}

func NewCartQueries(readStore CartReadStore) CartQueries {
	return &cartQueriesImpl{readStore: readStore}
}

// GetCart never reports not-found: a user without a stored cart has an empty one.
func (q *cartQueriesImpl) GetCart(ctx context.Context, telegramID string) (*CartView, error) {
	tgID, err := user.NewTelegramID(telegramID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	c, err := q.readStore.FindByTelegramID(ctx, tgID.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return EmptyCart(tgID.String()), nil
		}
		return nil, err
	}
	return c, nil
}

func EmptyCart(telegramID string) *CartView {
	return &CartView{
		TelegramID: telegramID,
		Items:      []CartItemView{},
	}
}
