//go:build unit

package commands_test

import (
	"context"
	"testing"

	"tg-storefront/internal/domain/cart"
	"tg-storefront/internal/pkg/clock"
	"tg-storefront/internal/pkg/errs"
	"tg-storefront/internal/pkg/ptr"
	"tg-storefront/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutCart(t *testing.T) {
	ctx := context.Background()
	item := cart.Item{ProductKey: "elf-bar", FlavorKey: "mango", Qty: 2, UnitPrice: decimal.RequireFromString("12.50")}

	t.Run("replaces the whole cart", func(t *testing.T) {
		store := newMemStore()
		point := store.addPoint("center")
		uc := commands.NewCartUseCase(store, clock.NewMockClock(fixedNow), discardLogger())

		require.NoError(t, uc.PutCart(ctx, commands.PutCartRequest{TelegramID: "111", Items: []cart.Item{item, item}}))
		require.NoError(t, uc.PutCart(ctx, commands.PutCartRequest{
			TelegramID:            "111",
			Items:                 []cart.Item{item},
			CheckoutDeliveryType:  ptr.Of("pickup"),
			CheckoutPickupPointID: &point.ID,
		}))

		stored := store.carts["111"]
		require.NotNil(t, stored)
		require.Len(t, stored.Items(), 1)
		assert.Equal(t, 2, stored.Items()[0].Qty)
		assert.Equal(t, point.ID, *stored.Checkout().PickupPointID)
	})

	t.Run("unknown pickup point", func(t *testing.T) {
		store := newMemStore()
		uc := commands.NewCartUseCase(store, clock.NewMockClock(fixedNow), discardLogger())

		err := uc.PutCart(ctx, commands.PutCartRequest{TelegramID: "111", Items: []cart.Item{item}, CheckoutPickupPointID: ptr.Of(uuid.New())})
		assert.True(t, errs.Is(err, errs.ErrPickupPointNotFound))
		assert.Empty(t, store.carts)
	})

	invalid := []struct {
		name string
		req  commands.PutCartRequest
	}{
		{name: "bad telegram id", req: commands.PutCartRequest{TelegramID: "abc"}},
		{name: "zero qty", req: commands.PutCartRequest{TelegramID: "111", Items: []cart.Item{{ProductKey: "a", FlavorKey: "b", Qty: 0}}}},
		{name: "unknown delivery type", req: commands.PutCartRequest{TelegramID: "111", CheckoutDeliveryType: ptr.Of("drone")}},
		{name: "method without delivery", req: commands.PutCartRequest{TelegramID: "111", CheckoutDeliveryType: ptr.Of("pickup"), CheckoutDeliveryMethod: ptr.Of("courier")}},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore()
			uc := commands.NewCartUseCase(store, clock.NewMockClock(fixedNow), discardLogger())

			err := uc.PutCart(ctx, tc.req)
			assert.True(t, errs.Is(err, errs.ErrValidation))
			assert.Empty(t, store.carts)
		})
	}
}
