//go:build unit

package commands_test

import (
	"context"
	"testing"

	"tg-storefront/internal/pkg/clock"
	"tg-storefront/internal/pkg/errs"
	"tg-storefront/internal/pkg/ptr"
	"tg-storefront/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stockFixture struct {
	store     *memStore
	uc        commands.StockCommands
	productID uuid.UUID
	flavorID  uuid.UUID
	pointID   uuid.UUID
}

func newStockFixture() stockFixture {
	store := newMemStore()
	p := store.addProduct("elf-bar")
	f := store.addFlavor(p.ID, "mango")
	pt := store.addPoint("center", "900")
	return stockFixture{
		store:     store,
		uc:        commands.NewStockUseCase(store, clock.NewMockClock(fixedNow), discardLogger()),
		productID: p.ID,
		flavorID:  f.ID(),
		pointID:   pt.ID,
	}
}

func (f stockFixture) request(qty int) commands.SetStockRequest {
	return commands.SetStockRequest{
		ProductID:   f.productID,
		FlavorID:    f.flavorID,
		PickupPoint: f.pointID.String(),
		TotalQty:    qty,
	}
}

func (f stockFixture) entry() (int, bool) {
	for k, w := range f.store.stock {
		if k.flavorID == f.flavorID && k.pointID == f.pointID {
			return w.TotalQty, true
		}
	}
	return 0, false
}

func TestSetStock(t *testing.T) {
	ctx := context.Background()

	t.Run("negative quantity is stored as zero", func(t *testing.T) {
		f := newStockFixture()

		require.NoError(t, f.uc.SetStock(ctx, f.request(-5)))
		qty, ok := f.entry()
		require.True(t, ok)
		assert.Zero(t, qty)
	})

	t.Run("second write overwrites the single entry", func(t *testing.T) {
		f := newStockFixture()

		require.NoError(t, f.uc.SetStock(ctx, f.request(10)))
		require.NoError(t, f.uc.SetStock(ctx, f.request(3)))

		assert.Len(t, f.store.stock, 1)
		qty, _ := f.entry()
		assert.Equal(t, 3, qty)
	})

	t.Run("reserved quantity is clamped and kept when omitted", func(t *testing.T) {
		f := newStockFixture()

		req := f.request(10)
		req.ReservedQty = ptr.Of(-2)
		require.NoError(t, f.uc.SetStock(ctx, req))
		for _, w := range f.store.stock {
			assert.Equal(t, 0, *w.ReservedQty)
		}

		req.ReservedQty = ptr.Of(4)
		require.NoError(t, f.uc.SetStock(ctx, req))
		require.NoError(t, f.uc.SetStock(ctx, f.request(8)))
		for _, w := range f.store.stock {
			assert.Equal(t, 8, w.TotalQty)
			assert.Equal(t, 4, *w.ReservedQty)
		}
	})

	t.Run("stamps the actor and time", func(t *testing.T) {
		f := newStockFixture()

		req := f.request(1)
		req.UpdatedBy = ptr.Of("900")
		require.NoError(t, f.uc.SetStock(ctx, req))
		for _, w := range f.store.stock {
			assert.Equal(t, "900", *w.UpdatedByTelegram)
			assert.Equal(t, fixedNow, w.At)
		}
	})

	t.Run("pickup point by key", func(t *testing.T) {
		f := newStockFixture()

		req := f.request(7)
		req.PickupPoint = "center"
		require.NoError(t, f.uc.SetStock(ctx, req))
		qty, ok := f.entry()
		require.True(t, ok)
		assert.Equal(t, 7, qty)
	})

	t.Run("manager alias resolves to the single allowed point", func(t *testing.T) {
		f := newStockFixture()

		req := f.request(4)
		req.PickupPoint = ""
		req.ManagerTelegramID = "900"
		require.NoError(t, f.uc.SetStock(ctx, req))
		qty, ok := f.entry()
		require.True(t, ok)
		assert.Equal(t, 4, qty)
	})

	t.Run("manager allowed on several points is rejected", func(t *testing.T) {
		f := newStockFixture()
		f.store.addPoint("north", "900")

		req := f.request(4)
		req.PickupPoint = ""
		req.ManagerTelegramID = "900"
		err := f.uc.SetStock(ctx, req)
		assert.True(t, errs.Is(err, errs.ErrValidation))
		assert.Empty(t, f.store.stock)
	})

	notFound := []struct {
		name   string
		mutate func(f stockFixture, r *commands.SetStockRequest)
		want   error
	}{
		{
			name:   "unknown product",
			mutate: func(_ stockFixture, r *commands.SetStockRequest) { r.ProductID = uuid.New() },
			want:   errs.ErrProductNotFound,
		},
		{
			name:   "unknown flavor",
			mutate: func(_ stockFixture, r *commands.SetStockRequest) { r.FlavorID = uuid.New() },
			want:   errs.ErrFlavorNotFound,
		},
		{
			name: "flavor of another product",
			mutate: func(f stockFixture, r *commands.SetStockRequest) {
				other := f.store.addProduct("other")
				r.FlavorID = f.store.addFlavor(other.ID, "mango").ID()
			},
			want: errs.ErrFlavorNotFound,
		},
		{
			name:   "unknown pickup point id",
			mutate: func(_ stockFixture, r *commands.SetStockRequest) { r.PickupPoint = uuid.NewString() },
			want:   errs.ErrPickupPointNotFound,
		},
		{
			name:   "unknown pickup point key",
			mutate: func(_ stockFixture, r *commands.SetStockRequest) { r.PickupPoint = "nowhere" },
			want:   errs.ErrPickupPointNotFound,
		},
		{
			name: "manager without points",
			mutate: func(_ stockFixture, r *commands.SetStockRequest) {
				r.PickupPoint = ""
				r.ManagerTelegramID = "12345"
			},
			want: errs.ErrPickupPointNotFound,
		},
	}
	for _, tc := range notFound {
		t.Run(tc.name, func(t *testing.T) {
			f := newStockFixture()
			req := f.request(1)
			tc.mutate(f, &req)

			err := f.uc.SetStock(ctx, req)
			assert.True(t, errs.Is(err, tc.want), "got %v", err)
			assert.Empty(t, f.store.stock)
		})
	}

	t.Run("quantity above the column range is a validation error", func(t *testing.T) {
		f := newStockFixture()

		err := f.uc.SetStock(ctx, f.request(1<<31))
		assert.True(t, errs.Is(err, errs.ErrValidation), "got %v", err)
		assert.Empty(t, f.store.stock)

		req := f.request(1)
		req.ReservedQty = ptr.Of(1 << 31)
		err = f.uc.SetStock(ctx, req)
		assert.True(t, errs.Is(err, errs.ErrValidation), "got %v", err)
		assert.Empty(t, f.store.stock)
	})

	t.Run("missing target", func(t *testing.T) {
		f := newStockFixture()
		req := f.request(1)
		req.PickupPoint = ""

		err := f.uc.SetStock(ctx, req)
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})
}
