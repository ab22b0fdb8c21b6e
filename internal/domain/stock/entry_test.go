//go:build unit

package stock_test

import (
	"testing"

	"tg-storefront/internal/domain/stock"
	"tg-storefront/internal/pkg/ptr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampQty(t *testing.T) {
	assert.Equal(t, 0, stock.ClampQty(-5))
	assert.Equal(t, 0, stock.ClampQty(0))
	assert.Equal(t, 12, stock.ClampQty(12))
}

func TestNewTarget(t *testing.T) {
	tests := []struct {
		name        string
		pointKey    string
		manager     string
		errIs       error
		wantManager bool
	}{
		{name: "pickup point key", pointKey: "central"},
		{name: "pickup point id", pointKey: "6f1c1f56-3f44-4b8e-9a55-0d7c2b0d1e11"},
		{name: "point key wins over manager", pointKey: "central", manager: "123"},
		{name: "manager alias", manager: " 123 ", wantManager: true},
		{name: "nothing given", errIs: stock.ErrMissingTarget},
		{name: "malformed point key", pointKey: "Central Store", errIs: stock.ErrInvalidPointKey},
		{name: "malformed manager", manager: "abc", errIs: stock.ErrInvalidManager},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := stock.NewTarget(tt.pointKey, tt.manager)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantManager, target.ByManager())
			_, byID := target.PickupPointID()
			assert.Equal(t, tt.pointKey != "" && target.PickupPointKey() == "", byID)
		})
	}
}

func TestNewUpdate_ClampsQuantities(t *testing.T) {
	target, err := stock.NewTarget("central", "")
	require.NoError(t, err)

	u, err := stock.NewUpdate(uuid.New(), uuid.New(), target, -5, ptr.Of(-1), ptr.Of("42"))
	require.NoError(t, err)

	assert.Equal(t, 0, u.TotalQty)
	require.NotNil(t, u.ReservedQty)
	assert.Equal(t, 0, *u.ReservedQty)
	assert.Equal(t, -3, stock.Available(2, 5))
}

func TestNewUpdate_ReservedOptional(t *testing.T) {
	target, err := stock.NewTarget("", "42")
	require.NoError(t, err)

	u, err := stock.NewUpdate(uuid.New(), uuid.New(), target, 7, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 7, u.TotalQty)
	assert.Nil(t, u.ReservedQty)
	assert.Equal(t, "42", u.Target.ManagerTelegramID())
}

func TestNewUpdate_RejectsQuantitiesAboveColumnRange(t *testing.T) {
	target, err := stock.NewTarget("central", "")
	require.NoError(t, err)

	_, err = stock.NewUpdate(uuid.New(), uuid.New(), target, stock.MaxQty+1, nil, nil)
	assert.ErrorIs(t, err, stock.ErrQtyTooLarge)

	_, err = stock.NewUpdate(uuid.New(), uuid.New(), target, 1, ptr.Of(stock.MaxQty+1), nil)
	assert.ErrorIs(t, err, stock.ErrQtyTooLarge)

	u, err := stock.NewUpdate(uuid.New(), uuid.New(), target, stock.MaxQty, ptr.Of(stock.MaxQty), nil)
	require.NoError(t, err)
	assert.Equal(t, stock.MaxQty, u.TotalQty)
}
