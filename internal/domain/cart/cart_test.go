//go:build unit

package cart_test

import (
	"testing"

	"tg-storefront/internal/domain/cart"
	"tg-storefront/internal/pkg/ptr"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(product, flavor string, qty int, price string) cart.Item {
	return cart.Item{
		ProductKey: product,
		FlavorKey:  flavor,
		Qty:        qty,
		UnitPrice:  decimal.RequireFromString(price),
	}
}

func TestNewCart(t *testing.T) {
	t.Run("merges repeated lines", func(t *testing.T) {
		c, err := cart.NewCart("42", []cart.Item{
			item("duck", "mango", 1, "10.50"),
			item("duck", "Mango", 2, "11.00"),
			item("duck", "kiwi", 1, "10.50"),
		}, cart.Checkout{})
		require.NoError(t, err)

		got := make([]string, 0, len(c.Items()))
		for _, it := range c.Items() {
			got = append(got, it.FlavorKey)
		}
		if diff := cmp.Diff([]string{"mango", "kiwi"}, got); diff != "" {
			t.Errorf("lines mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, 3, c.Items()[0].Qty)
		assert.True(t, c.Items()[0].UnitPrice.Equal(decimal.RequireFromString("10.50")))
		assert.True(t, c.Total().Equal(decimal.RequireFromString("42")))
	})

	t.Run("empty cart", func(t *testing.T) {
		c, err := cart.NewCart("42", nil, cart.Checkout{})
		require.NoError(t, err)
		assert.Empty(t, c.Items())
		assert.True(t, c.Total().IsZero())
	})

	tests := []struct {
		name  string
		items []cart.Item
		errIs error
	}{
		{name: "zero qty", items: []cart.Item{item("duck", "mango", 0, "1")}, errIs: cart.ErrInvalidQty},
		{name: "negative price", items: []cart.Item{item("duck", "mango", 1, "-1")}, errIs: cart.ErrNegativeUnitPrice},
		{name: "missing flavor", items: []cart.Item{item("duck", " ", 1, "1")}, errIs: cart.ErrMissingItemKey},
		{name: "qty above column range", items: []cart.Item{item("duck", "mango", cart.MaxQty+1, "1")}, errIs: cart.ErrQtyTooLarge},
		{
			name:  "merged qty above column range",
			items: []cart.Item{item("duck", "mango", cart.MaxQty, "1"), item("duck", "mango", 1, "1")},
			errIs: cart.ErrQtyTooLarge,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := cart.NewCart("42", tt.items, cart.Checkout{})
			require.Nil(t, c)
			require.ErrorIs(t, err, tt.errIs)
		})
	}
}

func TestNewCheckout(t *testing.T) {
	tests := []struct {
		name   string
		typ    *string
		method *string
		errIs  error
	}{
		{name: "nothing chosen"},
		{name: "pickup", typ: ptr.Of("pickup")},
		{name: "courier delivery", typ: ptr.Of("delivery"), method: ptr.Of("courier")},
		{name: "blank values are unset", typ: ptr.Of(""), method: ptr.Of("")},
		{name: "unknown type", typ: ptr.Of("drone"), errIs: cart.ErrInvalidDeliveryType},
		{name: "unknown method", typ: ptr.Of("delivery"), method: ptr.Of("pigeon"), errIs: cart.ErrInvalidDeliveryMethod},
		{name: "method on pickup", typ: ptr.Of("pickup"), method: ptr.Of("inpost"), errIs: cart.ErrMethodWithoutDelivery},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cart.NewCheckout(tt.typ, tt.method, nil)
			if tt.errIs == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.errIs)
		})
	}
}
