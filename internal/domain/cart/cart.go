package cart

import (
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQty            = errors.New("qty must be at least 1")
	ErrQtyTooLarge           = errors.New("qty exceeds the maximum of 2147483647")
	ErrNegativeUnitPrice     = errors.New("unitPrice cannot be negative")
	ErrMissingItemKey        = errors.New("productKey and flavorKey are required")
	ErrInvalidDeliveryType   = errors.New("checkoutDeliveryType must be delivery or pickup")
	ErrInvalidDeliveryMethod = errors.New("checkoutDeliveryMethod must be courier or inpost")
	ErrMethodWithoutDelivery = errors.New("checkoutDeliveryMethod requires delivery type")
)

// MaxQty is the largest line quantity the cart_items column holds.
const MaxQty = math.MaxInt32

type DeliveryType string

const (
	DeliveryTypeDelivery DeliveryType = "delivery"
	DeliveryTypePickup   DeliveryType = "pickup"
)

type DeliveryMethod string

const (
	DeliveryMethodCourier DeliveryMethod = "courier"
	DeliveryMethodInpost  DeliveryMethod = "inpost"
)

// Item is one (product, flavor) line. The price is a snapshot taken when the line was added.
type Item struct {
	ProductKey  string
	FlavorKey   string
	Qty         int
	UnitPrice   decimal.Decimal
	FlavorLabel string
	Gradient    []string
}

func (i Item) lineKey() string {
	return i.ProductKey + "\x00" + strings.ToLower(i.FlavorKey)
}

type Checkout struct {
	DeliveryType   *DeliveryType
	DeliveryMethod *DeliveryMethod
	PickupPointID  *uuid.UUID
}

func NewCheckout(deliveryType, deliveryMethod *string, pickupPointID *uuid.UUID) (Checkout, error) {
	var c Checkout
	if deliveryType != nil && *deliveryType != "" {
		dt := DeliveryType(*deliveryType)
		if dt != DeliveryTypeDelivery && dt != DeliveryTypePickup {
			return Checkout{}, ErrInvalidDeliveryType
		}
		c.DeliveryType = &dt
	}
	if deliveryMethod != nil && *deliveryMethod != "" {
		dm := DeliveryMethod(*deliveryMethod)
		if dm != DeliveryMethodCourier && dm != DeliveryMethodInpost {
			return Checkout{}, ErrInvalidDeliveryMethod
		}
		if c.DeliveryType == nil || *c.DeliveryType != DeliveryTypeDelivery {
			return Checkout{}, ErrMethodWithoutDelivery
		}
		c.DeliveryMethod = &dm
	}
	c.PickupPointID = pickupPointID
	return c, nil
}

// Cart is the full replacement state written by PUT /cart.
type Cart struct {
	telegramID string
	items      []Item
	checkout   Checkout
}

// NewCart validates items and collapses repeated (product, flavor) lines into
// one, summing quantities and keeping the first line's price snapshot.
func NewCart(telegramID string, items []Item, checkout Checkout) (*Cart, error) {
	merged := make([]Item, 0, len(items))
	index := make(map[string]int, len(items))

	for _, it := range items {
		it.ProductKey = strings.TrimSpace(it.ProductKey)
		it.FlavorKey = strings.TrimSpace(it.FlavorKey)
		if it.ProductKey == "" || it.FlavorKey == "" {
			return nil, ErrMissingItemKey
		}
		if it.Qty < 1 {
			return nil, ErrInvalidQty
		}
		if it.Qty > MaxQty {
			return nil, ErrQtyTooLarge
		}
		if it.UnitPrice.IsNegative() {
			return nil, ErrNegativeUnitPrice
		}
		if it.Gradient == nil {
			it.Gradient = []string{}
		}

		if pos, ok := index[it.lineKey()]; ok {
			if merged[pos].Qty > MaxQty-it.Qty {
				return nil, ErrQtyTooLarge
			}
			merged[pos].Qty += it.Qty
			continue
		}
		index[it.lineKey()] = len(merged)
		merged = append(merged, it)
	}

	return &Cart{telegramID: telegramID, items: merged, checkout: checkout}, nil
}

func (c *Cart) TelegramID() string { return c.telegramID }
func (c *Cart) Items() []Item      { return c.items }
func (c *Cart) Checkout() Checkout { return c.checkout }

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Qty))))
	}
	return total
}
