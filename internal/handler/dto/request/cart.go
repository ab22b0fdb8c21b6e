package request

import (
	"tg-storefront/internal/domain/cart"
	"tg-storefront/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartItemRequest struct {
	ProductKey  string          `json:"productKey" binding:"required,max=64"`
	FlavorKey   string          `json:"flavorKey" binding:"required,max=64"`
	Qty         int             `json:"qty" binding:"required,min=1,max=2147483647"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	FlavorLabel string          `json:"flavorLabel" binding:"max=128"`
	Gradient    []string        `json:"gradient" binding:"omitempty,max=2"`
}

type PutCartRequest struct {
	TelegramID             TelegramID        `json:"telegramId" binding:"required,telegramid"`
	Items                  []CartItemRequest `json:"items" binding:"max=100,dive"`
	CheckoutPickupPointID  *uuid.UUID        `json:"checkoutPickupPointId"`
	CheckoutDeliveryType   *string           `json:"checkoutDeliveryType" binding:"omitempty,oneof=delivery pickup"`
	CheckoutDeliveryMethod *string           `json:"checkoutDeliveryMethod" binding:"omitempty,oneof=courier inpost"`
}

func (r *PutCartRequest) ToCommand() commands.PutCartRequest {
	items := make([]cart.Item, len(r.Items))
	for i, it := range r.Items {
		items[i] = cart.Item{
			ProductKey:  it.ProductKey,
			FlavorKey:   it.FlavorKey,
			Qty:         it.Qty,
			UnitPrice:   it.UnitPrice,
			FlavorLabel: it.FlavorLabel,
			Gradient:    it.Gradient,
		}
	}
	return commands.PutCartRequest{
		TelegramID:             r.TelegramID.String(),
		Items:                  items,
		CheckoutDeliveryType:   r.CheckoutDeliveryType,
		CheckoutDeliveryMethod: r.CheckoutDeliveryMethod,
		CheckoutPickupPointID:  r.CheckoutPickupPointID,
	}
}
