package request

import (
	"tg-storefront/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type AdminSessionRequest struct {
	TelegramID TelegramID `json:"telegramId" binding:"required,telegramid"`
}

// CategoryRequest serves both create and patch; absent fields keep their value on patch.
type CategoryRequest struct {
	Key           *string `json:"key" binding:"omitempty,slugkey,max=48"`
	Title         *string `json:"title" binding:"omitempty,max=128"`
	IsActive      *bool   `json:"isActive"`
	CardBgURL     *string `json:"cardBgUrl" binding:"omitempty,max=2048"`
	CardDuckURL   *string `json:"cardDuckUrl" binding:"omitempty,max=2048"`
	ClassCardDuck *string `json:"classCardDuck" binding:"omitempty,max=128"`
	TitleClass    *string `json:"titleClass" binding:"omitempty,max=128"`
	ShowOverlay   *bool   `json:"showOverlay"`
	BadgeText     *string `json:"badgeText" binding:"omitempty,max=64"`
	BadgeSide     *string `json:"badgeSide" binding:"omitempty,oneof=left right"`
	SortOrder     *int    `json:"sortOrder"`
}

func (r *CategoryRequest) ToFields() (commands.CategoryFields, error) {
	var f commands.CategoryFields
	err := copier.Copy(&f, r)
	return f, err
}

type ProductRequest struct {
	ProductKey    *string          `json:"productKey" binding:"omitempty,slugkey,max=48"`
	CategoryKey   *string          `json:"categoryKey" binding:"omitempty,max=48"`
	IsActive      *bool            `json:"isActive"`
	Title1        *string          `json:"title1" binding:"omitempty,max=128"`
	Title2        *string          `json:"title2" binding:"omitempty,max=128"`
	TitleModal    *string          `json:"titleModal" binding:"omitempty,max=256"`
	Price         *decimal.Decimal `json:"price"`
	CardBgURL     *string          `json:"cardBgUrl" binding:"omitempty,max=2048"`
	CardDuckURL   *string          `json:"cardDuckUrl" binding:"omitempty,max=2048"`
	OrderImgURL   *string          `json:"orderImgUrl" binding:"omitempty,max=2048"`
	ClassCardDuck *string          `json:"classCardDuck" binding:"omitempty,max=128"`
	ClassActions  *string          `json:"classActions" binding:"omitempty,max=128"`
	ClassNewBadge *string          `json:"classNewBadge" binding:"omitempty,max=128"`
	NewBadge      *string          `json:"newBadge" binding:"omitempty,max=64"`
	AccentColor   *string          `json:"accentColor" binding:"omitempty,max=32"`
}

type CreateProductRequest struct {
	ProductRequest
	CategoryKey *string `json:"categoryKey" binding:"required,max=48"`
	Title1      *string `json:"title1" binding:"required,max=128"`
}

type UpdateProductRequest struct {
	ProductRequest
	Version *int `json:"version" binding:"required,min=1"`
}

func (r *ProductRequest) ToFields() (commands.ProductFields, error) {
	var f commands.ProductFields
	if err := copier.Copy(&f, r); err != nil {
		return commands.ProductFields{}, err
	}
	f.Key = r.ProductKey
	return f, nil
}

func (r *CreateProductRequest) ToFields() (commands.ProductFields, error) {
	f, err := r.ProductRequest.ToFields()
	if err != nil {
		return commands.ProductFields{}, err
	}
	f.CategoryKey = r.CategoryKey
	f.Title1 = r.Title1
	return f, nil
}

func (r *UpdateProductRequest) ToCommand(id uuid.UUID) (commands.UpdateProductRequest, error) {
	f, err := r.ProductRequest.ToFields()
	if err != nil {
		return commands.UpdateProductRequest{}, err
	}
	return commands.UpdateProductRequest{ID: id, Version: *r.Version, Fields: f}, nil
}

type AddFlavorRequest struct {
	FlavorKey string   `json:"flavorKey" binding:"max=64"`
	Label     string   `json:"label" binding:"required,max=128"`
	IsActive  *bool    `json:"isActive"`
	Gradient  []string `json:"gradient" binding:"required,len=2"`
	SortOrder *int     `json:"sortOrder"`
}

func (r *AddFlavorRequest) ToCommand(productID uuid.UUID) commands.AddFlavorRequest {
	return commands.AddFlavorRequest{
		ProductID: productID,
		FlavorKey: r.FlavorKey,
		Label:     r.Label,
		IsActive:  r.IsActive,
		Gradient:  r.Gradient,
		SortOrder: r.SortOrder,
	}
}

type PickupPointRequest struct {
	Key                     *string  `json:"key" binding:"omitempty,slugkey,max=48"`
	Title                   *string  `json:"title" binding:"omitempty,max=128"`
	Address                 *string  `json:"address" binding:"omitempty,max=512"`
	SortOrder               *int     `json:"sortOrder"`
	IsActive                *bool    `json:"isActive"`
	AllowedAdminTelegramIDs []string `json:"allowedAdminTelegramIds" binding:"omitempty,dive,telegramid"`
}

func (r *PickupPointRequest) ToFields() (commands.PickupPointFields, error) {
	var f commands.PickupPointFields
	err := copier.Copy(&f, r)
	return f, err
}

// SetStockRequest names the point by pickupPointId (uuid or key) or by
// managerTelegramId. qty is accepted as an alias of totalQty.
type SetStockRequest struct {
	PickupPointID       string     `json:"pickupPointId" binding:"max=64"`
	ManagerTelegramID   TelegramID `json:"managerTelegramId" binding:"omitempty,telegramid"`
	TotalQty            *int       `json:"totalQty" binding:"omitempty,max=2147483647"`
	Qty                 *int       `json:"qty" binding:"omitempty,max=2147483647"`
	ReservedQty         *int       `json:"reservedQty" binding:"omitempty,max=2147483647"`
	UpdatedByTelegramID TelegramID `json:"updatedByTelegramId" binding:"omitempty,telegramid"`
}

// Quantity reports false when neither totalQty nor qty was sent.
func (r *SetStockRequest) Quantity() (int, bool) {
	switch {
	case r.TotalQty != nil:
		return *r.TotalQty, true
	case r.Qty != nil:
		return *r.Qty, true
	default:
		return 0, false
	}
}

func (r *SetStockRequest) ToCommand(productID, flavorID uuid.UUID, qty int, actor *string) commands.SetStockRequest {
	if by := OptionalTelegramID(r.UpdatedByTelegramID); by != nil {
		actor = by
	}
	return commands.SetStockRequest{
		ProductID:         productID,
		FlavorID:          flavorID,
		PickupPoint:       r.PickupPointID,
		ManagerTelegramID: r.ManagerTelegramID.String(),
		TotalQty:          qty,
		ReservedQty:       r.ReservedQty,
		UpdatedBy:         actor,
	}
}
