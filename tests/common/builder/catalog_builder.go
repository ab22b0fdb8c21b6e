//go:build unit || e2e

package builder

import (
	"time"

	reqdto "tg-storefront/internal/handler/dto/request"
	"tg-storefront/internal/pkg/ptr"
	"tg-storefront/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductBuilder struct {
	ID          uuid.UUID
	ProductKey  string
	CategoryKey string
	Title1      string
	Price       decimal.Decimal
	Version     int
	FlavorID    uuid.UUID
	FlavorKey   string
	FlavorLabel string
	Stock       []queries.StockEntryView
	CreatedAt   time.Time
}

func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		ID:          uuid.New(),
		ProductKey:  "elf-bar-600",
		CategoryKey: "disposables",
		Title1:      "ELF BAR 600",
		Price:       decimal.RequireFromString("39.99"),
		Version:     1,
		FlavorID:    uuid.New(),
		FlavorKey:   "blue-razz",
		FlavorLabel: "Blue Razz",
		CreatedAt:   time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *ProductBuilder) WithStock(pointKey string, total, reserved int) *ProductBuilder {
	b.Stock = append(b.Stock, queries.StockEntryView{
		PickupPointID:  uuid.New(),
		PickupPointKey: pointKey,
		TotalQty:       total,
		ReservedQty:    reserved,
		Available:      max(total-reserved, 0),
		UpdatedAt:      b.CreatedAt,
	})
	return b
}

func (b *ProductBuilder) BuildView() *queries.ProductView {
	total, available := 0, 0
	for _, s := range b.Stock {
		total += s.TotalQty
		available += s.Available
	}
	stock := b.Stock
	if stock == nil {
		stock = []queries.StockEntryView{}
	}
	return &queries.ProductView{
		ID:          b.ID,
		ProductKey:  b.ProductKey,
		CategoryKey: b.CategoryKey,
		IsActive:    true,
		Title1:      b.Title1,
		Price:       b.Price,
		Version:     b.Version,
		Flavors: []queries.FlavorView{{
			ID:        b.FlavorID,
			FlavorKey: b.FlavorKey,
			Label:     b.FlavorLabel,
			IsActive:  true,
			Gradient:  []string{"#1e3a8a", "#60a5fa"},
			Stock:     stock,
			TotalQty:  total,
			Available: available,
		}},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.CreatedAt,
	}
}

func (b *ProductBuilder) BuildSetStockRequestDTO(pointKey string, qty int) reqdto.SetStockRequest {
	return reqdto.SetStockRequest{
		PickupPointID: pointKey,
		TotalQty:      ptr.Of(qty),
	}
}
