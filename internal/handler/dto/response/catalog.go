package response

import (
	"time"

	"tg-storefront/internal/usecase/queries"
)

type CategoriesResponse struct {
	OK         bool                    `json:"ok"`
	Categories []*queries.CategoryView `json:"categories"`
}

type CategoryResponse struct {
	OK       bool                  `json:"ok"`
	Category *queries.CategoryView `json:"category"`
}

type ProductsResponse struct {
	OK       bool                   `json:"ok"`
	Products []*queries.ProductView `json:"products"`
}

type ProductResponse struct {
	OK      bool                 `json:"ok"`
	Product *queries.ProductView `json:"product"`
}

type PickupPointsResponse struct {
	OK           bool                       `json:"ok"`
	PickupPoints []*queries.PickupPointView `json:"pickupPoints"`
}

type PickupPointResponse struct {
	OK          bool                     `json:"ok"`
	PickupPoint *queries.PickupPointView `json:"pickupPoint"`
}

type AdminSessionResponse struct {
	OK        bool      `json:"ok"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func Categories(v []*queries.CategoryView) *CategoriesResponse {
	if v == nil {
		v = []*queries.CategoryView{}
	}
	return &CategoriesResponse{OK: true, Categories: v}
}

func Products(v []*queries.ProductView) *ProductsResponse {
	if v == nil {
		v = []*queries.ProductView{}
	}
	return &ProductsResponse{OK: true, Products: v}
}

func PickupPoints(v []*queries.PickupPointView) *PickupPointsResponse {
	if v == nil {
		v = []*queries.PickupPointView{}
	}
	return &PickupPointsResponse{OK: true, PickupPoints: v}
}
