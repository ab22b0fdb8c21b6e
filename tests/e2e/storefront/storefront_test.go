//go:build e2e

package storefront_test

import (
	"net/http"
	"testing"

	resdto "tg-storefront/internal/handler/dto/response"
	"tg-storefront/tests/common/dbtest"
	"tg-storefront/tests/common/httptest"
	"tg-storefront/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type StorefrontSuite struct {
	e2e.SharedSuite
}

func (s *StorefrontSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestStorefrontSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(StorefrontSuite))
}

func (s *StorefrontSuite) admin(t *testing.T, method, path string, body any, wantStatus int, target any) {
	t.Helper()
	w := httptest.PerformAdminRequest(t, s.Router, method, path, body, s.Config.Admin.Token)
	httptest.AssertSuccessResponse(t, w, wantStatus, target)
}

// =============================================================================
// TestCatalog
// =============================================================================

func (s *StorefrontSuite) TestCatalog() {
	s.Run("Normal case: admin builds the catalog and the shop lists it", func() {
		t := s.T()

		var cat resdto.CategoryResponse
		s.admin(t, http.MethodPost, "/admin/categories", map[string]any{"title": "Liquids & Pods"}, http.StatusCreated, &cat)
		require.Equal(t, "liquids-pods", cat.Category.Key)

		var prod resdto.ProductResponse
		s.admin(t, http.MethodPost, "/admin/products", map[string]any{
			"categoryKey": cat.Category.Key,
			"title1":      "Elf Bar 600",
			"price":       39.99,
		}, http.StatusCreated, &prod)
		require.Equal(t, "elf-bar-600", prod.Product.ProductKey)
		require.Equal(t, 1, prod.Product.Version)

		s.admin(t, http.MethodPost, "/admin/products/"+prod.Product.ID.String()+"/flavors", map[string]any{
			"label":    "Blue Razz",
			"gradient": []string{"#1e3a8a", "#60a5fa"},
		}, http.StatusCreated, &prod)
		require.Len(t, prod.Product.Flavors, 1)
		require.Equal(t, "blue-razz", prod.Product.Flavors[0].FlavorKey)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/products?categoryKey=liquids-pods", nil, "")
		var list resdto.ProductsResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &list)
		require.Len(t, list.Products, 1)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/products/elf-bar-600", nil, "")
		var one resdto.ProductResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &one)
		require.Equal(t, "39.99", one.Product.Price.StringFixed(2))
	})

	s.Run("Normal case: duplicate titles get distinct keys", func() {
		t := s.T()

		var first, second resdto.CategoryResponse
		s.admin(t, http.MethodPost, "/admin/categories", map[string]any{"title": "Pods"}, http.StatusCreated, &first)
		s.admin(t, http.MethodPost, "/admin/categories", map[string]any{"title": "Pods"}, http.StatusCreated, &second)
		require.Equal(t, "pods", first.Category.Key)
		require.NotEqual(t, first.Category.Key, second.Category.Key)
	})

	s.Run("Error case: explicit duplicate key is 409", func() {
		t := s.T()

		s.admin(t, http.MethodPost, "/admin/categories", map[string]any{"key": "pods", "title": "Pods"}, http.StatusCreated, nil)
		w := httptest.PerformAdminRequest(t, s.Router, http.MethodPost, "/admin/categories",
			map[string]any{"key": "pods", "title": "Pods again"}, s.Config.Admin.Token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Duplicate key")
	})

	s.Run("Error case: stale product version is 409", func() {
		t := s.T()

		var prod resdto.ProductResponse
		s.admin(t, http.MethodPost, "/admin/products", map[string]any{"categoryKey": "pods", "title1": "Pod X"}, http.StatusCreated, &prod)
		path := "/admin/products/" + prod.Product.ID.String()

		s.admin(t, http.MethodPatch, path, map[string]any{"version": 1, "title2": "v2"}, http.StatusOK, &prod)
		require.Equal(t, 2, prod.Product.Version)

		w := httptest.PerformAdminRequest(t, s.Router, http.MethodPatch, path,
			map[string]any{"version": 1, "title2": "stale"}, s.Config.Admin.Token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Version conflict, reload and retry")
	})

	s.Run("Normal case: inactive items are hidden from the shop", func() {
		t := s.T()

		var point resdto.PickupPointResponse
		s.admin(t, http.MethodPost, "/admin/pickup-points", map[string]any{"title": "Center", "address": "Main st. 1"}, http.StatusCreated, &point)
		s.admin(t, http.MethodPatch, "/admin/pickup-points/"+point.PickupPoint.ID.String(), map[string]any{"isActive": false}, http.StatusOK, nil)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/pickup-points", nil, "")
		var public resdto.PickupPointsResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &public)
		require.Empty(t, public.PickupPoints)

		var all resdto.PickupPointsResponse
		s.admin(t, http.MethodGet, "/admin/pickup-points", nil, http.StatusOK, &all)
		require.Len(t, all.PickupPoints, 1)
	})
}

// =============================================================================
// TestCart
// =============================================================================

func (s *StorefrontSuite) TestCart() {
	s.Run("Normal case: unknown user has an empty cart", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/cart?telegramId=7001", nil, "")
		var body resdto.CartResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &body)
		require.Empty(t, body.Cart.Items)
	})

	s.Run("Normal case: put replaces the whole cart", func() {
		t := s.T()

		pointID := dbtest.CreateTestPickupPoint(t, s.DB, "center")

		first := map[string]any{
			"telegramId": 7001,
			"items": []any{
				map[string]any{"productKey": "elf-bar-600", "flavorKey": "blue-razz", "qty": 2, "unitPrice": 39.99},
				map[string]any{"productKey": "elf-bar-600", "flavorKey": "mango", "qty": 1, "unitPrice": 39.99},
			},
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, "/cart", first, "")
		httptest.AssertSuccessResponse(t, w, http.StatusOK, nil)

		second := map[string]any{
			"telegramId":            "7001",
			"items":                 []any{map[string]any{"productKey": "elf-bar-800", "flavorKey": "cola", "qty": 3}},
			"checkoutDeliveryType":  "pickup",
			"checkoutPickupPointId": pointID.String(),
		}
		w = httptest.PerformRequest(t, s.Router, http.MethodPut, "/cart", second, "")
		var body resdto.CartResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &body)

		require.Len(t, body.Cart.Items, 1)
		require.Equal(t, "cola", body.Cart.Items[0].FlavorKey)
		require.NotNil(t, body.Cart.CheckoutPickupPointID)
		require.Equal(t, pointID, *body.Cart.CheckoutPickupPointID)
	})

	s.Run("Error case: unknown pickup point is 404", func() {
		t := s.T()

		body := map[string]any{
			"telegramId":            "7001",
			"items":                 []any{},
			"checkoutDeliveryType":  "pickup",
			"checkoutPickupPointId": uuid.NewString(),
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, "/cart", body, "")
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Pickup point not found")
	})
}

// =============================================================================
// TestAdminUsers
// =============================================================================

func (s *StorefrontSuite) TestAdminUsers() {
	s.Run("Normal case: pages through users with a cursor", func() {
		t := s.T()

		for _, id := range []string{"9001", "9002", "9003"} {
			dbtest.CreateTestUser(t, s.DB, id)
		}

		var first resdto.UserListResponse
		s.admin(t, http.MethodGet, "/admin/users?limit=2", nil, http.StatusOK, &first)
		require.Len(t, first.Users, 2)
		require.NotNil(t, first.NextCursor)

		var second resdto.UserListResponse
		s.admin(t, http.MethodGet, "/admin/users?limit=2&cursor="+*first.NextCursor, nil, http.StatusOK, &second)
		require.Len(t, second.Users, 1)
		require.Nil(t, second.NextCursor)
	})

	s.Run("Error case: listing needs an admin credential", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/admin/users", nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Unauthorized")
	})
}

// =============================================================================
// TestHealth
// =============================================================================

func (s *StorefrontSuite) TestHealth() {
	s.Run("Normal case: ping", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/ping", nil, "")
		var body map[string]bool
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &body)
		require.True(t, body["ok"])
	})

	s.Run("Normal case: CORS preflight from the Mini-App webview", func() {
		t := s.T()

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodOptions, "/cart", nil, map[string]string{
			"Origin":                         "https://web.telegram.org",
			"Access-Control-Request-Method":  http.MethodPut,
			"Access-Control-Request-Headers": "Content-Type",
		})
		require.Equal(t, http.StatusNoContent, w.Code)
		httptest.AssertHeaders(t, w, map[string]string{"Access-Control-Allow-Origin": "*"})
	})
}
