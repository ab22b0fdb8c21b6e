package response

import "tg-storefront/internal/usecase/queries"

type CartResponse struct {
	OK   bool              `json:"ok"`
	Cart *queries.CartView `json:"cart"`
}
