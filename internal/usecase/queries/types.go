package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserView is the public user record returned by register/get endpoints.
type UserView struct {
	ID         uuid.UUID    `json:"id"`
	TelegramID string       `json:"telegramId"`
	Username   *string      `json:"username"`
	FirstName  *string      `json:"firstName"`
	LastName   *string      `json:"lastName"`
	PhotoURL   *string      `json:"photoUrl"`
	Referral   ReferralView `json:"referral"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

type ReferralView struct {
	Code             *string             `json:"code"`
	ReferredBy       *string             `json:"referredBy"`
	ReferredByCode   *string             `json:"referredByCode"`
	ReferredByUserID *uuid.UUID          `json:"referredByUserId"`
	ReferredAt       *time.Time          `json:"referredAt"`
	ReferralsCount   int                 `json:"referralsCount"`
	Referrals        []ReferralEntryView `json:"referrals"`
}

type ReferralEntryView struct {
	TelegramID string    `json:"telegramId"`
	At         time.Time `json:"at"`
}

// UserListItem is a row of the admin user listing.
type UserListItem struct {
	ID             uuid.UUID `json:"id"`
	TelegramID     string    `json:"telegramId"`
	Username       *string   `json:"username"`
	ReferralCode   *string   `json:"referralCode"`
	ReferredBy     *string   `json:"referredBy"`
	ReferralsCount int       `json:"referralsCount"`
	CreatedAt      time.Time `json:"createdAt"`
}

type CategoryView struct {
	ID            uuid.UUID `json:"id"`
	Key           string    `json:"key"`
	Title         string    `json:"title"`
	IsActive      bool      `json:"isActive"`
	CardBgURL     string    `json:"cardBgUrl"`
	CardDuckURL   string    `json:"cardDuckUrl"`
	ClassCardDuck string    `json:"classCardDuck"`
	TitleClass    string    `json:"titleClass"`
	ShowOverlay   bool      `json:"showOverlay"`
	BadgeText     string    `json:"badgeText"`
	BadgeSide     string    `json:"badgeSide"`
	SortOrder     int       `json:"sortOrder"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type ProductView struct {
	ID            uuid.UUID       `json:"id"`
	ProductKey    string          `json:"productKey"`
	CategoryKey   string          `json:"categoryKey"`
	IsActive      bool            `json:"isActive"`
	Title1        string          `json:"title1"`
	Title2        string          `json:"title2"`
	TitleModal    string          `json:"titleModal"`
	Price         decimal.Decimal `json:"price"`
	CardBgURL     string          `json:"cardBgUrl"`
	CardDuckURL   string          `json:"cardDuckUrl"`
	OrderImgURL   string          `json:"orderImgUrl"`
	ClassCardDuck string          `json:"classCardDuck"`
	ClassActions  string          `json:"classActions"`
	ClassNewBadge string          `json:"classNewBadge"`
	NewBadge      string          `json:"newBadge"`
	AccentColor   string          `json:"accentColor"`
	Version       int             `json:"version"`
	Flavors       []FlavorView    `json:"flavors"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type FlavorView struct {
	ID        uuid.UUID        `json:"id"`
	FlavorKey string           `json:"flavorKey"`
	Label     string           `json:"label"`
	IsActive  bool             `json:"isActive"`
	Gradient  []string         `json:"gradient"`
	SortOrder int              `json:"sortOrder"`
	Stock     []StockEntryView `json:"stockByPickupPoint"`
	TotalQty  int              `json:"totalQty"`
	Available int              `json:"available"`
}

// StockEntryView is one (flavor, pickup point) ledger row.
type StockEntryView struct {
	PickupPointID       uuid.UUID `json:"pickupPointId"`
	PickupPointKey      string    `json:"pickupPointKey"`
	TotalQty            int       `json:"totalQty"`
	ReservedQty         int       `json:"reservedQty"`
	Available           int       `json:"available"`
	UpdatedAt           time.Time `json:"updatedAt"`
	UpdatedByTelegramID *string   `json:"updatedByTelegramId"`
}

type PickupPointView struct {
	ID                      uuid.UUID `json:"id"`
	Key                     string    `json:"key"`
	Title                   string    `json:"title"`
	Address                 string    `json:"address"`
	SortOrder               int       `json:"sortOrder"`
	IsActive                bool      `json:"isActive"`
	AllowedAdminTelegramIDs []string  `json:"allowedAdminTelegramIds"`
	CreatedAt               time.Time `json:"createdAt"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

type CartView struct {
	TelegramID             string         `json:"telegramId"`
	Items                  []CartItemView `json:"items"`
	CheckoutDeliveryType   *string        `json:"checkoutDeliveryType"`
	CheckoutDeliveryMethod *string        `json:"checkoutDeliveryMethod"`
	CheckoutPickupPointID  *uuid.UUID     `json:"checkoutPickupPointId"`
	UpdatedAt              *time.Time     `json:"updatedAt"`
}

type CartItemView struct {
	ProductKey  string          `json:"productKey"`
	FlavorKey   string          `json:"flavorKey"`
	Qty         int             `json:"qty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	FlavorLabel string          `json:"flavorLabel"`
	Gradient    []string        `json:"gradient"`
}
