package shared

import (
	"time"

	"tg-storefront/internal/domain/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Minimal snapshots for command read operations

type UserSnapshot struct {
	ID           uuid.UUID
	TelegramID   string
	Profile      user.Profile
	ReferralCode *string
	ReferredBy   *string
}

type CategorySnapshot struct {
	ID            uuid.UUID
	Key           string
	Title         string
	IsActive      bool
	CardBgURL     string
	CardDuckURL   string
	ClassCardDuck string
	TitleClass    string
	ShowOverlay   bool
	BadgeText     string
	BadgeSide     string
	SortOrder     int
}

type ProductSnapshot struct {
	ID            uuid.UUID
	Key           string
	CategoryKey   string
	IsActive      bool
	Title1        string
	Title2        string
	TitleModal    string
	Price         decimal.Decimal
	CardBgURL     string
	CardDuckURL   string
	OrderImgURL   string
	ClassCardDuck string
	ClassActions  string
	ClassNewBadge string
	NewBadge      string
	AccentColor   string
	Version       int
}

type FlavorSnapshot struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Key       string
}

type PickupPointSnapshot struct {
	ID                      uuid.UUID
	Key                     string
	Title                   string
	Address                 string
	SortOrder               int
	IsActive                bool
	AllowedAdminTelegramIDs []string
}

// StockWrite is a resolved stock entry upsert.
type StockWrite struct {
	FlavorID          uuid.UUID
	PickupPointID     uuid.UUID
	TotalQty          int
	ReservedQty       *int
	UpdatedByTelegram *string
	At                time.Time
}
