package shared

import (
	"context"
	"time"

	"tg-storefront/internal/domain/cart"
	"tg-storefront/internal/domain/catalog"
	"tg-storefront/internal/domain/user"
	"tg-storefront/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Users() UserRepository
	Referrals() ReferralRepository
	Categories() CategoryRepository
	Products() ProductRepository
	PickupPoints() PickupPointRepository
	Stock() StockRepository
	Carts() CartRepository
	Reads() CommandReads
}

type CommandReads interface {
	UserByTelegramID(ctx context.Context, telegramID user.TelegramID) (*UserSnapshot, error)
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	InviterByCode(ctx context.Context, code string) (*user.Inviter, error)
	InviterByTelegramID(ctx context.Context, telegramID string) (*user.Inviter, error)
	ReferralCodeExists(ctx context.Context, code string) (bool, error)

	CategoryByID(ctx context.Context, id uuid.UUID) (*CategorySnapshot, error)
	CategoryKeyExists(ctx context.Context, key string) (bool, error)
	ProductByID(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error)
	ProductKeyExists(ctx context.Context, key string) (bool, error)
	FlavorByID(ctx context.Context, id uuid.UUID) (*FlavorSnapshot, error)
	FlavorKeyExists(ctx context.Context, productID uuid.UUID, key string) (bool, error)
	FlavorCount(ctx context.Context, productID uuid.UUID) (int, error)

	PickupPointByID(ctx context.Context, id uuid.UUID) (*PickupPointSnapshot, error)
	PickupPointByKey(ctx context.Context, key string) (*PickupPointSnapshot, error)
	ActivePickupPointsByManager(ctx context.Context, telegramID string) ([]PickupPointSnapshot, error)
	PickupPointKeyExists(ctx context.Context, key string) (bool, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	UpdateProfile(ctx context.Context, id uuid.UUID, profile user.Profile, now time.Time) error
	// SetReferralCode writes only when the user has no code yet and reports whether it wrote.
	SetReferralCode(ctx context.Context, id uuid.UUID, code string, now time.Time) (bool, error)
	// ApplyAttribution writes only when the invitee is not yet referred and reports whether it wrote.
	ApplyAttribution(ctx context.Context, a user.Attribution) (bool, error)
	IncrementReferrals(ctx context.Context, inviterID uuid.UUID, now time.Time) error
}

type ReferralRepository interface {
	Append(ctx context.Context, a user.Attribution) error
}

type CategoryRepository interface {
	Create(ctx context.Context, c *catalog.Category, now time.Time) error
	Update(ctx context.Context, c *catalog.Category, now time.Time) error
}

type ProductRepository interface {
	Create(ctx context.Context, p *catalog.Product, now time.Time) error
	// Update applies only when the stored version equals expectedVersion and returns the new version.
	Update(ctx context.Context, p *catalog.Product, expectedVersion int, now time.Time) (int, error)
	AddFlavor(ctx context.Context, f *catalog.Flavor, now time.Time) error
	Touch(ctx context.Context, productID uuid.UUID, now time.Time) error
}

type PickupPointRepository interface {
	Create(ctx context.Context, p *catalog.PickupPoint, now time.Time) error
	Update(ctx context.Context, p *catalog.PickupPoint, now time.Time) error
}

type StockRepository interface {
	Upsert(ctx context.Context, w StockWrite) error
}

type CartRepository interface {
	Replace(ctx context.Context, c *cart.Cart, now time.Time) error
}
