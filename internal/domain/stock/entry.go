package stock

import (
	"errors"
	"math"
	"strings"

	"tg-storefront/internal/pkg/validation"

	"github.com/google/uuid"
)

var (
	ErrMissingTarget   = errors.New("pickupPointId or managerTelegramId is required")
	ErrInvalidPointKey = errors.New("invalid pickup point key")
	ErrInvalidManager  = errors.New("invalid manager telegram id")
	ErrQtyTooLarge     = errors.New("quantity exceeds the maximum of 2147483647")
)

// MaxQty is the largest quantity the ledger columns hold.
const MaxQty = math.MaxInt32

// ClampQty maps any negative quantity to zero. Quantities are never rejected for sign.
func ClampQty(q int) int {
	if q < 0 {
		return 0
	}
	return q
}

// Target names the pickup point whose entry is written: by internal id, by key,
// or by the telegram id of a manager allowed on exactly one active point.
type Target struct {
	pickupPointID     uuid.UUID
	pickupPointKey    string
	managerTelegramID string
}

// NewTarget accepts the pickupPointId field as either a uuid or a point key.
func NewTarget(pickupPoint, managerTelegramID string) (Target, error) {
	pickupPoint = strings.TrimSpace(pickupPoint)
	managerTelegramID = strings.TrimSpace(managerTelegramID)

	switch {
	case pickupPoint != "":
		if id, err := uuid.Parse(pickupPoint); err == nil {
			return Target{pickupPointID: id}, nil
		}
		if !validation.IsKey(pickupPoint) {
			return Target{}, ErrInvalidPointKey
		}
		return Target{pickupPointKey: pickupPoint}, nil
	case managerTelegramID != "":
		if !validation.IsTelegramID(managerTelegramID) {
			return Target{}, ErrInvalidManager
		}
		return Target{managerTelegramID: managerTelegramID}, nil
	default:
		return Target{}, ErrMissingTarget
	}
}

func (t Target) PickupPointID() (uuid.UUID, bool) { return t.pickupPointID, t.pickupPointID != uuid.Nil }
func (t Target) PickupPointKey() string           { return t.pickupPointKey }
func (t Target) ManagerTelegramID() string        { return t.managerTelegramID }
func (t Target) ByManager() bool                  { return t.managerTelegramID != "" }

// Update is a normalized admin write to one stock entry.
type Update struct {
	ProductID       uuid.UUID
	FlavorID        uuid.UUID
	Target          Target
	TotalQty        int
	ReservedQty     *int
	ActorTelegramID *string
}

func NewUpdate(productID, flavorID uuid.UUID, target Target, totalQty int, reservedQty *int, actor *string) (Update, error) {
	if totalQty > MaxQty || (reservedQty != nil && *reservedQty > MaxQty) {
		return Update{}, ErrQtyTooLarge
	}
	u := Update{
		ProductID:       productID,
		FlavorID:        flavorID,
		Target:          target,
		TotalQty:        ClampQty(totalQty),
		ActorTelegramID: actor,
	}
	if reservedQty != nil {
		r := ClampQty(*reservedQty)
		u.ReservedQty = &r
	}
	return u, nil
}

// Available is informational; reserved may exceed total after an admin decrease.
func Available(total, reserved int) int {
	return total - reserved
}
