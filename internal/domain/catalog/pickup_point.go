package catalog

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// PickupPoint is a physical location where orders are collected. Stock is tracked per point.
type PickupPoint struct {
	id                      uuid.UUID
	key                     string
	title                   string
	address                 string
	sortOrder               int
	isActive                bool
	allowedAdminTelegramIDs []string
}

func NewPickupPoint(key, title, address string, sortOrder int, isActive bool, allowedAdmins []string) (*PickupPoint, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	return &PickupPoint{
		id:                      uuid.New(),
		key:                     key,
		title:                   strings.TrimSpace(title),
		address:                 strings.TrimSpace(address),
		sortOrder:               sortOrder,
		isActive:                isActive,
		allowedAdminTelegramIDs: NormalizeAdminIDs(allowedAdmins),
	}, nil
}

func ReconstructPickupPoint(id uuid.UUID, key, title, address string, sortOrder int, isActive bool, allowedAdmins []string) (*PickupPoint, error) {
	p, err := NewPickupPoint(key, title, address, sortOrder, isActive, allowedAdmins)
	if err != nil {
		return nil, err
	}
	p.id = id
	return p, nil
}

func (p *PickupPoint) ID() uuid.UUID                     { return p.id }
func (p *PickupPoint) Key() string                       { return p.key }
func (p *PickupPoint) Title() string                     { return p.title }
func (p *PickupPoint) Address() string                   { return p.address }
func (p *PickupPoint) SortOrder() int                    { return p.sortOrder }
func (p *PickupPoint) IsActive() bool                    { return p.isActive }
func (p *PickupPoint) AllowedAdminTelegramIDs() []string { return p.allowedAdminTelegramIDs }

// NormalizeAdminIDs trims, drops blanks and de-duplicates while keeping order.
func NormalizeAdminIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || slices.Contains(out, id) {
			continue
		}
		out = append(out, id)
	}
	return out
}
