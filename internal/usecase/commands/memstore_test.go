//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"tg-storefront/internal/domain/cart"
	"tg-storefront/internal/domain/catalog"
	"tg-storefront/internal/domain/user"
	"tg-storefront/internal/infra"
	"tg-storefront/internal/infra/db"
	"tg-storefront/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	errNotFound  = infra.RepositoryError{Kind: infra.KindNotFound}
	errDuplicate = infra.RepositoryError{Kind: infra.KindDuplicateKey}
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memUser struct {
	snap           shared.UserSnapshot
	referralsCount int
}

type stockKey struct {
	flavorID uuid.UUID
	pointID  uuid.UUID
}

// memStore is an in-memory UnitOfWork. Within runs fn under a mutex and does
// not roll back on error.
type memStore struct {
	mu sync.Mutex

	users      map[uuid.UUID]*memUser
	referrals  []user.Attribution
	categories map[uuid.UUID]*shared.CategorySnapshot
	products   map[uuid.UUID]*shared.ProductSnapshot
	flavors    map[uuid.UUID]*catalog.Flavor
	points     map[uuid.UUID]*shared.PickupPointSnapshot
	stock      map[stockKey]shared.StockWrite
	carts      map[string]*cart.Cart

	// setCodeDuplicates makes the next N SetReferralCode calls fail as a lost race.
	setCodeDuplicates int
	// codeStolenBy, when set, is written as the user's code just before SetReferralCode runs.
	codeStolenBy *string
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[uuid.UUID]*memUser{},
		categories: map[uuid.UUID]*shared.CategorySnapshot{},
		products:   map[uuid.UUID]*shared.ProductSnapshot{},
		flavors:    map[uuid.UUID]*catalog.Flavor{},
		points:     map[uuid.UUID]*shared.PickupPointSnapshot{},
		stock:      map[stockKey]shared.StockWrite{},
		carts:      map[string]*cart.Cart{},
	}
}

func (s *memStore) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx, memTx{s})
}

func (s *memStore) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, nil)
}

func (s *memStore) CommandReads() shared.CommandReads { return memReads{s} }

// seed helpers

func (s *memStore) addUser(telegramID string, username, code *string) *memUser {
	u := &memUser{snap: shared.UserSnapshot{
		ID:           uuid.New(),
		TelegramID:   telegramID,
		Profile:      user.Profile{Username: username},
		ReferralCode: code,
	}}
	s.users[u.snap.ID] = u
	return u
}

func (s *memStore) userByTelegramID(telegramID string) *memUser {
	for _, u := range s.users {
		if u.snap.TelegramID == telegramID {
			return u
		}
	}
	return nil
}

func (s *memStore) addProduct(key string) *shared.ProductSnapshot {
	p := &shared.ProductSnapshot{ID: uuid.New(), Key: key, CategoryKey: "liquids", IsActive: true, Title1: key, Version: 1}
	s.products[p.ID] = p
	return p
}

func (s *memStore) addFlavor(productID uuid.UUID, key string) *catalog.Flavor {
	f, err := catalog.NewFlavor(productID, key, key, true, catalog.Gradient{"#000000", "#ffffff"}, 0)
	if err != nil {
		panic(err)
	}
	s.flavors[f.ID()] = f
	return f
}

func (s *memStore) addPoint(key string, admins ...string) *shared.PickupPointSnapshot {
	p := &shared.PickupPointSnapshot{ID: uuid.New(), Key: key, Title: key, IsActive: true, AllowedAdminTelegramIDs: admins}
	s.points[p.ID] = p
	return p
}

type memTx struct{ s *memStore }

func (t memTx) Users() shared.UserRepository               { return memUsers{t.s} }
func (t memTx) Referrals() shared.ReferralRepository       { return memReferrals{t.s} }
func (t memTx) Categories() shared.CategoryRepository      { return memCategories{t.s} }
func (t memTx) Products() shared.ProductRepository         { return memProducts{t.s} }
func (t memTx) PickupPoints() shared.PickupPointRepository { return memPoints{t.s} }
func (t memTx) Stock() shared.StockRepository              { return memStock{t.s} }
func (t memTx) Carts() shared.CartRepository               { return memCarts{t.s} }
func (t memTx) Reads() shared.CommandReads                 { return memReads{t.s} }

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, u *user.User) error {
	if r.s.userByTelegramID(u.TelegramID().String()) != nil {
		return errDuplicate
	}
	r.s.users[u.ID()] = &memUser{snap: shared.UserSnapshot{
		ID:         u.ID(),
		TelegramID: u.TelegramID().String(),
		Profile:    u.Profile(),
	}}
	return nil
}

func (r memUsers) UpdateProfile(_ context.Context, id uuid.UUID, profile user.Profile, _ time.Time) error {
	u, ok := r.s.users[id]
	if !ok {
		return errNotFound
	}
	u.snap.Profile = profile
	return nil
}

func (r memUsers) SetReferralCode(_ context.Context, id uuid.UUID, code string, _ time.Time) (bool, error) {
	if r.s.setCodeDuplicates > 0 {
		r.s.setCodeDuplicates--
		return false, errDuplicate
	}
	u, ok := r.s.users[id]
	if !ok {
		return false, errNotFound
	}
	if r.s.codeStolenBy != nil {
		u.snap.ReferralCode = r.s.codeStolenBy
		r.s.codeStolenBy = nil
	}
	if u.snap.ReferralCode != nil {
		return false, nil
	}
	u.snap.ReferralCode = &code
	return true, nil
}

func (r memUsers) ApplyAttribution(_ context.Context, a user.Attribution) (bool, error) {
	u, ok := r.s.users[a.InviteeID]
	if !ok || u.snap.ReferredBy != nil {
		return false, nil
	}
	label := a.Inviter.ReferredByLabel()
	u.snap.ReferredBy = &label
	return true, nil
}

func (r memUsers) IncrementReferrals(_ context.Context, inviterID uuid.UUID, _ time.Time) error {
	u, ok := r.s.users[inviterID]
	if !ok {
		return errNotFound
	}
	u.referralsCount++
	return nil
}

type memReferrals struct{ s *memStore }

func (r memReferrals) Append(_ context.Context, a user.Attribution) error {
	r.s.referrals = append(r.s.referrals, a)
	return nil
}

type memCategories struct{ s *memStore }

func (r memCategories) Create(_ context.Context, c *catalog.Category, _ time.Time) error {
	for _, cur := range r.s.categories {
		if cur.Key == c.Key() {
			return errDuplicate
		}
	}
	r.s.categories[c.ID()] = categorySnapshot(c)
	return nil
}

func (r memCategories) Update(_ context.Context, c *catalog.Category, _ time.Time) error {
	if _, ok := r.s.categories[c.ID()]; !ok {
		return errNotFound
	}
	r.s.categories[c.ID()] = categorySnapshot(c)
	return nil
}

func categorySnapshot(c *catalog.Category) *shared.CategorySnapshot {
	card := c.Card()
	return &shared.CategorySnapshot{
		ID: c.ID(), Key: c.Key(), Title: c.Title(), IsActive: c.IsActive(),
		CardBgURL: card.CardBgURL, CardDuckURL: card.CardDuckURL, ClassCardDuck: card.ClassCardDuck,
		TitleClass: card.TitleClass, ShowOverlay: card.ShowOverlay, BadgeText: card.BadgeText,
		BadgeSide: string(card.BadgeSide), SortOrder: c.SortOrder(),
	}
}

type memProducts struct{ s *memStore }

func (r memProducts) Create(_ context.Context, p *catalog.Product, _ time.Time) error {
	for _, cur := range r.s.products {
		if cur.Key == p.Key() {
			return errDuplicate
		}
	}
	snap := productSnapshot(p)
	snap.Version = 1
	r.s.products[p.ID()] = snap
	return nil
}

func (r memProducts) Update(_ context.Context, p *catalog.Product, expectedVersion int, _ time.Time) (int, error) {
	cur, ok := r.s.products[p.ID()]
	if !ok || cur.Version != expectedVersion {
		return 0, errNotFound
	}
	snap := productSnapshot(p)
	snap.Version = cur.Version + 1
	r.s.products[p.ID()] = snap
	return snap.Version, nil
}

func (r memProducts) AddFlavor(_ context.Context, f *catalog.Flavor, _ time.Time) error {
	r.s.flavors[f.ID()] = f
	return nil
}

func (r memProducts) Touch(_ context.Context, productID uuid.UUID, _ time.Time) error {
	if p, ok := r.s.products[productID]; ok {
		p.Version++
	}
	return nil
}

func productSnapshot(p *catalog.Product) *shared.ProductSnapshot {
	card := p.Card()
	return &shared.ProductSnapshot{
		ID: p.ID(), Key: p.Key(), CategoryKey: p.CategoryKey(), IsActive: p.IsActive(), Price: p.Price(),
		Title1: card.Title1, Title2: card.Title2, TitleModal: card.TitleModal, CardBgURL: card.CardBgURL,
		CardDuckURL: card.CardDuckURL, OrderImgURL: card.OrderImgURL, ClassCardDuck: card.ClassCardDuck,
		ClassActions: card.ClassActions, ClassNewBadge: card.ClassNewBadge, NewBadge: card.NewBadge,
		AccentColor: card.AccentColor,
	}
}

type memPoints struct{ s *memStore }

func (r memPoints) Create(_ context.Context, p *catalog.PickupPoint, _ time.Time) error {
	for _, cur := range r.s.points {
		if cur.Key == p.Key() {
			return errDuplicate
		}
	}
	r.s.points[p.ID()] = pointSnapshot(p)
	return nil
}

func (r memPoints) Update(_ context.Context, p *catalog.PickupPoint, _ time.Time) error {
	if _, ok := r.s.points[p.ID()]; !ok {
		return errNotFound
	}
	r.s.points[p.ID()] = pointSnapshot(p)
	return nil
}

func pointSnapshot(p *catalog.PickupPoint) *shared.PickupPointSnapshot {
	return &shared.PickupPointSnapshot{
		ID: p.ID(), Key: p.Key(), Title: p.Title(), Address: p.Address(), SortOrder: p.SortOrder(),
		IsActive: p.IsActive(), AllowedAdminTelegramIDs: p.AllowedAdminTelegramIDs(),
	}
}

type memStock struct{ s *memStore }

func (r memStock) Upsert(_ context.Context, w shared.StockWrite) error {
	key := stockKey{w.FlavorID, w.PickupPointID}
	if w.ReservedQty == nil {
		if prev, ok := r.s.stock[key]; ok {
			w.ReservedQty = prev.ReservedQty
		}
	}
	r.s.stock[key] = w
	return nil
}

type memCarts struct{ s *memStore }

func (r memCarts) Replace(_ context.Context, c *cart.Cart, _ time.Time) error {
	r.s.carts[c.TelegramID()] = c
	return nil
}

type memReads struct{ s *memStore }

func (r memReads) UserByTelegramID(_ context.Context, telegramID user.TelegramID) (*shared.UserSnapshot, error) {
	if u := r.s.userByTelegramID(telegramID.String()); u != nil {
		snap := u.snap
		return &snap, nil
	}
	return nil, errNotFound
}

func (r memReads) UserByID(_ context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	if u, ok := r.s.users[id]; ok {
		snap := u.snap
		return &snap, nil
	}
	return nil, errNotFound
}

func (r memReads) InviterByCode(_ context.Context, code string) (*user.Inviter, error) {
	for _, u := range r.s.users {
		if u.snap.ReferralCode != nil && *u.snap.ReferralCode == code {
			return inviterOf(u), nil
		}
	}
	return nil, errNotFound
}

func (r memReads) InviterByTelegramID(_ context.Context, telegramID string) (*user.Inviter, error) {
	if u := r.s.userByTelegramID(telegramID); u != nil {
		return inviterOf(u), nil
	}
	return nil, errNotFound
}

func inviterOf(u *memUser) *user.Inviter {
	return &user.Inviter{ID: u.snap.ID, TelegramID: u.snap.TelegramID, Username: u.snap.Profile.Username, Code: u.snap.ReferralCode}
}

func (r memReads) ReferralCodeExists(_ context.Context, code string) (bool, error) {
	for _, u := range r.s.users {
		if u.snap.ReferralCode != nil && *u.snap.ReferralCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (r memReads) CategoryByID(_ context.Context, id uuid.UUID) (*shared.CategorySnapshot, error) {
	if c, ok := r.s.categories[id]; ok {
		snap := *c
		return &snap, nil
	}
	return nil, errNotFound
}

func (r memReads) CategoryKeyExists(_ context.Context, key string) (bool, error) {
	for _, c := range r.s.categories {
		if c.Key == key {
			return true, nil
		}
	}
	return false, nil
}

func (r memReads) ProductByID(_ context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	if p, ok := r.s.products[id]; ok {
		snap := *p
		return &snap, nil
	}
	return nil, errNotFound
}

func (r memReads) ProductKeyExists(_ context.Context, key string) (bool, error) {
	for _, p := range r.s.products {
		if p.Key == key {
			return true, nil
		}
	}
	return false, nil
}

func (r memReads) FlavorByID(_ context.Context, id uuid.UUID) (*shared.FlavorSnapshot, error) {
	if f, ok := r.s.flavors[id]; ok {
		return &shared.FlavorSnapshot{ID: f.ID(), ProductID: f.ProductID(), Key: f.Key()}, nil
	}
	return nil, errNotFound
}

func (r memReads) FlavorKeyExists(_ context.Context, productID uuid.UUID, key string) (bool, error) {
	for _, f := range r.s.flavors {
		if f.ProductID() == productID && strings.EqualFold(f.Key(), key) {
			return true, nil
		}
	}
	return false, nil
}

func (r memReads) FlavorCount(_ context.Context, productID uuid.UUID) (int, error) {
	n := 0
	for _, f := range r.s.flavors {
		if f.ProductID() == productID {
			n++
		}
	}
	return n, nil
}

func (r memReads) PickupPointByID(_ context.Context, id uuid.UUID) (*shared.PickupPointSnapshot, error) {
	if p, ok := r.s.points[id]; ok {
		snap := *p
		return &snap, nil
	}
	return nil, errNotFound
}

func (r memReads) PickupPointByKey(_ context.Context, key string) (*shared.PickupPointSnapshot, error) {
	for _, p := range r.s.points {
		if p.Key == key {
			snap := *p
			return &snap, nil
		}
	}
	return nil, errNotFound
}

func (r memReads) ActivePickupPointsByManager(_ context.Context, telegramID string) ([]shared.PickupPointSnapshot, error) {
	var out []shared.PickupPointSnapshot
	for _, p := range r.s.points {
		if p.IsActive && slices.Contains(p.AllowedAdminTelegramIDs, telegramID) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r memReads) PickupPointKeyExists(_ context.Context, key string) (bool, error) {
	for _, p := range r.s.points {
		if p.Key == key {
			return true, nil
		}
	}
	return false, nil
}

// seqCodes hands out codes in order, then repeats the last one.
type seqCodes struct {
	codes []string
	n     int
}

func (g *seqCodes) Generate() (string, error) {
	code := g.codes[min(g.n, len(g.codes)-1)]
	g.n++
	return code, nil
}
