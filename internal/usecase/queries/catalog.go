package queries

import (
	"context"
	"strings"

	"tg-storefront/internal/infra"
	"tg-storefront/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrCategoryNotFound    = errs.ErrCategoryNotFound
	ErrProductNotFound     = errs.ErrProductNotFound
	ErrPickupPointNotFound = errs.ErrPickupPointNotFound
)

// Visibility selects between storefront listings (active only) and admin listings (everything).
type Visibility int

const (
	ActiveOnly Visibility = iota
	IncludeInactive
)

type CatalogQueries interface {
	ListCategories(ctx context.Context, vis Visibility) ([]*CategoryView, error)
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*CategoryView, error)
	ListProducts(ctx context.Context, categoryKey string, vis Visibility) ([]*ProductView, error)
	GetProductByKey(ctx context.Context, key string) (*ProductView, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*ProductView, error)
	ListPickupPoints(ctx context.Context, vis Visibility) ([]*PickupPointView, error)
	GetPickupPointByID(ctx context.Context, id uuid.UUID) (*PickupPointView, error)
}

type CatalogReadStore interface {
	ListCategories(ctx context.Context, activeOnly bool) ([]*CategoryView, error)
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*CategoryView, error)
	ListProducts(ctx context.Context, categoryKey *string, activeOnly bool) ([]*ProductView, error)
	FindProductByKey(ctx context.Context, key string, activeOnly bool) (*ProductView, error)
	FindProductByID(ctx context.Context, id uuid.UUID) (*ProductView, error)
	ListPickupPoints(ctx context.Context, activeOnly bool) ([]*PickupPointView, error)
	FindPickupPointByID(ctx context.Context, id uuid.UUID) (*PickupPointView, error)
}

type catalogQueriesImpl struct {
	readStore CatalogReadStore
}

func NewCatalogQueries(readStore CatalogReadStore) CatalogQueries {
	return &catalogQueriesImpl{readStore: readStore}
}

func (q *catalogQueriesImpl) ListCategories(ctx context.Context, vis Visibility) ([]*CategoryView, error) {
	return q.readStore.ListCategories(ctx, vis == ActiveOnly)
}

func (q *catalogQueriesImpl) GetCategoryByID(ctx context.Context, id uuid.UUID) (*CategoryView, error) {
	c, err := q.readStore.FindCategoryByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return c, nil
}

func (q *catalogQueriesImpl) ListProducts(ctx context.Context, categoryKey string, vis Visibility) ([]*ProductView, error) {
	var filter *string
	if key := strings.TrimSpace(categoryKey); key != "" {
		filter = &key
	}
	return q.readStore.ListProducts(ctx, filter, vis == ActiveOnly)
}

// Only active products are reachable by key from the storefront.
func (q *catalogQueriesImpl) GetProductByKey(ctx context.Context, key string) (*ProductView, error) {
	p, err := q.readStore.FindProductByKey(ctx, strings.TrimSpace(key), true)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (q *catalogQueriesImpl) GetProductByID(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	p, err := q.readStore.FindProductByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (q *catalogQueriesImpl) ListPickupPoints(ctx context.Context, vis Visibility) ([]*PickupPointView, error) {
	return q.readStore.ListPickupPoints(ctx, vis == ActiveOnly)
}

func (q *catalogQueriesImpl) GetPickupPointByID(ctx context.Context, id uuid.UUID) (*PickupPointView, error) {
	p, err := q.readStore.FindPickupPointByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPickupPointNotFound
		}
		return nil, err
	}
	return p, nil
}
