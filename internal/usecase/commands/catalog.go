package commands

import (
	"context"
	"log/slog"

	"tg-storefront/internal/domain/catalog"
	"tg-storefront/internal/infra"
	"tg-storefront/internal/pkg/clock"
	"tg-storefront/internal/pkg/errs"
	"tg-storefront/internal/pkg/patch"
	"tg-storefront/internal/pkg/slug"
	"tg-storefront/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CategoryFields struct {
	Key           *string
	Title         *string
	IsActive      *bool
	CardBgURL     *string
	CardDuckURL   *string
	ClassCardDuck *string
	TitleClass    *string
	ShowOverlay   *bool
	BadgeText     *string
	BadgeSide     *string
	SortOrder     *int
}

type ProductFields struct {
	Key           *string
	CategoryKey   *string
	IsActive      *bool
	Title1        *string
	Title2        *string
	TitleModal    *string
	Price         *decimal.Decimal
	CardBgURL     *string
	CardDuckURL   *string
	OrderImgURL   *string
	ClassCardDuck *string
	ClassActions  *string
	ClassNewBadge *string
	NewBadge      *string
	AccentColor   *string
}

type UpdateProductRequest struct {
	ID      uuid.UUID
	Version int
	Fields  ProductFields
}

type AddFlavorRequest struct {
	ProductID uuid.UUID
	FlavorKey string
	Label     string
	IsActive  *bool
	Gradient  []string
	SortOrder *int
}

type PickupPointFields struct {
	Key                     *string
	Title                   *string
	Address                 *string
	SortOrder               *int
	IsActive                *bool
	AllowedAdminTelegramIDs []string
}

type CatalogCommands interface {
	CreateCategory(ctx context.Context, f CategoryFields) (uuid.UUID, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, f CategoryFields) error
	CreateProduct(ctx context.Context, f ProductFields) (uuid.UUID, error)
	// UpdateProduct applies the patch only if req.Version is current and returns the new version.
	UpdateProduct(ctx context.Context, req UpdateProductRequest) (int, error)
	AddFlavor(ctx context.Context, req AddFlavorRequest) (uuid.UUID, error)
	CreatePickupPoint(ctx context.Context, f PickupPointFields) (uuid.UUID, error)
	UpdatePickupPoint(ctx context.Context, id uuid.UUID, f PickupPointFields) error
}

type catalogUseCaseImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
}

func NewCatalogUseCase(uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) CatalogCommands {
	return &catalogUseCaseImpl{uow: uow, clock: clk, logger: logger}
}

func (uc *catalogUseCaseImpl) CreateCategory(ctx context.Context, f CategoryFields) (uuid.UUID, error) {
	title := patch.CoalesceString(f.Title, "")
	key, err := uc.resolveKey(ctx, f.Key, title, uc.uow.CommandReads().CategoryKeyExists)
	if err != nil {
		return uuid.Nil, err
	}

	c, err := catalog.NewCategory(key, title, patch.Coalesce(f.IsActive, true), categoryCard(f, catalog.CategoryCard{}), patch.Coalesce(f.SortOrder, 0))
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrValidation)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Categories().Create(ctx, c, uc.clock.Now())
	})
	if err != nil {
		return uuid.Nil, notFoundAs(err, errs.ErrCategoryNotFound)
	}

	uc.logger.Info("category created", "category_id", c.ID(), "key", c.Key())
	return c.ID(), nil
}

func (uc *catalogUseCaseImpl) UpdateCategory(ctx context.Context, id uuid.UUID, f CategoryFields) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cur, err := tx.Reads().CategoryByID(ctx, id)
		if err != nil {
			return err
		}

		base := catalog.CategoryCard{
			CardBgURL:     cur.CardBgURL,
			CardDuckURL:   cur.CardDuckURL,
			ClassCardDuck: cur.ClassCardDuck,
			TitleClass:    cur.TitleClass,
			ShowOverlay:   cur.ShowOverlay,
			BadgeText:     cur.BadgeText,
			BadgeSide:     catalog.BadgeSide(cur.BadgeSide),
		}
		c, err := catalog.ReconstructCategory(
			cur.ID,
			patch.CoalesceString(f.Key, cur.Key),
			patch.CoalesceString(f.Title, cur.Title),
			patch.Coalesce(f.IsActive, cur.IsActive),
			categoryCard(f, base),
			patch.Coalesce(f.SortOrder, cur.SortOrder),
		)
		if err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}
		return tx.Categories().Update(ctx, c, uc.clock.Now())
	})
	return notFoundAs(err, errs.ErrCategoryNotFound)
}

func (uc *catalogUseCaseImpl) CreateProduct(ctx context.Context, f ProductFields) (uuid.UUID, error) {
	card := productCard(f, catalog.ProductCard{})
	key, err := uc.resolveKey(ctx, f.Key, card.Title1, uc.uow.CommandReads().ProductKeyExists)
	if err != nil {
		return uuid.Nil, err
	}

	p, err := catalog.NewProduct(key, patch.CoalesceString(f.CategoryKey, ""), patch.Coalesce(f.IsActive, true),
		patch.Coalesce(f.Price, decimal.Zero), card)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrValidation)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Products().Create(ctx, p, uc.clock.Now())
	})
	if err != nil {
		return uuid.Nil, notFoundAs(err, errs.ErrProductNotFound)
	}

	uc.logger.Info("product created", "product_id", p.ID(), "key", p.Key())
	return p.ID(), nil
}

func (uc *catalogUseCaseImpl) UpdateProduct(ctx context.Context, req UpdateProductRequest) (int, error) {
	var version int
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cur, err := tx.Reads().ProductByID(ctx, req.ID)
		if err != nil {
			return notFoundAs(err, errs.ErrProductNotFound)
		}
		if cur.Version != req.Version {
			return errs.ErrVersionConflict
		}

		base := catalog.ProductCard{
			Title1:        cur.Title1,
			Title2:        cur.Title2,
			TitleModal:    cur.TitleModal,
			CardBgURL:     cur.CardBgURL,
			CardDuckURL:   cur.CardDuckURL,
			OrderImgURL:   cur.OrderImgURL,
			ClassCardDuck: cur.ClassCardDuck,
			ClassActions:  cur.ClassActions,
			ClassNewBadge: cur.ClassNewBadge,
			NewBadge:      cur.NewBadge,
			AccentColor:   cur.AccentColor,
		}
		p, err := catalog.ReconstructProduct(
			cur.ID,
			patch.CoalesceString(req.Fields.Key, cur.Key),
			patch.CoalesceString(req.Fields.CategoryKey, cur.CategoryKey),
			patch.Coalesce(req.Fields.IsActive, cur.IsActive),
			patch.Coalesce(req.Fields.Price, cur.Price),
			productCard(req.Fields, base),
		)
		if err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}

		version, err = tx.Products().Update(ctx, p, req.Version, uc.clock.Now())
		if infra.IsKind(err, infra.KindNotFound) {
			// the row was read above, so a miss means another writer bumped the version
			return errs.ErrVersionConflict
		}
		return notFoundAs(err, errs.ErrCategoryNotFound)
	})
	if err != nil {
		return 0, err
	}
	return version, nil
}

func (uc *catalogUseCaseImpl) AddFlavor(ctx context.Context, req AddFlavorRequest) (uuid.UUID, error) {
	gradient, err := catalog.NewGradient(req.Gradient)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrValidation)
	}
	key := req.FlavorKey
	if key == "" {
		key = slug.Make(req.Label)
	}

	var flavorID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		reads := tx.Reads()
		if _, err := reads.ProductByID(ctx, req.ProductID); err != nil {
			return notFoundAs(err, errs.ErrProductNotFound)
		}

		taken, err := reads.FlavorKeyExists(ctx, req.ProductID, key)
		if err != nil {
			return err
		}
		if taken {
			return errs.Mark(errs.Newf("flavor %q already exists", key), errs.ErrDuplicateKey)
		}

		sortOrder := req.SortOrder
		if sortOrder == nil {
			n, err := reads.FlavorCount(ctx, req.ProductID)
			if err != nil {
				return err
			}
			sortOrder = &n
		}

		f, err := catalog.NewFlavor(req.ProductID, key, req.Label, patch.Coalesce(req.IsActive, true), gradient, *sortOrder)
		if err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}

		now := uc.clock.Now()
		if err := tx.Products().AddFlavor(ctx, f, now); err != nil {
			return notFoundAs(err, errs.ErrProductNotFound)
		}
		flavorID = f.ID()
		return tx.Products().Touch(ctx, req.ProductID, now)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return flavorID, nil
}

func (uc *catalogUseCaseImpl) CreatePickupPoint(ctx context.Context, f PickupPointFields) (uuid.UUID, error) {
	title := patch.CoalesceString(f.Title, "")
	key, err := uc.resolveKey(ctx, f.Key, title, uc.uow.CommandReads().PickupPointKeyExists)
	if err != nil {
		return uuid.Nil, err
	}

	p, err := catalog.NewPickupPoint(key, title, patch.CoalesceString(f.Address, ""),
		patch.Coalesce(f.SortOrder, 0), patch.Coalesce(f.IsActive, true), f.AllowedAdminTelegramIDs)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrValidation)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.PickupPoints().Create(ctx, p, uc.clock.Now())
	})
	if err != nil {
		return uuid.Nil, notFoundAs(err, errs.ErrPickupPointNotFound)
	}

	uc.logger.Info("pickup point created", "pickup_point_id", p.ID(), "key", p.Key())
	return p.ID(), nil
}

func (uc *catalogUseCaseImpl) UpdatePickupPoint(ctx context.Context, id uuid.UUID, f PickupPointFields) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cur, err := tx.Reads().PickupPointByID(ctx, id)
		if err != nil {
			return err
		}

		admins := cur.AllowedAdminTelegramIDs
		if f.AllowedAdminTelegramIDs != nil {
			admins = f.AllowedAdminTelegramIDs
		}
		p, err := catalog.ReconstructPickupPoint(
			cur.ID,
			patch.CoalesceString(f.Key, cur.Key),
			patch.CoalesceString(f.Title, cur.Title),
			patch.CoalesceString(f.Address, cur.Address),
			patch.Coalesce(f.SortOrder, cur.SortOrder),
			patch.Coalesce(f.IsActive, cur.IsActive),
			admins,
		)
		if err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}
		return tx.PickupPoints().Update(ctx, p, uc.clock.Now())
	})
	return notFoundAs(err, errs.ErrPickupPointNotFound)
}

// resolveKey validates an explicit key or derives a free one from the title.
func (uc *catalogUseCaseImpl) resolveKey(ctx context.Context, explicit *string, title string, exists slug.ExistsFunc) (string, error) {
	if explicit != nil && *explicit != "" {
		if err := catalog.ValidateKey(*explicit); err != nil {
			return "", errs.Mark(err, errs.ErrValidation)
		}
		return *explicit, nil
	}
	if title == "" {
		return "", errs.Mark(catalog.ErrEmptyTitle, errs.ErrValidation)
	}
	return slug.EnsureUnique(ctx, slug.Make(title), exists, uc.clock.Now)
}

// Card fields are copied verbatim so a patch can clear them.
func categoryCard(f CategoryFields, base catalog.CategoryCard) catalog.CategoryCard {
	side := base.BadgeSide
	if f.BadgeSide != nil {
		side = catalog.BadgeSide(*f.BadgeSide)
	}
	return catalog.CategoryCard{
		CardBgURL:     patch.Coalesce(f.CardBgURL, base.CardBgURL),
		CardDuckURL:   patch.Coalesce(f.CardDuckURL, base.CardDuckURL),
		ClassCardDuck: patch.Coalesce(f.ClassCardDuck, base.ClassCardDuck),
		TitleClass:    patch.Coalesce(f.TitleClass, base.TitleClass),
		ShowOverlay:   patch.Coalesce(f.ShowOverlay, base.ShowOverlay),
		BadgeText:     patch.Coalesce(f.BadgeText, base.BadgeText),
		BadgeSide:     side,
	}
}

func productCard(f ProductFields, base catalog.ProductCard) catalog.ProductCard {
	return catalog.ProductCard{
		Title1:        patch.Coalesce(f.Title1, base.Title1),
		Title2:        patch.Coalesce(f.Title2, base.Title2),
		TitleModal:    patch.Coalesce(f.TitleModal, base.TitleModal),
		CardBgURL:     patch.Coalesce(f.CardBgURL, base.CardBgURL),
		CardDuckURL:   patch.Coalesce(f.CardDuckURL, base.CardDuckURL),
		OrderImgURL:   patch.Coalesce(f.OrderImgURL, base.OrderImgURL),
		ClassCardDuck: patch.Coalesce(f.ClassCardDuck, base.ClassCardDuck),
		ClassActions:  patch.Coalesce(f.ClassActions, base.ClassActions),
		ClassNewBadge: patch.Coalesce(f.ClassNewBadge, base.ClassNewBadge),
		NewBadge:      patch.Coalesce(f.NewBadge, base.NewBadge),
		AccentColor:   patch.Coalesce(f.AccentColor, base.AccentColor),
	}
}
