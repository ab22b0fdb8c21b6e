package catalog

import (
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNegativePrice       = errors.New("price cannot be negative")
	ErrEmptyCategoryKey    = errors.New("category key cannot be empty")
	ErrEmptyFlavorLabel    = errors.New("flavor label cannot be empty")
	ErrInvalidGradient     = errors.New("gradient must contain exactly 2 colors")
	ErrInvalidFlavorKeyLen = errors.New("flavor key is too long")
)

const MaxFlavorKeyLength = 64

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ProductCard holds media and styling of a product tile.
type ProductCard struct {
	Title1        string
	Title2        string
	TitleModal    string
	CardBgURL     string
	CardDuckURL   string
	OrderImgURL   string
	ClassCardDuck string
	ClassActions  string
	ClassNewBadge string
	NewBadge      string
	AccentColor   string
}

type Product struct {
	id          uuid.UUID
	key         string
	categoryKey string
	isActive    bool
	price       decimal.Decimal
	card        ProductCard
}

func NewProduct(key, categoryKey string, isActive bool, price decimal.Decimal, card ProductCard) (*Product, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	categoryKey = strings.TrimSpace(categoryKey)
	if categoryKey == "" {
		return nil, ErrEmptyCategoryKey
	}
	if price.IsNegative() {
		return nil, ErrNegativePrice
	}

	return &Product{
		id:          uuid.New(),
		key:         key,
		categoryKey: categoryKey,
		isActive:    isActive,
		price:       price,
		card:        card,
	}, nil
}

func ReconstructProduct(id uuid.UUID, key, categoryKey string, isActive bool, price decimal.Decimal, card ProductCard) (*Product, error) {
	p, err := NewProduct(key, categoryKey, isActive, price, card)
	if err != nil {
		return nil, err
	}
	p.id = id
	return p, nil
}

func (p *Product) ID() uuid.UUID          { return p.id }
func (p *Product) Key() string            { return p.key }
func (p *Product) CategoryKey() string    { return p.categoryKey }
func (p *Product) IsActive() bool         { return p.isActive }
func (p *Product) Price() decimal.Decimal { return p.price }
func (p *Product) Card() ProductCard      { return p.card }

// Gradient is the two-color background of a flavor chip.
type Gradient [2]string

func NewGradient(colors []string) (Gradient, error) {
	if len(colors) != 2 {
		return Gradient{}, ErrInvalidGradient
	}
	for _, c := range colors {
		if !hexColorRegex.MatchString(c) {
			return Gradient{}, ErrInvalidGradient
		}
	}
	return Gradient{colors[0], colors[1]}, nil
}

func (g Gradient) Slice() []string { return []string{g[0], g[1]} }

// Flavor is a product variant. Its key is unique within the product, compared case-insensitively.
type Flavor struct {
	id        uuid.UUID
	productID uuid.UUID
	key       string
	label     string
	isActive  bool
	gradient  Gradient
	sortOrder int
}

func NewFlavor(productID uuid.UUID, key, label string, isActive bool, gradient Gradient, sortOrder int) (*Flavor, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, ErrEmptyFlavorLabel
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrInvalidKey
	}
	if len(key) > MaxFlavorKeyLength {
		return nil, ErrInvalidFlavorKeyLen
	}

	return &Flavor{
		id:        uuid.New(),
		productID: productID,
		key:       key,
		label:     label,
		isActive:  isActive,
		gradient:  gradient,
		sortOrder: sortOrder,
	}, nil
}

func (f *Flavor) ID() uuid.UUID        { return f.id }
func (f *Flavor) ProductID() uuid.UUID { return f.productID }
func (f *Flavor) Key() string          { return f.key }
func (f *Flavor) Label() string        { return f.label }
func (f *Flavor) IsActive() bool       { return f.isActive }
func (f *Flavor) Gradient() Gradient   { return f.gradient }
func (f *Flavor) SortOrder() int       { return f.sortOrder }

// SameFlavorKey compares flavor keys the way the store's unique index does.
func SameFlavorKey(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
