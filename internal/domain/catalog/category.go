package catalog

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrInvalidKey       = errors.New("key must contain only lowercase letters, digits and dashes")
	ErrInvalidBadgeSide = errors.New("badge side must be left or right")
)

type BadgeSide string

const (
	BadgeLeft  BadgeSide = "left"
	BadgeRight BadgeSide = "right"
)

func NewBadgeSide(s string) (BadgeSide, error) {
	switch BadgeSide(s) {
	case "":
		return BadgeLeft, nil
	case BadgeLeft, BadgeRight:
		return BadgeSide(s), nil
	default:
		return "", ErrInvalidBadgeSide
	}
}

// CategoryCard holds the editable presentation of a category tile.
type CategoryCard struct {
	CardBgURL     string
	CardDuckURL   string
	ClassCardDuck string
	TitleClass    string
	ShowOverlay   bool
	BadgeText     string
	BadgeSide     BadgeSide
}

type Category struct {
	id        uuid.UUID
	key       string
	title     string
	isActive  bool
	card      CategoryCard
	sortOrder int
}

func NewCategory(key, title string, isActive bool, card CategoryCard, sortOrder int) (*Category, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	side, err := NewBadgeSide(string(card.BadgeSide))
	if err != nil {
		return nil, err
	}
	card.BadgeSide = side
	if card.TitleClass == "" {
		card.TitleClass = "cardTitle"
	}

	return &Category{
		id:        uuid.New(),
		key:       key,
		title:     title,
		isActive:  isActive,
		card:      card,
		sortOrder: sortOrder,
	}, nil
}

func (c *Category) ID() uuid.UUID      { return c.id }
func (c *Category) Key() string        { return c.key }
func (c *Category) Title() string      { return c.title }
func (c *Category) IsActive() bool     { return c.isActive }
func (c *Category) Card() CategoryCard { return c.card }
func (c *Category) SortOrder() int     { return c.sortOrder }

// ReconstructCategory rebuilds a stored category after an admin patch, re-running validation.
func ReconstructCategory(id uuid.UUID, key, title string, isActive bool, card CategoryCard, sortOrder int) (*Category, error) {
	c, err := NewCategory(key, title, isActive, card, sortOrder)
	if err != nil {
		return nil, err
	}
	c.id = id
	return c, nil
}
