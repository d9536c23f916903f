// ABOUTME: Menu aggregation and validated admin mutations over the store
// ABOUTME: Groups items under categories and merges settings with documented defaults

package menu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/2389/diner-menu/internal/store"
)

// Recognized settings keys. The settings table accepts arbitrary keys, but
// these are the ones the menu reads and the frontend writes.
const (
	KeyMenuTitle    = "menu_title"
	KeyMenuSubtitle = "menu_subtitle"
	KeyMenuNotes    = "menu_notes"
	KeyHeroImage    = "hero_image"
)

// Defaults returned when the corresponding settings row does not exist.
// The aggregated menu never contains null settings values.
const (
	DefaultTitle    = "Il Nostro Menu"
	DefaultSubtitle = "Sapori autentici, preparati con passione ogni giorno."
	DefaultNotes    = ""
	DefaultHero     = ""
)

// ErrEmptyName is returned when a category or item name is missing or blank.
var ErrEmptyName = errors.New("name is required")

// ErrNegativePrice is returned when an item price is negative.
var ErrNegativePrice = errors.New("price must be a non-negative number")

// Store combines the persistence interfaces the menu service needs.
type Store interface {
	store.MenuStore
	store.SettingsStore
}

// Service aggregates the public menu and applies admin mutations.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService creates a menu service backed by the given store.
func NewService(s Store) *Service {
	return &Service{
		store:  s,
		logger: slog.Default().With("component", "menu"),
	}
}

// Menu is the aggregated public menu.
type Menu struct {
	Categories []MenuCategory `json:"categories"`
	Notes      string         `json:"notes"`
	HeroImage  string         `json:"heroImage"`
	Title      string         `json:"title"`
	Subtitle   string         `json:"subtitle"`
}

// MenuCategory is a category with its items attached in display order.
// Categories with no items are included with an empty items list; hiding
// them is a presentation decision.
type MenuCategory struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	SortOrder int        `json:"sort_order"`
	Items     []MenuItem `json:"items"`
}

// MenuItem is a single menu entry as served to the public page.
type MenuItem struct {
	ID          int64   `json:"id"`
	CategoryID  *int64  `json:"category_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	SortOrder   int     `json:"sort_order"`
}

// PublicMenu builds the aggregated menu: categories in sort order with their
// items attached (each in item sort order), plus settings with defaults.
// Items without an owning category are not shown; every item in the result
// belongs to a category that is also in the result.
func (s *Service) PublicMenu(ctx context.Context) (*Menu, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	items, err := s.store.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	// Partition items by owning category, preserving the store's order
	// (category, then sort_order, then id).
	byCategory := make(map[int64][]MenuItem)
	for _, item := range items {
		if item.CategoryID == nil {
			continue
		}
		byCategory[*item.CategoryID] = append(byCategory[*item.CategoryID], MenuItem{
			ID:          item.ID,
			CategoryID:  item.CategoryID,
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			SortOrder:   item.SortOrder,
		})
	}

	menu := &Menu{
		Categories: make([]MenuCategory, 0, len(categories)),
	}
	for _, c := range categories {
		section := MenuCategory{
			ID:        c.ID,
			Name:      c.Name,
			SortOrder: c.SortOrder,
			Items:     byCategory[c.ID],
		}
		if section.Items == nil {
			section.Items = []MenuItem{}
		}
		menu.Categories = append(menu.Categories, section)
	}

	menu.Title, err = s.settingOrDefault(ctx, KeyMenuTitle, DefaultTitle)
	if err != nil {
		return nil, err
	}
	menu.Subtitle, err = s.settingOrDefault(ctx, KeyMenuSubtitle, DefaultSubtitle)
	if err != nil {
		return nil, err
	}
	menu.Notes, err = s.settingOrDefault(ctx, KeyMenuNotes, DefaultNotes)
	if err != nil {
		return nil, err
	}
	menu.HeroImage, err = s.settingOrDefault(ctx, KeyHeroImage, DefaultHero)
	if err != nil {
		return nil, err
	}

	return menu, nil
}

// settingOrDefault reads a setting, substituting the documented default when
// no row exists.
func (s *Service) settingOrDefault(ctx context.Context, key, fallback string) (string, error) {
	value, err := s.store.GetSetting(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("reading setting %q: %w", key, err)
	}
	return value, nil
}

// CreateCategory validates and inserts a new category, returning it with its
// assigned id.
func (s *Service) CreateCategory(ctx context.Context, name string, sortOrder int) (*store.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}

	c := &store.Category{Name: name, SortOrder: sortOrder}
	if err := s.store.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateCategory replaces a category's name and sort order.
// Updating a category that doesn't exist is a silent no-op success; the
// HTTP surface does not distinguish not-found on updates.
func (s *Service) UpdateCategory(ctx context.Context, id int64, name string, sortOrder int) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}

	err := s.store.UpdateCategory(ctx, &store.Category{ID: id, Name: name, SortOrder: sortOrder})
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}

// DeleteCategory removes a category and, by store-level cascade, its items.
// Deleting an unknown id is a silent no-op success.
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	err := s.store.DeleteCategory(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}

// ItemParams carries the validated fields of an item mutation.
type ItemParams struct {
	CategoryID  *int64
	Name        string
	Description string
	Price       float64
	SortOrder   int
}

// CreateItem validates and inserts a new item, returning it with its
// assigned id.
func (s *Service) CreateItem(ctx context.Context, p ItemParams) (*store.Item, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	item := &store.Item{
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		SortOrder:   p.SortOrder,
	}
	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem replaces an item's mutable fields.
// Updating an unknown id is a silent no-op success.
func (s *Service) UpdateItem(ctx context.Context, id int64, p ItemParams) error {
	if err := p.validate(); err != nil {
		return err
	}

	err := s.store.UpdateItem(ctx, &store.Item{
		ID:          id,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		SortOrder:   p.SortOrder,
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}

// DeleteItem removes an item. Deleting an unknown id is a silent no-op
// success.
func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	err := s.store.DeleteItem(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}

func (p ItemParams) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}

// UpdateSettings applies all key/value pairs atomically. Empty keys are
// rejected before any store access.
func (s *Service) UpdateSettings(ctx context.Context, values map[string]string) error {
	for k := range values {
		if k == "" {
			return store.ErrEmptyKey
		}
	}
	return s.store.UpsertSettings(ctx, values)
}

// SetHeroImage records the hero image URL under its fixed settings key.
func (s *Service) SetHeroImage(ctx context.Context, imageURL string) error {
	return s.store.UpsertSettings(ctx, map[string]string{KeyHeroImage: imageURL})
}
