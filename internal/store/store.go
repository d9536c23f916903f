// ABOUTME: Store interfaces and data types for menu persistence
// ABOUTME: Defines Category, Item and Session models plus sentinel errors

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateName is returned when a category name already exists.
var ErrDuplicateName = errors.New("category name already exists")

// ErrEmptyKey is returned when a settings upsert contains an empty key.
// The whole batch is rolled back when this happens.
var ErrEmptyKey = errors.New("setting key must not be empty")

// ErrSessionNotFound is returned when a session doesn't exist or is expired.
var ErrSessionNotFound = errors.New("session not found")

// Category is a named, ordered grouping of menu items.
type Category struct {
	ID        int64
	Name      string
	SortOrder int
}

// Item is a single sellable menu entry. CategoryID is nullable; items whose
// category is deleted are removed by the store-level cascade.
type Item struct {
	ID          int64
	CategoryID  *int64
	Name        string
	Description string
	Price       float64
	SortOrder   int
}

// Session is a server-side admin session. A session row existing and being
// unexpired is what makes a request privileged.
type Session struct {
	ID        string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// MenuStore defines persistence for categories and items.
type MenuStore interface {
	// Categories, ordered by sort_order then id.
	ListCategories(ctx context.Context) ([]*Category, error)
	CreateCategory(ctx context.Context, c *Category) error
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id int64) error

	// Items, ordered by category_id, then sort_order, then id.
	ListItems(ctx context.Context) ([]*Item, error)
	CreateItem(ctx context.Context, item *Item) error
	UpdateItem(ctx context.Context, item *Item) error
	DeleteItem(ctx context.Context, id int64) error
}

// SettingsStore defines persistence for key/value settings.
type SettingsStore interface {
	// GetSetting returns the value for a key, or ErrNotFound if no row exists.
	GetSetting(ctx context.Context, key string) (string, error)

	// UpsertSettings applies all pairs in a single transaction. Either every
	// pair is persisted or none are.
	UpsertSettings(ctx context.Context, values map[string]string) error
}

// SessionStore defines persistence for admin sessions.
type SessionStore interface {
	CreateSession(ctx context.Context, session *Session) error
	GetSession(ctx context.Context, id string) (*Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context) error
}
