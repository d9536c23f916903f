// ABOUTME: SQLite implementation of the store interfaces using modernc.org/sqlite
// ABOUTME: Provides category/item persistence with automatic schema creation and seeding

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements MenuStore, SettingsStore and SessionStore using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is created if it doesn't exist and default menu data is seeded
// on first run. Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys so category deletes cascade to items
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	if err := s.seedDefaults(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("seeding defaults: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS categories (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT NOT NULL UNIQUE,
			sort_order INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS menu_items (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			category_id INTEGER,
			name        TEXT NOT NULL,
			description TEXT,
			price       REAL NOT NULL,
			sort_order  INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY(category_id) REFERENCES categories(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_menu_items_category
			ON menu_items(category_id, sort_order);

		CREATE TABLE IF NOT EXISTS settings (
			key   TEXT PRIMARY KEY,
			value TEXT
		);

		CREATE TABLE IF NOT EXISTS sessions (
			id         TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			expires_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_sessions_expires ON sessions(expires_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// seedDefaults inserts example menu data on first run.
// Seeding only happens when the categories table is empty, so reopening an
// existing database never duplicates rows.
func (s *SQLiteStore) seedDefaults(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("counting categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	insertCategory := func(name string, sortOrder int) (int64, error) {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO categories (name, sort_order) VALUES (?, ?)", name, sortOrder)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	}

	mainID, err := insertCategory("Piatti Principali", 1)
	if err != nil {
		return fmt.Errorf("seeding categories: %w", err)
	}
	drinksID, err := insertCategory("Bevande", 2)
	if err != nil {
		return fmt.Errorf("seeding categories: %w", err)
	}

	items := []struct {
		categoryID  int64
		name        string
		description string
		price       float64
		sortOrder   int
	}{
		{mainID, "Hamburger Classico", "Hamburger di manzo con formaggio, lattuga e pomodoro", 12.50, 1},
		{mainID, "Club Sandwich", "Tacchino, pancetta, lattuga, pomodoro e maionese su pane tostato", 10.00, 2},
		{drinksID, "Frullato", "Frullato alla vaniglia o cioccolato con panna montata", 5.50, 1},
		{drinksID, "Tè Freddo", "Tè nero appena preparato servito con ghiaccio", 3.00, 2},
	}

	for _, it := range items {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO menu_items (category_id, name, description, price, sort_order) VALUES (?, ?, ?, ?, ?)",
			it.categoryID, it.name, it.description, it.price, it.sortOrder)
		if err != nil {
			return fmt.Errorf("seeding items: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)",
		"menu_notes", "Note: Servizio e coperto esclusi.")
	if err != nil {
		return fmt.Errorf("seeding settings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}

	s.logger.Info("seeded default menu data")
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	s.logger.Info("closing SQLite store")
	return s.db.Close()
}

// ListCategories returns all categories ordered by sort_order ascending,
// with ties broken by id (insertion order).
func (s *SQLiteStore) ListCategories(ctx context.Context) ([]*Category, error) {
	query := `
		SELECT id, name, sort_order
		FROM categories
		ORDER BY sort_order ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.SortOrder); err != nil {
			return nil, fmt.Errorf("scanning category row: %w", err)
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category rows: %w", err)
	}

	return categories, nil
}

// CreateCategory inserts a new category and sets its assigned ID.
// Returns ErrDuplicateName if a category with the same name exists.
func (s *SQLiteStore) CreateCategory(ctx context.Context, c *Category) error {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO categories (name, sort_order) VALUES (?, ?)",
		c.Name, c.SortOrder)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("inserting category: %w", err)
	}

	c.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting category id: %w", err)
	}

	s.logger.Debug("created category", "id", c.ID, "name", c.Name)
	return nil
}

// UpdateCategory replaces a category's mutable fields.
// Returns ErrNotFound if the category doesn't exist and ErrDuplicateName if
// the new name collides with another category.
func (s *SQLiteStore) UpdateCategory(ctx context.Context, c *Category) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE categories SET name = ?, sort_order = ? WHERE id = ?",
		c.Name, c.SortOrder, c.ID)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("updating category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("updated category", "id", c.ID)
	return nil
}

// DeleteCategory removes a category. Items referencing it are removed by the
// foreign-key cascade. Returns ErrNotFound if the category doesn't exist.
func (s *SQLiteStore) DeleteCategory(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("deleted category", "id", id)
	return nil
}

// ListItems returns all items ordered by owning category, then sort_order,
// then id. This is the order the menu aggregator attaches them in.
func (s *SQLiteStore) ListItems(ctx context.Context) ([]*Item, error) {
	query := `
		SELECT id, category_id, name, description, price, sort_order
		FROM menu_items
		ORDER BY category_id ASC, sort_order ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		var item Item
		var categoryID sql.NullInt64
		var description sql.NullString

		if err := rows.Scan(&item.ID, &categoryID, &item.Name, &description, &item.Price, &item.SortOrder); err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}

		if categoryID.Valid {
			item.CategoryID = &categoryID.Int64
		}
		item.Description = description.String
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item rows: %w", err)
	}

	return items, nil
}

// CreateItem inserts a new item and sets its assigned ID.
func (s *SQLiteStore) CreateItem(ctx context.Context, item *Item) error {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO menu_items (category_id, name, description, price, sort_order) VALUES (?, ?, ?, ?, ?)",
		nullInt64(item.CategoryID), item.Name, nullString(item.Description), item.Price, item.SortOrder)
	if err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}

	item.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting item id: %w", err)
	}

	s.logger.Debug("created item", "id", item.ID, "name", item.Name)
	return nil
}

// UpdateItem replaces an item's mutable fields.
// Returns ErrNotFound if the item doesn't exist.
func (s *SQLiteStore) UpdateItem(ctx context.Context, item *Item) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE menu_items SET category_id = ?, name = ?, description = ?, price = ?, sort_order = ? WHERE id = ?",
		nullInt64(item.CategoryID), item.Name, nullString(item.Description), item.Price, item.SortOrder, item.ID)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("updated item", "id", item.ID)
	return nil
}

// DeleteItem removes an item. Returns ErrNotFound if the item doesn't exist.
func (s *SQLiteStore) DeleteItem(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM menu_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("deleted item", "id", id)
	return nil
}

// nullString returns nil for empty strings, otherwise the string itself
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullInt64 returns nil for nil pointers, otherwise the pointed-to value
func nullInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

// isUniqueConstraintError checks if an error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	// SQLite returns "UNIQUE constraint failed" in the error message
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") || strings.Contains(err.Error(), "unique constraint"))
}

// Ensure SQLiteStore implements the store interfaces
var _ MenuStore = (*SQLiteStore)(nil)
var _ SettingsStore = (*SQLiteStore)(nil)
var _ SessionStore = (*SQLiteStore)(nil)
