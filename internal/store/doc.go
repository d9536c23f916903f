// Package store provides persistent storage for the menu server using SQLite.
//
// # Architecture
//
// The package uses an interface-driven architecture with specialized
// interfaces:
//
//   - MenuStore: Categories and items
//   - SettingsStore: Singleton key/value settings
//   - SessionStore: Admin sessions
//
// SQLiteStore implements all interfaces in a single struct, allowing easy
// composition while maintaining clear interface boundaries.
//
// # Data Models
//
//   - Category: Named, ordered grouping of menu items
//   - Item: Sellable menu entry with price and description
//   - Session: Server-side admin session with expiry
//
// Settings have no model type; they are read by key and written in batches.
//
// # SQLite Configuration
//
// The store uses SQLite with WAL mode for concurrent reads:
//
//	PRAGMA journal_mode=WAL;
//	PRAGMA foreign_keys=ON;
//
// Foreign keys must stay enabled: deleting a category relies on the
// ON DELETE CASCADE constraint to remove its items.
//
// # Seeding
//
// On first run (empty categories table) the store seeds example categories,
// items, and the menu_notes setting. Reopening an existing database never
// re-seeds.
//
// # Error Handling
//
// Common errors:
//
//   - ErrNotFound: Requested entity or setting does not exist
//   - ErrDuplicateName: Category name already taken
//   - ErrSessionNotFound: Session missing or expired
//   - ErrEmptyKey: Settings batch contained an empty key (batch rolled back)
//
// All methods accept context.Context for cancellation support.
//
// # Testing
//
// Use NewSQLiteStore(":memory:") or a t.TempDir() path for tests with real
// SQLite.
package store
