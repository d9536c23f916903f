package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
	})

	return store
}

// clearSeedData removes the seeded example menu so tests start from an empty
// store without disabling seeding itself.
func clearSeedData(t *testing.T, s *SQLiteStore) {
	t.Helper()
	ctx := context.Background()

	categories, err := s.ListCategories(ctx)
	require.NoError(t, err)
	for _, c := range categories {
		require.NoError(t, s.DeleteCategory(ctx, c.ID))
	}
}

func TestStore_SeedDefaults(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	categories, err := store.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Piatti Principali", categories[0].Name)
	assert.Equal(t, "Bevande", categories[1].Name)

	items, err := store.ListItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 4)

	notes, err := store.GetSetting(ctx, "menu_notes")
	require.NoError(t, err)
	assert.Equal(t, "Note: Servizio e coperto esclusi.", notes)
}

func TestStore_SeedDefaults_NotRepeated(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	ctx := context.Background()

	s, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Reopen the same database; the seed must not run again
	s, err = NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer s.Close()

	categories, err := s.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}

func TestStore_SeedDefaults_SkippedWhenCategoriesExist(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	ctx := context.Background()

	s, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)

	clearSeedData(t, s)
	require.NoError(t, s.CreateCategory(ctx, &Category{Name: "Dolci", SortOrder: 1}))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer s.Close()

	categories, err := s.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Dolci", categories[0].Name)
}

func TestStore_CreateCategory(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	c := &Category{Name: "Antipasti", SortOrder: 5}
	err := store.CreateCategory(ctx, c)
	require.NoError(t, err)
	assert.NotZero(t, c.ID)

	categories, err := store.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Antipasti", categories[2].Name)
}

func TestStore_CreateCategory_DuplicateName(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateCategory(ctx, &Category{Name: "Antipasti"}))

	err := store.CreateCategory(ctx, &Category{Name: "Antipasti"})
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestStore_ListCategories_Order(t *testing.T) {
	store := setupTestStore(t)
	clearSeedData(t, store)
	ctx := context.Background()

	// Insert out of display order
	require.NoError(t, store.CreateCategory(ctx, &Category{Name: "third", SortOrder: 3}))
	require.NoError(t, store.CreateCategory(ctx, &Category{Name: "first", SortOrder: 1}))
	require.NoError(t, store.CreateCategory(ctx, &Category{Name: "second", SortOrder: 2}))

	categories, err := store.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "first", categories[0].Name)
	assert.Equal(t, "second", categories[1].Name)
	assert.Equal(t, "third", categories[2].Name)
}

func TestStore_ListCategories_TieBreakOnID(t *testing.T) {
	store := setupTestStore(t)
	clearSeedData(t, store)
	ctx := context.Background()

	require.NoError(t, store.CreateCategory(ctx, &Category{Name: "older", SortOrder: 1}))
	require.NoError(t, store.CreateCategory(ctx, &Category{Name: "newer", SortOrder: 1}))

	categories, err := store.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "older", categories[0].Name)
	assert.Equal(t, "newer", categories[1].Name)
}

func TestStore_UpdateCategory(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	c := &Category{Name: "Antipasti", SortOrder: 1}
	require.NoError(t, store.CreateCategory(ctx, c))

	c.Name = "Contorni"
	c.SortOrder = 9
	require.NoError(t, store.UpdateCategory(ctx, c))

	categories, err := store.ListCategories(ctx)
	require.NoError(t, err)

	var found *Category
	for _, got := range categories {
		if got.ID == c.ID {
			found = got
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, "Contorni", found.Name)
	assert.Equal(t, 9, found.SortOrder)
}

func TestStore_UpdateCategory_NotFound(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	err := store.UpdateCategory(ctx, &Category{ID: 9999, Name: "ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_DeleteCategory_CascadesToItems(t *testing.T) {
	store := setupTestStore(t)
	clearSeedData(t, store)
	ctx := context.Background()

	a := &Category{Name: "A", SortOrder: 1}
	b := &Category{Name: "B", SortOrder: 2}
	require.NoError(t, store.CreateCategory(ctx, a))
	require.NoError(t, store.CreateCategory(ctx, b))

	require.NoError(t, store.CreateItem(ctx, &Item{CategoryID: &a.ID, Name: "x", Price: 1.00}))
	require.NoError(t, store.CreateItem(ctx, &Item{CategoryID: &b.ID, Name: "y", Price: 2.00}))

	require.NoError(t, store.DeleteCategory(ctx, a.ID))

	categories, err := store.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "B", categories[0].Name)

	// Only the item owned by the surviving category remains
	items, err := store.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "y", items[0].Name)
}

func TestStore_DeleteCategory_NotFound(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	err := store.DeleteCategory(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_CreateItem(t *testing.T) {
	store := setupTestStore(t)
	clearSeedData(t, store)
	ctx := context.Background()

	c := &Category{Name: "Dolci", SortOrder: 1}
	require.NoError(t, store.CreateCategory(ctx, c))

	item := &Item{
		CategoryID:  &c.ID,
		Name:        "Tiramisù",
		Description: "Savoiardi, caffè e mascarpone",
		Price:       6.50,
		SortOrder:   1,
	}
	require.NoError(t, store.CreateItem(ctx, item))
	assert.NotZero(t, item.ID)

	items, err := store.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Tiramisù", items[0].Name)
	assert.Equal(t, 6.50, items[0].Price)
	require.NotNil(t, items[0].CategoryID)
	assert.Equal(t, c.ID, *items[0].CategoryID)
}

func TestStore_CreateItem_NilCategory(t *testing.T) {
	store := setupTestStore(t)
	clearSeedData(t, store)
	ctx := context.Background()

	item := &Item{Name: "Misterioso", Price: 4.00}
	require.NoError(t, store.CreateItem(ctx, item))

	items, err := store.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].CategoryID)
	assert.Empty(t, items[0].Description)
}

func TestStore_ListItems_Order(t *testing.T) {
	store := setupTestStore(t)
	clearSeedData(t, store)
	ctx := context.Background()

	a := &Category{Name: "A", SortOrder: 1}
	b := &Category{Name: "B", SortOrder: 2}
	require.NoError(t, store.CreateCategory(ctx, a))
	require.NoError(t, store.CreateCategory(ctx, b))

	// Insert interleaved and out of sort order
	require.NoError(t, store.CreateItem(ctx, &Item{CategoryID: &b.ID, Name: "b2", Price: 1, SortOrder: 2}))
	require.NoError(t, store.CreateItem(ctx, &Item{CategoryID: &a.ID, Name: "a2", Price: 1, SortOrder: 2}))
	require.NoError(t, store.CreateItem(ctx, &Item{CategoryID: &a.ID, Name: "a1", Price: 1, SortOrder: 1}))
	require.NoError(t, store.CreateItem(ctx, &Item{CategoryID: &b.ID, Name: "b1", Price: 1, SortOrder: 1}))

	items, err := store.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 4)

	names := []string{items[0].Name, items[1].Name, items[2].Name, items[3].Name}
	assert.Equal(t, []string{"a1", "a2", "b1", "b2"}, names)
}

func TestStore_UpdateItem(t *testing.T) {
	store := setupTestStore(t)
	clearSeedData(t, store)
	ctx := context.Background()

	c := &Category{Name: "Dolci", SortOrder: 1}
	require.NoError(t, store.CreateCategory(ctx, c))

	item := &Item{CategoryID: &c.ID, Name: "Tiramisù", Price: 6.50, SortOrder: 1}
	require.NoError(t, store.CreateItem(ctx, item))

	item.Name = "Panna Cotta"
	item.Price = 5.00
	item.Description = "Con frutti di bosco"
	require.NoError(t, store.UpdateItem(ctx, item))

	items, err := store.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Panna Cotta", items[0].Name)
	assert.Equal(t, 5.00, items[0].Price)
	assert.Equal(t, "Con frutti di bosco", items[0].Description)
}

func TestStore_UpdateItem_NotFound(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	err := store.UpdateItem(ctx, &Item{ID: 9999, Name: "ghost", Price: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_DeleteItem(t *testing.T) {
	store := setupTestStore(t)
	clearSeedData(t, store)
	ctx := context.Background()

	item := &Item{Name: "Tiramisù", Price: 6.50}
	require.NoError(t, store.CreateItem(ctx, item))
	require.NoError(t, store.DeleteItem(ctx, item.ID))

	items, err := store.ListItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	err = store.DeleteItem(ctx, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
