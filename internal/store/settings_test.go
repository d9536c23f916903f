package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetSetting_NotFound(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.GetSetting(ctx, "menu_title")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_UpsertSettings_InsertAndOverwrite(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	err := store.UpsertSettings(ctx, map[string]string{
		"menu_title":    "La Tavola",
		"menu_subtitle": "Cucina casalinga",
	})
	require.NoError(t, err)

	title, err := store.GetSetting(ctx, "menu_title")
	require.NoError(t, err)
	assert.Equal(t, "La Tavola", title)

	// Overwrite one key, leave the other untouched
	err = store.UpsertSettings(ctx, map[string]string{"menu_title": "Trattoria"})
	require.NoError(t, err)

	title, err = store.GetSetting(ctx, "menu_title")
	require.NoError(t, err)
	assert.Equal(t, "Trattoria", title)

	subtitle, err := store.GetSetting(ctx, "menu_subtitle")
	require.NoError(t, err)
	assert.Equal(t, "Cucina casalinga", subtitle)
}

func TestStore_UpsertSettings_NoDuplicateRows(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.UpsertSettings(ctx, map[string]string{"hero_image": "/uploads/x.jpg"}))
	}

	var count int
	err := store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM settings WHERE key = 'hero_image'").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStore_UpsertSettings_AtomicOnFailure(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	// One valid pair and one invalid (empty key): neither must be persisted,
	// regardless of map iteration order.
	err := store.UpsertSettings(ctx, map[string]string{
		"menu_title": "T",
		"":           "boom",
	})
	assert.ErrorIs(t, err, ErrEmptyKey)

	_, err = store.GetSetting(ctx, "menu_title")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_UpsertSettings_RollbackKeepsOldValues(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertSettings(ctx, map[string]string{
		"menu_title":    "T",
		"menu_subtitle": "S",
	}))

	err := store.UpsertSettings(ctx, map[string]string{
		"menu_title":    "T2",
		"menu_subtitle": "S2",
		"":              "boom",
	})
	assert.ErrorIs(t, err, ErrEmptyKey)

	title, err := store.GetSetting(ctx, "menu_title")
	require.NoError(t, err)
	assert.Equal(t, "T", title)

	subtitle, err := store.GetSetting(ctx, "menu_subtitle")
	require.NoError(t, err)
	assert.Equal(t, "S", subtitle)
}

func TestStore_UpsertSettings_EmptyBatch(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	assert.NoError(t, store.UpsertSettings(ctx, nil))
	assert.NoError(t, store.UpsertSettings(ctx, map[string]string{}))
}
