package draft

import (
	"context"
	"testing"

	"github.com/mkvist/hatchctl/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "assetDraft_user@example.com", Key("asset", "", "user@example.com"))
	assert.Equal(t, "assetDraft_a1_user@example.com", Key("asset", "a1", "user@example.com"))
	assert.Equal(t, "feedstockDraft_f9_ops@farm.example", Key("feedstock", "f9", "ops@farm.example"))
}

// Saving a partial draft and reloading the create form yields the saved
// fields with everything else at its default.
func TestStore_SaveLoadMergeRoundTrip(t *testing.T) {
	store := NewStore(testutil.NewTestDB(t))
	ctx := context.Background()
	key := Key("asset", "", "user@example.com")

	require.NoError(t, store.Save(ctx, key, map[string]string{
		"name":     "Net",
		"quantity": "10",
	}))

	loaded, err := store.Load(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	defaults := map[string]string{
		"name":     "",
		"quantity": "1",
		"category": "EQUIPMENT",
		"status":   "ACTIVE",
	}
	merged := Merge(loaded, defaults)
	assert.Equal(t, "Net", merged["name"])
	assert.Equal(t, "10", merged["quantity"])
	assert.Equal(t, "EQUIPMENT", merged["category"], "missing draft fields fall back to defaults")
	assert.Equal(t, "ACTIVE", merged["status"])
}

func TestStore_LoadMissingReturnsNil(t *testing.T) {
	store := NewStore(testutil.NewTestDB(t))

	loaded, err := store.Load(context.Background(), Key("asset", "", "nobody@example.com"))
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_SaveOverwrites(t *testing.T) {
	store := NewStore(testutil.NewTestDB(t))
	ctx := context.Background()
	key := Key("pool", "p1", "user@example.com")

	require.NoError(t, store.Save(ctx, key, map[string]string{"name": "old"}))
	require.NoError(t, store.Save(ctx, key, map[string]string{"name": "new"}))

	loaded, err := store.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "new", loaded["name"])
}

func TestStore_Clear(t *testing.T) {
	store := NewStore(testutil.NewTestDB(t))
	ctx := context.Background()
	key := Key("asset", "a1", "user@example.com")

	require.NoError(t, store.Save(ctx, key, map[string]string{"name": "x"}))
	require.NoError(t, store.Clear(ctx, key))

	loaded, err := store.Load(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Clearing again is a no-op.
	assert.NoError(t, store.Clear(ctx, key))
}

func TestStore_CorruptPayloadIsAnError(t *testing.T) {
	database := testutil.NewTestDB(t)
	store := NewStore(database)
	ctx := context.Background()
	key := Key("asset", "", "user@example.com")

	_, err := database.ExecContext(ctx,
		`INSERT INTO drafts (key, payload, updated_at) VALUES (?, ?, ?)`,
		key, "{not json", "2024-06-01T00:00:00Z")
	require.NoError(t, err)

	_, err = store.Load(ctx, key)
	assert.Error(t, err, "corrupt drafts surface as errors, not panics")
}

func TestMerge_DraftWinsEvenWhenEmpty(t *testing.T) {
	merged := Merge(
		map[string]string{"name": ""},
		map[string]string{"name": "fallback", "unit": "kg"},
	)
	assert.Equal(t, "", merged["name"], "a field present in the draft wins, even blank")
	assert.Equal(t, "kg", merged["unit"])
}
