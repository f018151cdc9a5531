package indexstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/ttsdeck/internal/cards"
	"github.com/youruser/ttsdeck/internal/tts"
)

func testEntries() []cards.SetEntry {
	sheet := &tts.AssetSheet{
		FaceURL:      "https://example.com/bs.jpg",
		BackURL:      "https://example.com/back.jpg",
		NumWidth:     10,
		NumHeight:    7,
		BackIsHidden: true,
	}
	return []cards.SetEntry{
		{
			SetName:    "XY Promos",
			SetAbbr:    "PR-XY",
			DeckAssets: map[int]*tts.AssetSheet{},
			Cards:      []cards.CardRef{},
		},
		{
			SetID:      "01",
			SetName:    "Base",
			SetAbbr:    "BS",
			DeckAssets: map[int]*tts.AssetSheet{3: sheet, 4: {FaceURL: "https://example.com/bs2.jpg", NumWidth: 10, NumHeight: 7, Type: 1}},
			Cards: []cards.CardRef{
				{ID: 346, Name: "Charmander"},
				{ID: 302, Name: "Blastoise"},
				{ID: 401, Name: "Zapdos"},
			},
		},
	}
}

var entryOpts = cmp.Options{
	cmpopts.IgnoreUnexported(cards.SetEntry{}),
}

func TestIsSQLite(t *testing.T) {
	assert.True(t, IsSQLite("index.db"))
	assert.True(t, IsSQLite("dir/index.SQLite"))
	assert.True(t, IsSQLite("index.sqlite3"))
	assert.False(t, IsSQLite("index.json"))
	assert.False(t, IsSQLite("index"))
}

func TestJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "index.json")
	want := testEntries()
	require.NoError(t, SaveJSON(path, want))

	got, err := LoadJSON(path)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got, entryOpts); diff != "" {
		t.Errorf("mismatch:\n%s", diff)
	}
}

func TestSaveJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	require.NoError(t, SaveJSON(path, nil))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestSQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")
	want := testEntries()
	require.NoError(t, SaveSQLite(context.Background(), path, want))

	got, err := LoadSQLite(path)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got, entryOpts); diff != "" {
		t.Errorf("mismatch:\n%s", diff)
	}
}

func TestSaveSQLiteReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")
	require.NoError(t, SaveSQLite(context.Background(), path, testEntries()))
	require.NoError(t, SaveSQLite(context.Background(), path, testEntries()[:1]))

	got, err := LoadSQLite(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "PR-XY", got[0].SetAbbr)
}

func TestSaveSQLiteCancelledKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.db")
	require.NoError(t, SaveSQLite(context.Background(), path, testEntries()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, SaveSQLite(ctx, path, testEntries()[:1]))

	got, err := LoadSQLite(path)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1, "temporary database left behind")
}

func TestSaveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, name := range []string{"index.json", "index.db"} {
		path := filepath.Join(t.TempDir(), name)
		err := Save(ctx, path, testEntries())
		assert.True(t, errors.Is(err, context.Canceled), name)
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr), name)
	}
}

func TestLoadDispatch(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"index.json", "index.db"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Save(context.Background(), path, testEntries()))

			ix, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, 2, ix.Len())

			set, ok := ix.Lookup("BS")
			require.True(t, ok)
			id, ok := set.CardID("Charmander")
			require.True(t, ok)
			assert.Equal(t, 346, id)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
	_, err = Load(filepath.Join(dir, "missing.db"))
	assert.Error(t, err)
}

func TestLoadJSONCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := LoadJSON(path)
	assert.Error(t, err)
}
