package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	root := t.TempDir()
	store, err := New(root, clockwork.NewRealClock())
	require.NoError(t, err)
	return store, root
}

func TestNew_CreatesRootDirectory(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "data")

	_, err := New(root, clockwork.NewRealClock())
	require.NoError(t, err)

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestRead_MissingFileYieldsEmptyDocument(t *testing.T) {
	store, _ := newTestStore(t)

	doc, err := store.Read("users")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Empty(t, doc)
}

func TestWriteRead_Roundtrip(t *testing.T) {
	store, _ := newTestStore(t)

	doc := Document{
		"u1": json.RawMessage(`{"username":"alice"}`),
		"u2": json.RawMessage(`{"username":"bob"}`),
	}
	require.NoError(t, store.Write("users", doc))

	got, err := store.Read("users")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.JSONEq(t, `{"username":"alice"}`, string(got["u1"]))
	assert.JSONEq(t, `{"username":"bob"}`, string(got["u2"]))
}

func TestWrite_HumanReadableFormat(t *testing.T) {
	store, root := newTestStore(t)

	doc := Document{"u1": json.RawMessage(`{"username":"alice"}`)}
	require.NoError(t, store.Write("users", doc))

	data, err := os.ReadFile(filepath.Join(root, "users.json"))
	require.NoError(t, err)

	assert.Contains(t, string(data), "\n    \"u1\"", "documents are indented with four spaces")
	assert.Equal(t, byte('\n'), data[len(data)-1], "documents end with a trailing newline")
}

func TestWrite_ReplacesPreviousContent(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Write("guilds", Document{"g1": json.RawMessage(`{"name":"Alpha"}`)}))
	require.NoError(t, store.Write("guilds", Document{"g2": json.RawMessage(`{"name":"Beta"}`)}))

	got, err := store.Read("guilds")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Contains(t, got, "g2")
}

func TestWrite_LeavesNoTempFiles(t *testing.T) {
	store, root := newTestStore(t)

	require.NoError(t, store.Write("users", Document{}))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "users.json", entries[0].Name())
}

func TestRead_CorruptFile(t *testing.T) {
	store, root := newTestStore(t)

	require.NoError(t, os.WriteFile(filepath.Join(root, "users.json"), []byte("{not json"), 0o644))

	_, err := store.Read("users")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse document")
}

func TestValidateName(t *testing.T) {
	store, _ := newTestStore(t)

	for _, name := range []string{"", ".", "..", "a/b", `a\b`, "../escape", "weird..name"} {
		t.Run("name "+name, func(t *testing.T) {
			_, err := store.Read(name)
			assert.ErrorIs(t, err, ErrInvalidName)

			err = store.Write(name, Document{})
			assert.ErrorIs(t, err, ErrInvalidName)
		})
	}
}

func TestWrite_ConcurrentSameName(t *testing.T) {
	store, _ := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Write("users", Document{"u1": json.RawMessage(`{"username":"alice"}`)})
		}()
	}
	wg.Wait()

	got, err := store.Read("users")
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"alice"}`, string(got["u1"]))
}
