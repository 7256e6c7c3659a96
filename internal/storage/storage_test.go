package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/vendortrack/internal/storage"
)

func newFile(t *testing.T) storage.Backend {
	t.Helper()

	f, err := storage.NewFile(t.TempDir())
	require.NoError(t, err)

	return f
}

func TestBackends_RoundTrip(t *testing.T) {
	backends := map[string]func(t *testing.T) storage.Backend{
		"Memory": func(*testing.T) storage.Backend { return storage.NewMemory() },
		"File":   newFile,
	}

	for name, newBackend := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			b := newBackend(t)

			_, err := b.Get(ctx, storage.KeyEvents)
			assert.ErrorIs(t, err, storage.ErrNotFound)

			require.NoError(t, b.Put(ctx, storage.KeyEvents, []byte(`[{"id":"a"}]`)))
			require.NoError(t, b.Put(ctx, storage.KeyEvents, []byte(`[{"id":"b"}]`)))

			got, err := b.Get(ctx, storage.KeyEvents)
			require.NoError(t, err)
			assert.JSONEq(t, `[{"id":"b"}]`, string(got))
		})
	}
}

func TestMemory_CopiesValues(t *testing.T) {
	ctx := context.Background()
	m := storage.NewMemory()

	value := []byte(`"alice"`)
	require.NoError(t, m.Put(ctx, storage.KeyUser, value))

	value[1] = 'X'

	got, err := m.Get(ctx, storage.KeyUser)
	require.NoError(t, err)
	assert.Equal(t, `"alice"`, string(got))
}

func TestFile_RejectsPathKeys(t *testing.T) {
	ctx := context.Background()
	b := newFile(t)

	assert.Error(t, b.Put(ctx, "../escape", []byte("{}")))
	assert.Error(t, b.Put(ctx, "", []byte("{}")))

	_, err := b.Get(ctx, "nested/key")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrNotFound)
}

func TestFile_LeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	f, err := storage.NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, f.Put(ctx, storage.KeyProducts, []byte("[]")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, storage.KeyProducts+".json", entries[0].Name())

	_, err = os.Stat(filepath.Join(dir, storage.KeyProducts+".json"))
	assert.NoError(t, err)
}
