package datastore

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

func open(t *testing.T, path string) *DataStore {
	t.Helper()
	cfg := DefaultConfig(path)
	cfg.AutoSaveInterval = 0
	ds, err := Open(cfg)
	require.NoError(t, err)
	return ds
}

func TestPutFlushReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.json")
	ds := open(t, path)

	require.NoError(t, ds.Put("g:c", pair{A: 0.25, B: 1}))
	require.NoError(t, ds.Flush())
	require.NoError(t, ds.Close())

	again := open(t, path)
	defer again.Close()

	var got pair
	ok, err := again.Get("g:c", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, pair{A: 0.25, B: 1}, got)
	assert.Equal(t, []string{"g:c"}, again.Keys())

	ok, err = again.Get("missing", &got)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestCorruptFileIsMovedAside(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	ds := open(t, path)
	defer ds.Close()
	assert.Empty(t, ds.Keys())

	aside, err := filepath.Glob(path + ".corrupt.*")
	require.NoError(t, err)
	assert.Len(t, aside, 1)
}

func TestConcurrentFlushes(t *testing.T) {
	ds := open(t, filepath.Join(t.TempDir(), "store.json"))
	defer ds.Close()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, ds.Put(string(rune('a'+i)), pair{A: float64(i)}))
			assert.NoError(t, ds.Flush())
		}(i)
	}
	wg.Wait()
	assert.Len(t, ds.Keys(), 16)
}

func TestBackupsArePruned(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	cfg := DefaultConfig(path)
	cfg.AutoSaveInterval = 0
	cfg.BackupCount = 2
	ds, err := Open(cfg)
	require.NoError(t, err)
	defer ds.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, ds.Put("k", i))
		require.NoError(t, ds.Flush())
	}
	backups, err := filepath.Glob(path + ".backup.*")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(backups), 2)
}

func TestClosedStoreRejectsWrites(t *testing.T) {
	ds := open(t, filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, ds.Close())
	assert.ErrorIs(t, ds.Put("k", 1), ErrClosed)
	assert.ErrorIs(t, ds.Flush(), ErrClosed)
	assert.NoError(t, ds.Close())
}
