package datastore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *DataStore {
	t.Helper()
	cfg := DefaultConfig(filepath.Join(t.TempDir(), "store.json"))
	cfg.AutoSaveInterval = 0 // no background saves in tests
	ds, err := NewWithConfig(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ds.Close() })
	return ds
}

func TestSetGetRoundTrip(t *testing.T) {
	ds := newTestStore(t)

	type record struct {
		Name  string         `json:"name"`
		Perms map[string]int `json:"perms"`
	}

	in := record{Name: "lobby", Perms: map[string]int{"info": 1}}
	require.NoError(t, ds.Set("rooms", in))

	var out record
	found, err := ds.Get("rooms", &out)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, in, out)

	found, err = ds.Get("missing", &out)
	require.NoError(t, err)
	require.False(t, found)
}

func TestPersistAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	cfg := DefaultConfig(path)
	cfg.AutoSaveInterval = 0
	cfg.BackupCount = 0

	ds, err := NewWithConfig(cfg)
	require.NoError(t, err)
	require.NoError(t, ds.Set("aliases", map[string]string{"tour": "newtour"}))
	require.NoError(t, ds.Close())

	ds2, err := NewWithConfig(cfg)
	require.NoError(t, err)
	defer ds2.Close()

	var aliases map[string]string
	found, err := ds2.Get("aliases", &aliases)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "newtour", aliases["tour"])
}

func TestUnchangedDataSkipsRewrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	cfg := DefaultConfig(path)
	cfg.AutoSaveInterval = 0
	cfg.BackupCount = 0

	ds, err := NewWithConfig(cfg)
	require.NoError(t, err)
	defer ds.Close()

	require.NoError(t, ds.Set("sleep", map[string]bool{"lobby": true}))
	require.NoError(t, ds.SaveToFile())

	before, err := os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, ds.SaveToFile())
	after, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, before.ModTime(), after.ModTime())
}

func TestConcurrentSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	cfg := DefaultConfig(path)
	cfg.AutoSaveInterval = time.Millisecond // keep the autosave loop in play
	cfg.BackupCount = 0

	ds, err := NewWithConfig(cfg)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				require.NoError(t, ds.Set(fmt.Sprintf("section-%d", n), map[string]int{"seq": j}))
				require.NoError(t, ds.SaveToFile())
			}
		}(i)
	}
	wg.Wait()
	require.NoError(t, ds.Close())

	// The file on disk is a valid document holding every section.
	ds2, err := NewWithConfig(cfg)
	require.NoError(t, err)
	defer ds2.Close()
	require.Len(t, ds2.Keys(), 8)
}

func TestDeleteRemovesSection(t *testing.T) {
	ds := newTestStore(t)
	require.NoError(t, ds.Set("roomctrl", map[string]string{"a": "b"}))
	ds.Delete("roomctrl")

	var out map[string]string
	found, err := ds.Get("roomctrl", &out)
	require.NoError(t, err)
	require.False(t, found)
	require.Equal(t, []string{}, ds.Keys())
}
