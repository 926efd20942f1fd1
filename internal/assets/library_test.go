package assets

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLibrary(t *testing.T, files map[string][]byte) *Library {
	t.Helper()
	dir := t.TempDir()
	for name, data := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
	}
	lib, err := NewLibrary(dir, 2, nil)
	require.NoError(t, err)
	t.Cleanup(lib.Close)
	return lib
}

func TestNewLibraryMissingDir(t *testing.T) {
	_, err := NewLibrary(filepath.Join(t.TempDir(), "nope"), 1, nil)
	assert.Error(t, err)
}

func TestGet(t *testing.T) {
	lib := newTestLibrary(t, map[string][]byte{"ground.png": []byte("pixels")})

	data, err := lib.Get("ground")
	require.NoError(t, err)
	assert.Equal(t, []byte("pixels"), data)
	assert.True(t, lib.IsCached("ground"))

	// Explicit extension resolves to the same file.
	data, err = lib.Get("ground.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("pixels"), data)
}

func TestGetMissing(t *testing.T) {
	lib := newTestLibrary(t, nil)
	_, err := lib.Get("absent")
	assert.Error(t, err)
	assert.False(t, lib.IsCached("absent"))
}

func TestGetRejectsTraversal(t *testing.T) {
	lib := newTestLibrary(t, nil)
	_, err := lib.Get("../secret")
	assert.Error(t, err)
}

func TestConcurrentGet(t *testing.T) {
	lib := newTestLibrary(t, map[string][]byte{"tex.png": []byte("data")})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := lib.Get("tex")
			assert.NoError(t, err)
			assert.Equal(t, []byte("data"), data)
		}()
	}
	wg.Wait()
}

func TestPrefetch(t *testing.T) {
	lib := newTestLibrary(t, map[string][]byte{"a.png": []byte("a"), "b.png": []byte("b")})

	lib.Prefetch("a", "b")

	// Prefetch is asynchronous; Get always returns the data either way.
	data, err := lib.Get("a")
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), data)
}

func TestList(t *testing.T) {
	lib := newTestLibrary(t, map[string][]byte{
		"ground.png": []byte("g"),
		"round.PNG":  []byte("r"),
		"notes.txt":  []byte("x"),
	})

	names, err := lib.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ground", "round"}, names)
}
