// Package assets loads texture images from a directory, with an
// in-memory cache, duplicate-load suppression, and background workers
// for prefetching so the render loop never blocks on disk.
package assets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Library manages texture loading and caching.
type Library struct {
	dir string
	log *slog.Logger

	cache   map[string][]byte
	cacheMu sync.RWMutex

	inFlight   map[string]chan struct{}
	inFlightMu sync.Mutex

	loadQueue chan string
	wg        sync.WaitGroup
}

// NewLibrary creates a library rooted at dir with the given number of
// background load workers. The directory must exist.
func NewLibrary(dir string, workers int, log *slog.Logger) (*Library, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("asset directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("asset path %q is not a directory", dir)
	}
	if log == nil {
		log = slog.Default()
	}

	lib := &Library{
		dir:       dir,
		log:       log.With("component", "assets"),
		cache:     make(map[string][]byte),
		inFlight:  make(map[string]chan struct{}),
		loadQueue: make(chan string, 64),
	}

	for i := 0; i < workers; i++ {
		lib.wg.Add(1)
		go lib.worker()
	}

	return lib, nil
}

func (l *Library) worker() {
	defer l.wg.Done()
	for name := range l.loadQueue {
		if _, err := l.Get(name); err != nil {
			l.log.Warn("prefetch failed", "name", name, "err", err)
		}
	}
}

// Close shuts down the background workers.
func (l *Library) Close() {
	close(l.loadQueue)
	l.wg.Wait()
}

// path returns the file path for a named texture. Names without an
// extension default to .png.
func (l *Library) path(name string) string {
	if filepath.Ext(name) == "" {
		name += ".png"
	}
	return filepath.Join(l.dir, name)
}

// Get returns the encoded bytes of the named texture, reading from disk
// on first use. Concurrent requests for the same name share one read.
func (l *Library) Get(name string) ([]byte, error) {
	if strings.Contains(name, "..") {
		return nil, fmt.Errorf("invalid asset name %q", name)
	}

	l.cacheMu.RLock()
	data, ok := l.cache[name]
	l.cacheMu.RUnlock()
	if ok {
		return data, nil
	}

	// Wait for a load already in progress instead of reading twice.
	l.inFlightMu.Lock()
	if ch, exists := l.inFlight[name]; exists {
		l.inFlightMu.Unlock()
		<-ch
		l.cacheMu.RLock()
		data, ok = l.cache[name]
		l.cacheMu.RUnlock()
		if !ok {
			return nil, fmt.Errorf("asset %q failed to load", name)
		}
		return data, nil
	}
	ch := make(chan struct{})
	l.inFlight[name] = ch
	l.inFlightMu.Unlock()

	defer func() {
		l.inFlightMu.Lock()
		delete(l.inFlight, name)
		close(ch)
		l.inFlightMu.Unlock()
	}()

	data, err := os.ReadFile(l.path(name))
	if err != nil {
		return nil, fmt.Errorf("reading asset %q: %w", name, err)
	}

	l.cacheMu.Lock()
	l.cache[name] = data
	l.cacheMu.Unlock()

	return data, nil
}

// Prefetch queues the named textures for loading in the background.
// Full queues drop names rather than block.
func (l *Library) Prefetch(names ...string) {
	for _, name := range names {
		if l.IsCached(name) {
			continue
		}
		select {
		case l.loadQueue <- name:
		default:
		}
	}
}

// IsCached reports whether the named texture is already in memory.
func (l *Library) IsCached(name string) bool {
	l.cacheMu.RLock()
	defer l.cacheMu.RUnlock()
	_, ok := l.cache[name]
	return ok
}

// List returns the names of the loadable textures in the library
// directory, without extensions, in directory order.
func (l *Library) List() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			names = append(names, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
		}
	}
	return names, nil
}
