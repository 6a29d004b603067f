package formats

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/goliatone/go-addressformat/internal/definitions"
)

// entry is a memoized load result. A nil definition with a nil err is a
// tombstone for a country code the source does not have.
type entry struct {
	definition *definitions.RawDefinition
	err        error
}

func (e entry) absent() bool {
	return e.definition == nil && e.err == nil
}

// arena memoizes raw definitions per country code for the life of a service,
// including negative results. Concurrent first loads of one code share a
// single fetch.
type arena struct {
	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group
}

func newArena() *arena {
	return &arena{entries: make(map[string]entry)}
}

func (a *arena) lookup(code string) (entry, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	cached, ok := a.entries[code]
	return cached, ok
}

func (a *arena) store(code string, value entry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries[code] = value
}

// resolve returns the cached entry for code, calling load at most once per
// code across every caller.
func (a *arena) resolve(code string, load func() entry) entry {
	if cached, ok := a.lookup(code); ok {
		return cached
	}
	value, _, _ := a.group.Do(code, func() (any, error) {
		if cached, ok := a.lookup(code); ok {
			return cached, nil
		}
		loaded := load()
		a.store(code, loaded)
		return loaded, nil
	})
	return value.(entry)
}

func (a *arena) size() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.entries)
}
