// Package aircraftdb holds the process-wide aircraft type reference used
// for icon enrichment. The reference is large relative to the rest of the
// card, so it loads lazily in the background the first time a card asks
// for it; lookups before the load completes simply miss, and callers fall
// back to a generic icon. Loading happens exactly once per process.
package aircraftdb

import (
	"embed"
	"encoding/json"
	"sync"
	"sync/atomic"
)

//go:embed types.json
var typesFS embed.FS

// Entry describes one ICAO type designator.
type Entry struct {
	// Designator is the ICAO type designator (e.g. "B738")
	Designator string `json:"designator"`

	// Description is the model name (e.g. "Boeing 737-800")
	Description string `json:"description"`

	// Icon is the presentation icon key (e.g. "jet", "prop", "heli")
	Icon string `json:"icon"`
}

var (
	once   sync.Once
	loaded atomic.Bool

	mu      sync.RWMutex
	entries map[string]Entry
)

// Preload starts the background load of the type reference. Returns true
// only for the call that actually triggered the load, so the host can
// apply its settle delay to the very first configuration pass and skip
// it afterwards. Safe to call repeatedly and concurrently.
func Preload() bool {
	triggered := false
	once.Do(func() {
		triggered = true
		go load()
	})
	return triggered
}

// Loaded reports whether the reference is available for lookups.
func Loaded() bool {
	return loaded.Load()
}

// LookupType returns the entry for an ICAO type designator. Misses while
// the reference is still loading, and for unknown designators.
func LookupType(designator string) (Entry, bool) {
	if !loaded.Load() {
		return Entry{}, false
	}
	mu.RLock()
	defer mu.RUnlock()
	e, ok := entries[designator]
	return e, ok
}

func load() {
	data, err := typesFS.ReadFile("types.json")
	if err != nil {
		// Leave the reference unavailable; lookups keep degrading
		// to the generic fallback.
		return
	}

	var list []Entry
	if err := json.Unmarshal(data, &list); err != nil {
		return
	}

	m := make(map[string]Entry, len(list))
	for _, e := range list {
		m[e.Designator] = e
	}

	mu.Lock()
	entries = m
	mu.Unlock()
	loaded.Store(true)
}
