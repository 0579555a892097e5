// Package prefs persists client-side preferences.
package prefs

import (
	"strconv"
	"sync"

	"github.com/plantdoc/plantdoc-ui/internal/ui/model"
)

// DarkModeClass is the body class toggled by the dark-mode preference.
const DarkModeClass = "dark-mode"

// Store is the key/value surface of browser localStorage.
type Store interface {
	GetItem(key string) (string, bool)
	SetItem(key, value string) error
}

// DarkMode reads and writes the dark-mode flag.
type DarkMode struct {
	store Store
	key   string
}

// NewDarkMode returns a DarkMode backed by store under the fixed key.
func NewDarkMode(store Store) *DarkMode {
	return &DarkMode{store: store, key: model.DarkModeStorageKey}
}

// Enabled reports the stored preference. Anything other than "true" is false.
func (d *DarkMode) Enabled() bool {
	if d == nil || d.store == nil {
		return false
	}
	value, ok := d.store.GetItem(d.key)
	return ok && value == "true"
}

// Set persists enabled.
func (d *DarkMode) Set(enabled bool) error {
	if d == nil || d.store == nil {
		return nil
	}
	return d.store.SetItem(d.key, strconv.FormatBool(enabled))
}

// Toggle flips the current state, persists the result, and returns it.
// current is the state observed on the page, not the stored value.
func (d *DarkMode) Toggle(current bool) (bool, error) {
	next := !current
	return next, d.Set(next)
}

// ToggleMessage is the confirmation toast text for a new state.
func ToggleMessage(enabled bool) string {
	if enabled {
		return "Dark mode enabled"
	}
	return "Dark mode disabled"
}

// MemoryStore is an in-process Store used when localStorage is unavailable.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// GetItem implements Store.
func (m *MemoryStore) GetItem(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

// SetItem implements Store.
func (m *MemoryStore) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
