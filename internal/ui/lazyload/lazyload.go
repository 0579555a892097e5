// Package lazyload keeps the bookkeeping for images whose real source is
// deferred until they scroll into view.
package lazyload

import "sync"

// SourceAttr is the attribute holding the deferred image URL.
const SourceAttr = "data-src"

// Selector matches every lazily loaded image.
const Selector = "img[data-src]"

// MarkerClass is removed from an image once it has loaded.
const MarkerClass = "lazy"

// Registry maps element keys to their deferred sources. Each key is released
// at most once.
type Registry struct {
	mu      sync.Mutex
	pending map[string]string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{pending: make(map[string]string)}
}

// Add registers key with its deferred source. Blank sources are ignored and
// an existing pending entry is left unchanged.
func (r *Registry) Add(key, src string) bool {
	if src == "" {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pending[key]; ok {
		return false
	}
	r.pending[key] = src
	return true
}

// Reveal is called when key becomes visible. It returns the source to load
// the first time and false on every later call.
func (r *Registry) Reveal(key string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	src, ok := r.pending[key]
	if !ok {
		return "", false
	}
	delete(r.pending, key)
	return src, true
}

// Pending returns how many images are still waiting to load.
func (r *Registry) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}
