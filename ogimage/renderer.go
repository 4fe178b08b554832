package ogimage

import (
	"bytes"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"
)

// Renderer caches rendered cards by key and collapses concurrent renders
// of the same key into one.
type Renderer struct {
	mu      sync.RWMutex
	cache   map[string][]byte
	group   singleflight.Group
	renders prometheus.Counter
}

// NewRenderer returns a Renderer. renders may be nil.
func NewRenderer(renders prometheus.Counter) *Renderer {
	return &Renderer{cache: make(map[string][]byte), renders: renders}
}

// PNG returns the encoded card for key, rendering it on first use.
// Keys should change whenever the card content does.
func (r *Renderer) PNG(key string, card Card) ([]byte, error) {
	r.mu.RLock()
	b, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return b, nil
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		r.mu.RLock()
		b, ok := r.cache[key]
		r.mu.RUnlock()
		if ok {
			return b, nil
		}
		var buf bytes.Buffer
		if err := Render(&buf, card); err != nil {
			return nil, err
		}
		if r.renders != nil {
			r.renders.Inc()
		}
		out := buf.Bytes()
		r.mu.Lock()
		r.cache[key] = out
		r.mu.Unlock()
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Reset drops all cached cards.
func (r *Renderer) Reset() {
	r.mu.Lock()
	r.cache = make(map[string][]byte)
	r.mu.Unlock()
}
