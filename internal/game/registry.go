package game

import (
	"sync"

	"five-card-trick-go/internal/game/fivecard"
)

// Registry maps display-mode names to session factories. Handlers consult it
// when creating sessions so unknown modes fail before any state is allocated.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

func (r *Registry) Register(mode string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[mode] = factory
}

func (r *Registry) New(mode string) (*fivecard.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[mode]
	if !ok {
		return nil, false
	}
	return f(), true
}

// DefaultRegistry carries the two built-in display modes.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(string(fivecard.CanonicalDisplay), func() *fivecard.Session {
		return fivecard.NewSession(fivecard.CanonicalDisplay)
	})
	r.Register(string(fivecard.RankedDisplay), func() *fivecard.Session {
		return fivecard.NewSession(fivecard.RankedDisplay)
	})
	return r
}
