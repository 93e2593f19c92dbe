package widget

import (
	"sort"
	"sync"

	"github.com/ZamarianPatrick/mygarden-backend/display"
)

type entry struct {
	surface display.Surface
	adapter *GridAdapter
}

// registry holds the attached surfaces in attach order.
type registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	order   []string
}

func newRegistry() *registry {
	return &registry{entries: make(map[string]*entry)}
}

func (r *registry) add(s display.Surface) (replaced *entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := s.ID()
	if old, ok := r.entries[id]; ok {
		r.entries[id] = &entry{surface: s}
		return old
	}
	r.entries[id] = &entry{surface: s}
	r.order = append(r.order, id)
	return nil
}

func (r *registry) remove(id string) *entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return nil
	}
	delete(r.entries, id)
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return e
}

func (r *registry) list() []*entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*entry, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id])
	}
	return out
}

func (r *registry) ids() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := append([]string(nil), r.order...)
	sort.Strings(out)
	return out
}
