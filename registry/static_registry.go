package registry

import (
	"context"
	"sync"
)

// StaticRegistry is an in-memory Registry for fixed lab setups and tests:
// endpoints are configured once, TTLs are ignored.
type StaticRegistry struct {
	mu       sync.Mutex
	entries  map[string][]Endpoint
	watchers map[string][]chan []Endpoint
}

// NewStaticRegistry creates an empty static registry.
func NewStaticRegistry() *StaticRegistry {
	return &StaticRegistry{
		entries:  make(map[string][]Endpoint),
		watchers: make(map[string][]chan []Endpoint),
	}
}

// Register adds the endpoint. The ttl parameter is accepted for interface
// compatibility and ignored.
func (r *StaticRegistry) Register(name string, ep Endpoint, _ int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = append(r.entries[name], ep)
	r.notifyLocked(name)
	return nil
}

// Deregister removes the endpoint with the given address.
func (r *StaticRegistry) Deregister(name string, addr string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.entries[name][:0]
	for _, ep := range r.entries[name] {
		if ep.Addr != addr {
			kept = append(kept, ep)
		}
	}
	r.entries[name] = kept
	r.notifyLocked(name)
	return nil
}

// Discover returns a copy of the registered endpoints.
func (r *StaticRegistry) Discover(name string) ([]Endpoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Endpoint, len(r.entries[name]))
	copy(out, r.entries[name])
	return out, nil
}

// Watch emits the endpoint list after every Register/Deregister. Cancelling
// ctx removes the watcher and closes the returned channel.
func (r *StaticRegistry) Watch(ctx context.Context, name string) <-chan []Endpoint {
	r.mu.Lock()
	ch := make(chan []Endpoint, 1)
	r.watchers[name] = append(r.watchers[name], ch)
	r.mu.Unlock()

	go func() {
		<-ctx.Done()
		r.mu.Lock()
		kept := r.watchers[name][:0]
		for _, w := range r.watchers[name] {
			if w != ch {
				kept = append(kept, w)
			}
		}
		r.watchers[name] = kept
		r.mu.Unlock()
		close(ch)
	}()

	return ch
}

func (r *StaticRegistry) notifyLocked(name string) {
	snapshot := make([]Endpoint, len(r.entries[name]))
	copy(snapshot, r.entries[name])
	for _, ch := range r.watchers[name] {
		select {
		case ch <- snapshot:
		default: // watcher not keeping up, drop the update
		}
	}
}
