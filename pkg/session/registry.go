package session

import "sync"

// Registry maps namespaces to the containers that serve them, with one
// default for everything unmapped. Wiring is an explicit object handed to
// the Session facade, not ambient global state, so two deployments in one
// process can route the same namespace differently.
type Registry struct {
	mu         sync.RWMutex
	containers map[string]Container
	fallback   Container
}

// NewRegistry creates a registry whose unmapped namespaces resolve to
// fallback. A nil fallback is allowed; unmapped namespaces then fail with
// ErrNoContainer.
func NewRegistry(fallback Container) *Registry {
	return &Registry{
		containers: make(map[string]Container),
		fallback:   fallback,
	}
}

// Register routes namespace to c, replacing any previous routing.
func (r *Registry) Register(namespace string, c Container) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.containers[namespace] = c
}

// SetDefault replaces the fallback container.
func (r *Registry) SetDefault(c Container) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = c
}

// Resolve returns the container serving namespace: its specific routing
// if registered, the fallback otherwise.
func (r *Registry) Resolve(namespace string) (Container, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.containers[namespace]; ok {
		return c, nil
	}
	if r.fallback != nil {
		return r.fallback, nil
	}
	return nil, ErrNoContainer
}

// Namespaces returns the explicitly routed namespaces.
func (r *Registry) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.containers))
	for ns := range r.containers {
		names = append(names, ns)
	}
	return names
}

// Containers returns every distinct container the registry routes to,
// fallback included, for sweeping or metrics collection.
func (r *Registry) Containers() []Container {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[Container]struct{}, len(r.containers)+1)
	out := make([]Container, 0, len(r.containers)+1)
	if r.fallback != nil {
		seen[r.fallback] = struct{}{}
		out = append(out, r.fallback)
	}
	for _, c := range r.containers {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
