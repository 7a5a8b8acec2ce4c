package session

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/dmitrymomot/sessionkit/pkg/clientid"
)

// Session resolves one visitor's namespace bags for the duration of a
// request. It is a per-request value, never persisted itself: it routes
// each namespace through the Registry to a container and caches the
// visitor bag per container, so repeated lookups within the request hit
// the same live objects.
type Session struct {
	token    string
	registry *Registry

	mu   sync.Mutex
	bags map[Container]*Data
}

// New creates a Session for an already resolved identity token.
func New(token string, registry *Registry) *Session {
	return &Session{
		token:    token,
		registry: registry,
		bags:     make(map[Container]*Data),
	}
}

// FromRequest resolves the visitor identity through ids, which may stage
// a fresh cookie on the response, and returns the Session for it. Errors
// from identity resolution pass through, including ErrMissingClientID
// when policy forbids minting.
func FromRequest(w http.ResponseWriter, r *http.Request, ids *clientid.Manager, registry *Registry) (*Session, error) {
	token, err := ids.ClientID(w, r)
	if err != nil {
		return nil, err
	}
	return New(token, registry), nil
}

// ClientID returns the identity token this session is bound to.
func (s *Session) ClientID() string {
	return s.token
}

// Get returns the namespace's bag without creating anything. ErrNotFound
// means the visitor has no bag in the namespace's container, or the bag
// holds nothing for this namespace; callers fall back to their default.
func (s *Session) Get(ctx context.Context, namespace string) (*PkgData, error) {
	c, err := s.registry.Resolve(namespace)
	if err != nil {
		return nil, err
	}
	d, err := s.bag(ctx, c, false)
	if err != nil {
		return nil, err
	}
	p, ok := d.Pkg(namespace)
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

// GetOrCreate returns the namespace's bag, creating both the visitor bag
// and the namespace bag as needed.
func (s *Session) GetOrCreate(ctx context.Context, namespace string) (*PkgData, error) {
	c, err := s.registry.Resolve(namespace)
	if err != nil {
		return nil, err
	}
	d, err := s.bag(ctx, c, true)
	if err != nil {
		return nil, err
	}
	return d.EnsurePkg(namespace), nil
}

// Save persists every bag this session touched and modified. Failures
// for independent containers are joined, not short-circuited.
func (s *Session) Save(ctx context.Context) error {
	type entry struct {
		c Container
		d *Data
	}

	s.mu.Lock()
	entries := make([]entry, 0, len(s.bags))
	for c, d := range s.bags {
		entries = append(entries, entry{c, d})
	}
	s.mu.Unlock()

	var errs []error
	for _, e := range entries {
		if !e.d.Modified() {
			continue
		}
		if err := e.c.Put(ctx, s.token, e.d); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Namespaces always fails with ErrIterationUnsupported; see the error's
// documentation for why enumeration is blocked.
func (s *Session) Namespaces() ([]string, error) {
	return nil, ErrIterationUnsupported
}

// Contains always fails with ErrContainmentUnsupported; see the error's
// documentation for why membership probes are blocked.
func (s *Session) Contains(namespace string) (bool, error) {
	return false, ErrContainmentUnsupported
}

// bag returns the visitor bag for container c, consulting the
// per-request cache first so the same live bag serves every namespace
// routed to c within this request.
func (s *Session) bag(ctx context.Context, c Container, create bool) (*Data, error) {
	s.mu.Lock()
	d, ok := s.bags[c]
	s.mu.Unlock()
	if ok {
		return d, nil
	}

	var err error
	if create {
		d, err = c.GetOrCreate(ctx, s.token)
	} else {
		d, err = c.Get(ctx, s.token)
	}
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.bags[c]; ok {
		return cached, nil
	}
	s.bags[c] = d
	return d, nil
}
