package session

import (
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/sessionkit/pkg/maxreg"
)

// PkgData is one namespace's private bag of values. The framework never
// inspects its contents; only the owning namespace reads or writes them.
// All methods are safe for concurrent use.
type PkgData struct {
	mu       sync.RWMutex
	values   map[string]any
	modified *atomic.Bool
}

// NewPkgData creates a standalone bag. Bags reached through a Data parent
// share the parent's modification flag instead.
func NewPkgData() *PkgData {
	return &PkgData{
		values:   make(map[string]any),
		modified: new(atomic.Bool),
	}
}

// Get returns the value stored under key.
func (p *PkgData) Get(key string) (any, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.values[key]
	return v, ok
}

// GetString retrieves a string value from the bag.
func (p *PkgData) GetString(key string) (string, bool) {
	val, ok := p.Get(key)
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

// GetInt retrieves an int value from the bag. Numbers that went through a
// JSON round-trip come back as float64 and are converted.
func (p *PkgData) GetInt(key string) (int, bool) {
	val, ok := p.Get(key)
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// GetBool retrieves a bool value from the bag.
func (p *PkgData) GetBool(key string) (bool, bool) {
	val, ok := p.Get(key)
	if !ok {
		return false, false
	}
	b, ok := val.(bool)
	return b, ok
}

// Set stores value under key.
func (p *PkgData) Set(key string, value any) {
	p.mu.Lock()
	p.values[key] = value
	p.mu.Unlock()
	p.modified.Store(true)
}

// Delete removes key. Removing an absent key is a no-op.
func (p *PkgData) Delete(key string) {
	p.mu.Lock()
	_, ok := p.values[key]
	delete(p.values, key)
	p.mu.Unlock()
	if ok {
		p.modified.Store(true)
	}
}

// Clear removes all values from the bag.
func (p *PkgData) Clear() {
	p.mu.Lock()
	had := len(p.values) > 0
	p.values = make(map[string]any)
	p.mu.Unlock()
	if had {
		p.modified.Store(true)
	}
}

// Len returns the number of stored values.
func (p *PkgData) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.values)
}

// Snapshot returns a shallow copy of the stored values.
func (p *PkgData) Snapshot() map[string]any {
	p.mu.RLock()
	defer p.mu.RUnlock()
	snap := make(map[string]any, len(p.values))
	for k, v := range p.values {
		snap[k] = v
	}
	return snap
}

// Data is the per-visitor bag: one PkgData per namespace plus the access
// stamp the containers sweep on. The stamp is a merge-max register, so
// concurrent stampers resolve to the largest proposed time instead of
// conflicting.
type Data struct {
	mu         sync.RWMutex
	pkgs       map[string]*PkgData
	lastAccess *maxreg.Register
	modified   atomic.Bool
}

// NewData creates an empty visitor bag with a zero access stamp.
func NewData() *Data {
	return &Data{
		pkgs:       make(map[string]*PkgData),
		lastAccess: maxreg.New(0),
	}
}

// RestoreData rebuilds a visitor bag from backend state: a values map per
// namespace and the stored access stamp. The result is marked unmodified.
func RestoreData(pkgs map[string]map[string]any, lastAccess int64) *Data {
	d := &Data{
		pkgs:       make(map[string]*PkgData, len(pkgs)),
		lastAccess: maxreg.New(lastAccess),
	}
	for ns, values := range pkgs {
		bag := &PkgData{
			values:   make(map[string]any, len(values)),
			modified: &d.modified,
		}
		for k, v := range values {
			bag.values[k] = v
		}
		d.pkgs[ns] = bag
	}
	return d
}

// DecodeData rebuilds a visitor bag from a JSON namespaces document and a
// separately stored access stamp.
func DecodeData(raw []byte, lastAccess int64) (*Data, error) {
	var pkgs map[string]map[string]any
	if err := json.Unmarshal(raw, &pkgs); err != nil {
		return nil, errors.Join(ErrCorruptData, err)
	}
	return RestoreData(pkgs, lastAccess), nil
}

// LastAccess returns the current access stamp in Unix seconds.
func (d *Data) LastAccess() int64 {
	return d.lastAccess.Load()
}

// Touch proposes t as the new access stamp. The stamp only moves forward:
// the register resolves concurrent proposals to their maximum.
func (d *Data) Touch(t int64) {
	d.lastAccess.Advance(t)
}

// Pkg returns the bag for namespace without creating it.
func (d *Data) Pkg(namespace string) (*PkgData, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.pkgs[namespace]
	return p, ok
}

// EnsurePkg returns the bag for namespace, creating an empty one on first
// access. Created bags share this Data's modification flag.
func (d *Data) EnsurePkg(namespace string) *PkgData {
	d.mu.RLock()
	p, ok := d.pkgs[namespace]
	d.mu.RUnlock()
	if ok {
		return p
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if p, ok := d.pkgs[namespace]; ok {
		return p
	}
	p = &PkgData{
		values:   make(map[string]any),
		modified: &d.modified,
	}
	d.pkgs[namespace] = p
	d.modified.Store(true)
	return p
}

// Namespaces returns the namespaces that currently hold a bag.
func (d *Data) Namespaces() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.pkgs))
	for ns := range d.pkgs {
		names = append(names, ns)
	}
	return names
}

// Modified reports whether the bag changed since it was created, restored,
// or last cleared.
func (d *Data) Modified() bool {
	return d.modified.Load()
}

// ClearModified resets the modification flag, typically after a save.
func (d *Data) ClearModified() {
	d.modified.Store(false)
}

// SnapshotPkgs copies the full namespace tree for serialization.
func (d *Data) SnapshotPkgs() map[string]map[string]any {
	d.mu.RLock()
	defer d.mu.RUnlock()
	snap := make(map[string]map[string]any, len(d.pkgs))
	for ns, p := range d.pkgs {
		snap[ns] = p.Snapshot()
	}
	return snap
}

// EncodePkgs serializes the namespace tree as JSON. The access stamp is
// not included; backends store it separately so it can be advanced without
// rewriting the document.
func (d *Data) EncodePkgs() ([]byte, error) {
	raw, err := json.Marshal(d.SnapshotPkgs())
	if err != nil {
		return nil, errors.Join(ErrCorruptData, err)
	}
	return raw, nil
}
