package session

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so topology files can spell settings as Go
// duration strings ("30m", "1h30m").
type Duration time.Duration

// UnmarshalYAML parses a scalar node through time.ParseDuration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Topology declares an application's container layout: named containers
// with their TTL settings, which namespaces bind to which container, and
// the default container serving everything unbound.
//
//	containers:
//	  - name: volatile
//	    backend: memory
//	    timeout: 30m
//	  - name: durable
//	    backend: redis
//	    timeout: 12h
//	    resolution: 30m
//	bindings:
//	  shop.cart: durable
//	default: volatile
type Topology struct {
	Containers []ContainerSpec   `yaml:"containers"`
	Bindings   map[string]string `yaml:"bindings"`
	Default    string            `yaml:"default"`
}

// ContainerSpec declares one container. Timeout and Resolution are
// optional; the container's own defaults apply when omitted. An explicit
// "0s" timeout declares a never-expiring passthrough container, which is
// why omitted and zero must stay distinguishable.
type ContainerSpec struct {
	Name       string    `yaml:"name"`
	Backend    string    `yaml:"backend"`
	Timeout    *Duration `yaml:"timeout"`
	Resolution *Duration `yaml:"resolution"`
}

func (c ContainerSpec) options() []Option {
	var opts []Option
	if c.Timeout != nil {
		opts = append(opts, WithTimeout(c.Timeout.Std()))
	}
	if c.Resolution != nil {
		opts = append(opts, WithResolution(c.Resolution.Std()))
	}
	return opts
}

// BackendFactory builds the Backend for one durable container spec. The
// factory map handed to BuildRegistry is keyed by backend kind; "memory"
// is built in and needs no factory.
type BackendFactory func(spec ContainerSpec) (Backend, error)

// LoadTopology reads and parses a topology file. ${VAR} references are
// expanded from the environment before parsing.
func LoadTopology(path string) (*Topology, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrInvalidTopology, err)
	}
	return ParseTopology(raw)
}

// ParseTopology parses and validates a topology document.
func ParseTopology(raw []byte) (*Topology, error) {
	raw = []byte(expandEnvVars(string(raw)))

	var t Topology
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, errors.Join(ErrInvalidTopology, err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

var envVarRx = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(s string) string {
	return envVarRx.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})
}

func (t *Topology) validate() error {
	if len(t.Containers) == 0 {
		return errors.Join(ErrInvalidTopology, errors.New("no containers declared"))
	}

	names := make(map[string]struct{}, len(t.Containers))
	for _, c := range t.Containers {
		if c.Name == "" {
			return errors.Join(ErrInvalidTopology, errors.New("container with empty name"))
		}
		if c.Backend == "" {
			return errors.Join(ErrInvalidTopology, fmt.Errorf("container %q has no backend", c.Name))
		}
		if _, dup := names[c.Name]; dup {
			return errors.Join(ErrInvalidTopology, fmt.Errorf("duplicate container %q", c.Name))
		}
		names[c.Name] = struct{}{}
	}

	if t.Default == "" {
		return errors.Join(ErrInvalidTopology, errors.New("no default container"))
	}
	if _, ok := names[t.Default]; !ok {
		return errors.Join(ErrInvalidTopology, fmt.Errorf("default references unknown container %q", t.Default))
	}
	for ns, name := range t.Bindings {
		if _, ok := names[name]; !ok {
			return errors.Join(ErrInvalidTopology, fmt.Errorf("namespace %q references unknown container %q", ns, name))
		}
	}
	return nil
}

// BuildRegistry assembles the declared containers into a Registry. Memory
// containers are constructed directly; every other backend kind resolves
// through factories, so the caller decides which stores exist and how
// they connect.
func (t *Topology) BuildRegistry(factories map[string]BackendFactory) (*Registry, error) {
	containers, err := t.Build(factories)
	if err != nil {
		return nil, err
	}
	return t.Assemble(containers), nil
}

// Build constructs the declared containers keyed by name. Callers that
// need the name-to-container mapping, for metrics or per-container
// sweepers, use Build and then Assemble; everyone else calls
// BuildRegistry.
func (t *Topology) Build(factories map[string]BackendFactory) (map[string]Container, error) {
	containers := make(map[string]Container, len(t.Containers))
	for _, spec := range t.Containers {
		c, err := t.buildContainer(spec, factories)
		if err != nil {
			return nil, err
		}
		containers[spec.Name] = c
	}
	return containers, nil
}

// Assemble wires containers previously built by Build into a Registry
// following the topology's bindings and default.
func (t *Topology) Assemble(containers map[string]Container) *Registry {
	registry := NewRegistry(containers[t.Default])
	for ns, name := range t.Bindings {
		registry.Register(ns, containers[name])
	}
	return registry
}

func (t *Topology) buildContainer(spec ContainerSpec, factories map[string]BackendFactory) (Container, error) {
	if spec.Backend == "memory" {
		return NewMemory(spec.options()...), nil
	}

	factory, ok := factories[spec.Backend]
	if !ok {
		return nil, errors.Join(ErrInvalidTopology,
			fmt.Errorf("container %q: no factory for backend %q", spec.Name, spec.Backend))
	}
	backend, err := factory(spec)
	if err != nil {
		return nil, err
	}
	return NewDurable(backend, spec.options()...)
}
