package jobs

import (
	"sort"
	"sync"

	"github.com/kbukum/bundlegen/errors"
)

// Granularities of the built-in generators.
const (
	GranularityNode     = "node"
	GranularityPipeline = "pipeline"
)

// Factory creates a Generator for a project.
type Factory func(opts Options) Generator

// Registry manages named generator factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a Registry holding the built-in generators.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(GranularityNode, func(opts Options) Generator {
		return &NodeGenerator{Options: opts}
	})
	r.MustRegister(GranularityPipeline, func(opts Options) Generator {
		return &PipelineGenerator{Options: opts}
	})
	return r
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// Register adds a named factory. Names must be unique.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" || factory == nil {
		return errors.InvalidInput("generator", "name and factory are required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		return errors.AlreadyExists("generator", name)
	}
	r.factories[name] = factory
	return nil
}

// Create instantiates the named generator.
func (r *Registry) Create(name string, opts Options) (Generator, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NotFound("generator", name).WithDetail("available", r.List())
	}
	return factory(opts), nil
}

// List returns sorted names of all registered factories.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
