package dag

import (
	"sort"
	"sync"

	"github.com/kbukum/bundlegen/errors"
)

// Registry holds pipelines by name. It implements PipelineLoader so that
// includes can be resolved against pipelines already in memory.
type Registry struct {
	mu        sync.RWMutex
	pipelines map[string]*Pipeline
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{pipelines: make(map[string]*Pipeline)}
}

// Register adds a pipeline. Names must be unique.
func (r *Registry) Register(p *Pipeline) error {
	if p == nil || p.Name == "" {
		return errors.MissingField("name").WithDetail("resource", "pipeline")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.pipelines[p.Name]; exists {
		return errors.AlreadyExists("pipeline", p.Name)
	}
	r.pipelines[p.Name] = p
	return nil
}

// Get retrieves a pipeline by name.
func (r *Registry) Get(name string) (*Pipeline, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pipelines[name]
	return p, ok
}

// Load implements PipelineLoader.
func (r *Registry) Load(name string) (*Pipeline, error) {
	if p, ok := r.Get(name); ok {
		return p, nil
	}
	return nil, errors.NotFound("pipeline", name)
}

// List returns sorted names of all registered pipelines.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.pipelines))
	for name := range r.pipelines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Pipelines returns the registered pipelines sorted by name.
func (r *Registry) Pipelines() []*Pipeline {
	names := r.List()
	out := make([]*Pipeline, 0, len(names))
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range names {
		out = append(out, r.pipelines[name])
	}
	return out
}
