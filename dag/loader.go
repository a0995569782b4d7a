package dag

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/bundlegen/errors"
	"github.com/kbukum/bundlegen/util"
)

// PipelineLoader loads pipeline definitions by name.
type PipelineLoader interface {
	Load(name string) (*Pipeline, error)
}

// FilePipelineLoader loads pipelines from YAML files on disk.
type FilePipelineLoader struct {
	dirs []string
}

// NewFilePipelineLoader creates a loader that searches the given directories for pipeline YAML files.
func NewFilePipelineLoader(dirs ...string) PipelineLoader {
	return &FilePipelineLoader{dirs: dirs}
}

// Load searches for {name}.yaml and {name}.yml in each directory and its
// immediate subdirectories.
func (l *FilePipelineLoader) Load(name string) (*Pipeline, error) {
	for _, dir := range l.dirs {
		for _, ext := range []string{".yaml", ".yml"} {
			path := filepath.Join(dir, name+ext)
			if p, err := loadPipelineFile(path); err == nil {
				return p, nil
			}

			matches, _ := filepath.Glob(filepath.Join(dir, "*", name+ext))
			for _, match := range matches {
				if p, err := loadPipelineFile(match); err == nil {
					return p, nil
				}
			}
		}
	}
	return nil, errors.NotFound("pipeline", name).WithDetail("dirs", l.dirs)
}

func loadPipelineFile(path string) (*Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Pipeline
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("dag: parsing %s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return &p, nil
}

// LoadPipeline loads a pipeline from explicit file paths.
// It tries each path until one succeeds.
func LoadPipeline(name string, paths ...string) (*Pipeline, error) {
	for _, path := range paths {
		p, err := loadPipelineFile(path)
		if err == nil {
			return p, nil
		}
	}
	return nil, errors.NotFound("pipeline", name)
}

// LoadDir parses every .yaml/.yml file directly under dir into a Registry.
// Parse errors and duplicate pipeline names are fatal.
func LoadDir(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("dag: reading %s: %w", dir, err)
	}
	reg := NewRegistry()
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		p, err := loadPipelineFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if err := reg.Register(p); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// ResolvePipeline returns a copy of p with its includes flattened. Nodes
// from includes come first; a node declared more than once keeps its first
// definition with the union of all depends_on edges.
func ResolvePipeline(p *Pipeline, loader PipelineLoader) (*Pipeline, error) {
	stack := make(map[string]bool) // current recursion path (cycle detection)
	out := &Pipeline{Name: p.Name}
	index := make(map[string]int)
	if err := resolvePipeline(p, loader, stack, out, index); err != nil {
		return nil, err
	}
	return out, nil
}

func resolvePipeline(p *Pipeline, loader PipelineLoader, stack map[string]bool, out *Pipeline, index map[string]int) error {
	if stack[p.Name] {
		return errors.New(errors.ErrCodeCycleDetected, fmt.Sprintf("pipeline %q includes itself", p.Name)).
			WithDetail("pipeline", p.Name)
	}
	stack[p.Name] = true
	defer delete(stack, p.Name)

	for _, includeName := range p.Includes {
		sub, err := loader.Load(includeName)
		if err != nil {
			return fmt.Errorf("dag: loading include %q of %q: %w", includeName, p.Name, err)
		}
		if err := resolvePipeline(sub, loader, stack, out, index); err != nil {
			return err
		}
	}

	for _, def := range p.Nodes {
		i, exists := index[def.Name]
		if !exists {
			index[def.Name] = len(out.Nodes)
			out.Nodes = append(out.Nodes, NodeDef{
				Name:      def.Name,
				DependsOn: append([]string(nil), def.DependsOn...),
				Tags:      append([]string(nil), def.Tags...),
			})
			continue
		}
		existing := &out.Nodes[i]
		for _, dep := range def.DependsOn {
			if !util.Contains(existing.DependsOn, dep) {
				existing.DependsOn = append(existing.DependsOn, dep)
			}
		}
	}
	return nil
}
