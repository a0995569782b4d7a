package bundle

import (
	"fmt"
	"os"

	"github.com/kbukum/bundlegen/dag"
	"github.com/kbukum/bundlegen/override"
)

// LoadPipelines reads every pipeline in dir and resolves its includes.
// Pipelines are returned sorted by name.
func LoadPipelines(dir string) ([]*dag.Pipeline, error) {
	reg, err := dag.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	loader := dag.NewFilePipelineLoader(dir)
	pipelines := make([]*dag.Pipeline, 0, len(reg.List()))
	for _, p := range reg.Pipelines() {
		resolved, err := dag.ResolvePipeline(p, chainLoader{reg, loader})
		if err != nil {
			return nil, err
		}
		pipelines = append(pipelines, resolved)
	}
	return pipelines, nil
}

// chainLoader tries each loader in turn.
type chainLoader []dag.PipelineLoader

func (c chainLoader) Load(name string) (*dag.Pipeline, error) {
	var lastErr error
	for _, l := range c {
		p, err := l.Load(name)
		if err == nil {
			return p, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// LoadSelectors reads an override document. A missing file yields an empty
// document.
func LoadSelectors(path string) (override.Selectors, error) {
	if path == "" {
		return override.Selectors{}, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return override.Selectors{}, nil
	}
	if err != nil {
		return override.Selectors{}, fmt.Errorf("bundle: reading overrides: %w", err)
	}
	sel, err := override.ParseSelectors(data)
	if err != nil {
		return override.Selectors{}, fmt.Errorf("bundle: parsing %s: %w", path, err)
	}
	return sel, nil
}
