package jobs

import (
	"github.com/kbukum/bundlegen/dag"
	"github.com/kbukum/bundlegen/errors"
	"github.com/kbukum/bundlegen/util"
)

// Generator builds the baseline job document for one pipeline. The
// pipeline's includes must already be resolved.
type Generator interface {
	Generate(p *dag.Pipeline) (map[string]any, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(p *dag.Pipeline) (map[string]any, error)

// Generate implements Generator.
func (f GeneratorFunc) Generate(p *dag.Pipeline) (map[string]any, error) {
	return f(p)
}

// NodeGenerator emits one task per node. Tasks appear in topological order
// and each depends_on list mirrors the node's edges.
type NodeGenerator struct {
	Options Options
}

// Generate implements Generator.
func (g *NodeGenerator) Generate(p *dag.Pipeline) (map[string]any, error) {
	graph, err := p.Graph()
	if err != nil {
		return nil, err
	}
	order, err := dag.TopologicalOrder(graph)
	if err != nil {
		return nil, err
	}

	keys := make(map[string]string, len(order))
	owners := make(map[string]string, len(order))
	for _, name := range order {
		key := util.SanitizeName(name)
		if other, taken := owners[key]; taken {
			return nil, errors.AlreadyExists("task", key).
				WithDetail("pipeline", p.Name).
				WithDetail("nodes", []string{other, name})
		}
		owners[key] = name
		keys[name] = key
	}

	tasks := make([]any, 0, len(order))
	for _, name := range order {
		node := graph.Nodes[name]
		task := g.Options.task(keys[name], g.Options.wheelTask("--nodes", name, node.Tags))
		if deps := graph.Dependencies(name); len(deps) > 0 {
			task[fieldDependsOn] = util.Map(deps, func(dep string) any {
				return map[string]any{fieldTaskKey: keys[dep]}
			})
		}
		tasks = append(tasks, task)
	}
	return g.Options.job(JobName(g.Options.Project, p.Name), tasks), nil
}

// PipelineGenerator emits a single task that runs the whole pipeline.
type PipelineGenerator struct {
	Options Options
}

// Generate implements Generator.
func (g *PipelineGenerator) Generate(p *dag.Pipeline) (map[string]any, error) {
	graph, err := p.Graph()
	if err != nil {
		return nil, err
	}
	if _, err := dag.BuildLevels(graph); err != nil {
		return nil, err
	}
	name := JobName(g.Options.Project, p.Name)
	task := g.Options.task(name, g.Options.wheelTask("--pipeline", p.Name, nil))
	return g.Options.job(name, []any{task}), nil
}
