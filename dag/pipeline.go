package dag

import (
	"github.com/kbukum/bundlegen/errors"
)

// DefaultPipeline is the name of the project-wide pipeline.
const DefaultPipeline = "__default__"

// Pipeline is a YAML-defined graph of nodes.
type Pipeline struct {
	// Name is the pipeline identifier. Defaults to the file name.
	Name string `yaml:"name"`
	// Includes lists sub-pipeline names whose nodes are added to this one.
	Includes []string `yaml:"includes,omitempty"`
	// Nodes defines the pipeline's nodes.
	Nodes []NodeDef `yaml:"nodes"`
}

// NodeDef defines a node within a pipeline.
type NodeDef struct {
	// Name identifies the node and becomes its task key.
	Name string `yaml:"name"`
	// DependsOn lists node names this node depends on.
	DependsOn []string `yaml:"depends_on,omitempty"`
	// Tags are free-form labels passed to the node's task as --tags.
	Tags []string `yaml:"tags,omitempty"`
}

// Graph converts the pipeline's nodes and edges into a Graph. Includes must
// already be resolved.
func (p *Pipeline) Graph() (*Graph, error) {
	g := &Graph{Name: p.Name, Nodes: make(map[string]NodeDef, len(p.Nodes))}
	for i, n := range p.Nodes {
		if n.Name == "" {
			return nil, errors.MissingIdentifier(p.Name+".nodes", "name", i)
		}
		if _, dup := g.Nodes[n.Name]; dup {
			return nil, errors.AlreadyExists("node", n.Name).WithDetail("pipeline", p.Name)
		}
		g.Nodes[n.Name] = n
	}
	for _, n := range p.Nodes {
		for _, dep := range n.DependsOn {
			g.Edges = append(g.Edges, Edge{From: dep, To: n.Name})
		}
	}
	return g, nil
}
