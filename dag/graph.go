package dag

import (
	"sort"

	"github.com/kbukum/bundlegen/errors"
)

// Graph declares nodes and edges (dependency relationships).
type Graph struct {
	Name  string
	Nodes map[string]NodeDef
	Edges []Edge
}

// Edge represents a dependency: To depends on From.
type Edge struct {
	From string
	To   string
}

// Dependencies returns the sorted, de-duplicated upstream nodes of name.
func (g *Graph) Dependencies(name string) []string {
	seen := make(map[string]bool)
	var deps []string
	for _, e := range g.Edges {
		if e.To == name && !seen[e.From] {
			seen[e.From] = true
			deps = append(deps, e.From)
		}
	}
	sort.Strings(deps)
	return deps
}

// BuildLevels uses Kahn's algorithm to group nodes by dependency level.
// Nodes within the same level are independent of each other and sorted by
// name. Returns an error if a cycle is detected.
func BuildLevels(g *Graph) ([][]string, error) {
	inDegree := make(map[string]int, len(g.Nodes))
	dependents := make(map[string][]string) // from -> [to...]

	for name := range g.Nodes {
		inDegree[name] = 0
	}

	seen := make(map[Edge]bool, len(g.Edges))
	for _, e := range g.Edges {
		if _, ok := g.Nodes[e.From]; !ok {
			return nil, errors.NotFound("node", e.From).WithDetail("required_by", e.To)
		}
		if _, ok := g.Nodes[e.To]; !ok {
			return nil, errors.NotFound("node", e.To)
		}
		if seen[e] {
			continue
		}
		seen[e] = true
		inDegree[e.To]++
		dependents[e.From] = append(dependents[e.From], e.To)
	}

	var queue []string
	for name, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, name)
		}
	}

	var levels [][]string
	visited := 0

	for len(queue) > 0 {
		sort.Strings(queue)
		levels = append(levels, queue)
		visited += len(queue)

		var next []string
		for _, name := range queue {
			for _, dep := range dependents[name] {
				inDegree[dep]--
				if inDegree[dep] == 0 {
					next = append(next, dep)
				}
			}
		}
		queue = next
	}

	if visited != len(g.Nodes) {
		return nil, errors.CycleDetected(g.Name, visited, len(g.Nodes))
	}

	return levels, nil
}

// TopologicalOrder flattens BuildLevels into a single ordering.
func TopologicalOrder(g *Graph) ([]string, error) {
	levels, err := BuildLevels(g)
	if err != nil {
		return nil, err
	}
	order := make([]string, 0, len(g.Nodes))
	for _, level := range levels {
		order = append(order, level...)
	}
	return order, nil
}
