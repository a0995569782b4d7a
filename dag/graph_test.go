package dag

import (
	"reflect"
	"testing"

	"github.com/kbukum/bundlegen/errors"
)

func TestBuildLevels(t *testing.T) {
	p := &Pipeline{Name: "etl", Nodes: []NodeDef{
		{Name: "load", DependsOn: []string{"transform", "validate"}},
		{Name: "validate", DependsOn: []string{"extract"}},
		{Name: "transform", DependsOn: []string{"extract", "extract"}},
		{Name: "extract"},
		{Name: "audit"},
	}}
	g, err := p.Graph()
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}

	levels, err := BuildLevels(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]string{{"audit", "extract"}, {"transform", "validate"}, {"load"}}
	if !reflect.DeepEqual(levels, want) {
		t.Fatalf("expected %v, got %v", want, levels)
	}

	order, err := TopologicalOrder(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(order, []string{"audit", "extract", "transform", "validate", "load"}) {
		t.Fatalf("unexpected order %v", order)
	}

	if deps := g.Dependencies("transform"); !reflect.DeepEqual(deps, []string{"extract"}) {
		t.Fatalf("expected [extract], got %v", deps)
	}
}

func TestBuildLevels_Cycle(t *testing.T) {
	p := &Pipeline{Name: "loop", Nodes: []NodeDef{
		{Name: "a", DependsOn: []string{"b"}},
		{Name: "b", DependsOn: []string{"a"}},
		{Name: "c"},
	}}
	g, err := p.Graph()
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}
	_, err = BuildLevels(g)
	if !errors.HasCode(err, errors.ErrCodeCycleDetected) {
		t.Fatalf("expected CYCLE_DETECTED, got %v", err)
	}
}

func TestBuildLevels_UnknownDependency(t *testing.T) {
	p := &Pipeline{Name: "p", Nodes: []NodeDef{{Name: "a", DependsOn: []string{"ghost"}}}}
	g, err := p.Graph()
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}
	if _, err := BuildLevels(g); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestPipelineGraph_Errors(t *testing.T) {
	tests := []struct {
		name  string
		nodes []NodeDef
		code  errors.ErrorCode
	}{
		{"unnamed node", []NodeDef{{Name: "a"}, {}}, errors.ErrCodeMissingIdentifier},
		{"duplicate node", []NodeDef{{Name: "a"}, {Name: "a"}}, errors.ErrCodeAlreadyExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Pipeline{Name: "p", Nodes: tt.nodes}
			if _, err := p.Graph(); !errors.HasCode(err, tt.code) {
				t.Fatalf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	mustRegister(t, reg, &Pipeline{Name: "b"})
	mustRegister(t, reg, &Pipeline{Name: "a"})

	if err := reg.Register(&Pipeline{Name: "a"}); !errors.HasCode(err, errors.ErrCodeAlreadyExists) {
		t.Fatalf("expected ALREADY_EXISTS, got %v", err)
	}
	if err := reg.Register(&Pipeline{}); !errors.HasCode(err, errors.ErrCodeMissingField) {
		t.Fatalf("expected MISSING_FIELD, got %v", err)
	}
	if _, err := reg.Load("c"); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}

	var names []string
	for _, p := range reg.Pipelines() {
		names = append(names, p.Name)
	}
	if !reflect.DeepEqual(names, []string{"a", "b"}) {
		t.Fatalf("expected [a b], got %v", names)
	}
}
