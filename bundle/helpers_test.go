package bundle

import (
	"testing"

	"github.com/kbukum/bundlegen/dag"
	"github.com/kbukum/bundlegen/jobs"
	"github.com/kbukum/bundlegen/logger"
	"github.com/kbukum/bundlegen/override"
)

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	m, err := override.NewMerger("default", override.WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("NewMerger: %v", err)
	}
	return &Generator{
		Merger:  m,
		Jobs:    &jobs.NodeGenerator{Options: jobs.Options{Project: "demo", PackageName: "demo", EntryPoint: "run"}},
		Workers: 2,
		Log:     logger.Nop(),
	}
}

func testPipelines() []*dag.Pipeline {
	return []*dag.Pipeline{
		{Name: dag.DefaultPipeline, Nodes: []dag.NodeDef{
			{Name: "a"},
			{Name: "b", DependsOn: []string{"a"}},
		}},
		{Name: "ds", Nodes: []dag.NodeDef{{Name: "train"}}},
	}
}

func mustParse(t *testing.T, data string) override.Selectors {
	t.Helper()
	sel, err := override.ParseSelectors([]byte(data))
	if err != nil {
		t.Fatalf("ParseSelectors: %v", err)
	}
	return sel
}
