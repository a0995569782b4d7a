package bundle

import (
	"context"
	"reflect"
	"testing"

	"github.com/kbukum/bundlegen/dag"
	"github.com/kbukum/bundlegen/errors"
	"github.com/kbukum/bundlegen/override"
)

const validOverrides = `
default:
  job_clusters:
    - job_cluster_key: default
      new_cluster:
        spark_version: 15.4.x-scala2.12
        spark_env_vars:
          LOGGING_CONFIG: /dbfs/FileStore/demo/conf/logging.yml
  tasks:
    - task_key: default
      job_cluster_key: default
"re:demo_.*":
  tags:
    team: ds
demo_ds:
  max_concurrent_runs: 2
`

func TestGenerate(t *testing.T) {
	g := newTestGenerator(t)
	res, err := g.Generate(context.Background(), testPipelines(), mustParse(t, validOverrides))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.RunID == "" {
		t.Error("expected a run id")
	}
	if got := res.Names(); !reflect.DeepEqual(got, []string{"demo", "demo_ds"}) {
		t.Fatalf("expected [demo demo_ds], got %v", got)
	}

	demo := res.Jobs["demo"].AsMap()
	for _, item := range demo["tasks"].([]any) {
		task := item.(map[string]any)
		if task["job_cluster_key"] != "default" {
			t.Errorf("task %v: expected job_cluster_key 'default', got %v", task["task_key"], task["job_cluster_key"])
		}
	}
	if _, ok := demo["tags"]; ok {
		t.Error("pattern selector must not match the default pipeline's job")
	}

	ds := res.Jobs["demo_ds"].AsMap()
	if ds["max_concurrent_runs"] != 2 {
		t.Errorf("expected max_concurrent_runs 2, got %v", ds["max_concurrent_runs"])
	}
	if tags, _ := ds["tags"].(map[string]any); tags["team"] != "ds" {
		t.Errorf("expected team tag, got %v", ds["tags"])
	}
}

func TestGenerate_MissingLogConfigProducesNothing(t *testing.T) {
	sel := mustParse(t, `
default:
  job_clusters:
    - job_cluster_key: c1
      new_cluster:
        spark_version: 15.4.x-scala2.12
`)
	res, err := newTestGenerator(t).Generate(context.Background(), testPipelines(), sel)
	if !errors.HasCode(err, errors.ErrCodeMissingField) {
		t.Fatalf("expected MISSING_FIELD, got %v", err)
	}
	if res != nil {
		t.Fatalf("expected no result, got %d jobs", len(res.Jobs))
	}
}

func TestGenerate_OneFailingJobAbortsRun(t *testing.T) {
	sel := mustParse(t, `
demo:
  tasks:
    - task_key: b
      depends_on:
        - task_key: ghost
`)
	res, err := newTestGenerator(t).Generate(context.Background(), testPipelines(), sel)
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
	if res != nil {
		t.Fatal("expected no result")
	}
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name      string
		pipelines []*dag.Pipeline
		code      errors.ErrorCode
	}{
		{
			name: "duplicate job name",
			pipelines: []*dag.Pipeline{
				{Name: "a b", Nodes: []dag.NodeDef{{Name: "x"}}},
				{Name: "a_b", Nodes: []dag.NodeDef{{Name: "y"}}},
			},
			code: errors.ErrCodeAlreadyExists,
		},
		{
			name:      "cyclic pipeline",
			pipelines: []*dag.Pipeline{{Name: "p", Nodes: []dag.NodeDef{{Name: "x", DependsOn: []string{"x"}}}}},
			code:      errors.ErrCodeCycleDetected,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestGenerator(t).Generate(context.Background(), tt.pipelines, override.Selectors{})
			if !errors.HasCode(err, tt.code) {
				t.Fatalf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestGenerate_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newTestGenerator(t).Generate(ctx, testPipelines(), override.Selectors{}); err == nil {
		t.Fatal("expected context error")
	}
}

func TestGenerate_RequiresDependencies(t *testing.T) {
	if _, err := (&Generator{}).Generate(context.Background(), nil, override.Selectors{}); err == nil {
		t.Fatal("expected error without merger")
	}
}
