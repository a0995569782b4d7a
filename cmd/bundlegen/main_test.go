package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type project struct {
	root      string
	config    string
	resources string
}

func newProject(t *testing.T, overrides string) project {
	t.Helper()
	root := t.TempDir()
	p := project{
		root:      root,
		config:    filepath.Join(root, "bundlegen.yml"),
		resources: filepath.Join(root, "resources"),
	}
	files := map[string]string{
		"conf/pipelines/__default__.yml": "nodes:\n  - name: ingest\n  - name: train\n    depends_on: [ingest]\n",
		"conf/dev/databricks.yml":        overrides,
		"bundlegen.yml": fmt.Sprintf(`
base:
  environment: production
logging:
  level: error
generator:
  project: demo
  pipelines_dir: %s
  overrides_file: %s
  output_dir: %s
  workers: 2
`, filepath.Join(root, "conf/pipelines"), filepath.Join(root, "conf/dev/databricks.yml"), p.resources),
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return p
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const overrides = `
default:
  job_clusters:
    - job_cluster_key: default
      new_cluster:
        spark_env_vars:
          LOGGING_CONFIG: /dbfs/FileStore/demo/conf/logging.yml
  tasks:
    - task_key: default
      job_cluster_key: default
`

func TestBundleCommand(t *testing.T) {
	p := newProject(t, overrides)

	out, err := execute(t, "bundle", "--config", p.config)
	if err != nil {
		t.Fatalf("bundle: %v\n%s", err, out)
	}
	if !strings.Contains(out, "wrote 1, skipped 0") {
		t.Errorf("unexpected output %q", out)
	}
	data, err := os.ReadFile(filepath.Join(p.resources, "demo.yml"))
	if err != nil {
		t.Fatalf("expected resource file: %v", err)
	}
	for _, want := range []string{"name: demo", "task_key: train", "job_cluster_key: default", "--env"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("expected %q in:\n%s", want, data)
		}
	}

	out, err = execute(t, "bundle", "--config", p.config, "--check")
	if err != nil {
		t.Fatalf("check after write: %v\n%s", err, out)
	}

	out, err = execute(t, "bundle", "--config", p.config, "--check", "--granularity", "pipeline")
	if err == nil {
		t.Fatalf("expected check to report drift, got %q", out)
	}
	if !strings.Contains(out, "--- ") {
		t.Errorf("expected a unified diff, got %q", out)
	}
}

func TestBundleCommand_MissingLogConfig(t *testing.T) {
	p := newProject(t, "default:\n  job_clusters:\n    - job_cluster_key: c1\n      new_cluster: {spark_version: x}\n")

	out, err := execute(t, "bundle", "--config", p.config)
	if err == nil || !strings.Contains(err.Error(), "LOGGING_CONFIG") {
		t.Fatalf("expected LOGGING_CONFIG error, got %v (%s)", err, out)
	}
	if _, statErr := os.Stat(p.resources); !os.IsNotExist(statErr) {
		t.Fatal("no resources may be written when validation fails")
	}
}

func TestBundleCommand_InvalidFlags(t *testing.T) {
	p := newProject(t, overrides)
	if _, err := execute(t, "bundle", "--config", p.config, "--default-key", "_x"); err == nil {
		t.Fatal("expected reserved default key to be rejected")
	}
	if _, err := execute(t, "bundle", "--config", p.config, "--granularity", "stage"); err == nil {
		t.Fatal("expected unknown granularity to be rejected")
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "bundlegen ") {
		t.Errorf("unexpected output %q", out)
	}
}
