package bundle

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"go.yaml.in/yaml/v3"

	"github.com/kbukum/bundlegen/errors"
	"github.com/kbukum/bundlegen/logger"
	"github.com/kbukum/bundlegen/override"
)

// Output formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Writer stores generated jobs as resource files.
type Writer struct {
	Dir string
	// Format is FormatYAML (default) or FormatJSON.
	Format string
	// Overwrite replaces existing files instead of skipping them.
	Overwrite bool
	Log       *logger.Logger
}

// WriteReport lists what a Write call did, by job name.
type WriteReport struct {
	Written []string
	Skipped []string
}

// Path returns the file a job is written to.
func (w *Writer) Path(job string) string {
	return filepath.Join(w.Dir, job+w.ext())
}

func (w *Writer) ext() string {
	if w.Format == FormatJSON {
		return ".json"
	}
	return ".yml"
}

// Write stores every job of res. Existing files are left untouched unless
// Overwrite is set.
func (w *Writer) Write(res *Result) (WriteReport, error) {
	var report WriteReport
	log := w.Log
	if log == nil {
		log = logger.Get("bundle")
	}
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return report, fmt.Errorf("bundle: creating %s: %w", w.Dir, err)
	}

	for _, name := range res.Names() {
		path := w.Path(name)
		if _, err := os.Stat(path); err == nil && !w.Overwrite {
			log.Warn("resource exists, skipping", logger.Fields(logger.FieldJob, name, logger.FieldPath, path))
			report.Skipped = append(report.Skipped, name)
			continue
		}
		data, err := Encode(name, res.Jobs[name], w.Format)
		if err != nil {
			return report, err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return report, fmt.Errorf("bundle: writing %s: %w", path, err)
		}
		log.Debug("resource written", logger.Fields(logger.FieldJob, name, logger.FieldPath, path))
		report.Written = append(report.Written, name)
	}
	return report, nil
}

// Encode renders one job as a resource document:
// resources.jobs.<name> = job.
func Encode(name string, job *override.Ordered, format string) ([]byte, error) {
	doc := map[string]any{
		"resources": map[string]any{
			"jobs": map[string]any{name: job},
		},
	}
	switch format {
	case "", FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("bundle: encoding %s: %w", name, err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("bundle: encoding %s: %w", name, err)
		}
		return append(data, '\n'), nil
	default:
		return nil, errors.InvalidInput("format", fmt.Sprintf("unsupported output format %q", format))
	}
}
