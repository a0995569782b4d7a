package bundle

import (
	"fmt"
	"os"

	"github.com/pmezard/go-difflib/difflib"
)

// Diff compares each job of res with its file in w.Dir and returns a
// unified diff per job that would change. Jobs without a file are diffed
// against an empty document. An empty map means the directory is up to
// date.
func Diff(w *Writer, res *Result) (map[string]string, error) {
	diffs := make(map[string]string)
	for _, name := range res.Names() {
		path := w.Path(name)
		current, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("bundle: reading %s: %w", path, err)
		}
		next, err := Encode(name, res.Jobs[name], w.Format)
		if err != nil {
			return nil, err
		}
		if string(current) == string(next) {
			continue
		}
		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(current)),
			B:        difflib.SplitLines(string(next)),
			FromFile: path,
			ToFile:   path + " (generated)",
			Context:  3,
		})
		if err != nil {
			return nil, err
		}
		diffs[name] = diff
	}
	return diffs, nil
}
