package override

import (
	"github.com/kbukum/bundlegen/logger"
)

// Resolution is the effective override for one job.
type Resolution struct {
	// Override is the merged partial job document.
	Override map[string]any
	// TaskDefault is the task entry keyed by the default key, without its
	// task_key, or nil when none was declared.
	TaskDefault map[string]any
	// Selectors lists the selectors that applied, lowest precedence first.
	Selectors []string
}

// Resolve computes the effective override for the job called name:
// the default selector, then every matching pattern selector merged in
// declaration order, then the exact selector. A name nothing matches gets
// the default selector alone; an empty override document yields an empty
// override.
func (m *Merger) Resolve(name string, sel Selectors) (Resolution, error) {
	layer := m.layered()
	res := Resolution{Override: map[string]any{}}

	if defaults, ok := sel.Get(m.defaultKey); ok {
		merged, err := layer.merge(res.Override, defaults, nil, m.defaultKey)
		if err != nil {
			return Resolution{}, err
		}
		res.Override = merged
		res.Selectors = append(res.Selectors, m.defaultKey)
	}

	patterns := map[string]any{}
	for _, e := range sel.Entries() {
		if ParseSelector(e.Selector, m.defaultKey) != Pattern {
			continue
		}
		re, err := CompilePattern(e.Selector)
		if err != nil {
			m.log.Debug("skipping invalid pattern selector", logger.Fields(
				logger.FieldSelector, e.Selector, logger.FieldJob, name, logger.FieldError, err.Error()))
			continue
		}
		if !re.MatchString(name) {
			continue
		}
		patterns, err = layer.merge(patterns, e.Document, nil, e.Selector)
		if err != nil {
			return Resolution{}, err
		}
		res.Selectors = append(res.Selectors, e.Selector)
	}
	merged, err := layer.merge(res.Override, patterns, nil, "")
	if err != nil {
		return Resolution{}, err
	}
	res.Override = merged

	if ParseSelector(name, m.defaultKey) == ExactName {
		if exact, ok := sel.Get(name); ok {
			merged, err := layer.merge(res.Override, exact, nil, name)
			if err != nil {
				return Resolution{}, err
			}
			res.Override = merged
			res.Selectors = append(res.Selectors, name)
		}
	}

	res.TaskDefault = m.extractTaskDefault(res.Override)
	return res, nil
}

// extractTaskDefault returns a copy of the task entry keyed by the default
// key, without its identifier. The entry stays in the override's task list;
// the list merger skips it while a task default is in effect.
func (m *Merger) extractTaskDefault(override map[string]any) map[string]any {
	tasks, _ := asList(override[KeyTasks])
	for _, item := range tasks {
		entry, ok := asMap(item)
		if !ok {
			continue
		}
		if id, _ := stringValue(entry[KeyTaskKey]); id == m.defaultKey {
			return withoutKey(entry, KeyTaskKey)
		}
	}
	return nil
}
