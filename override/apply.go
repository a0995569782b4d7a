package override

import (
	"fmt"

	"github.com/kbukum/bundlegen/errors"
	"github.com/kbukum/bundlegen/logger"
)

// ApplyJob resolves the overrides for job, merges them, prunes empty values
// and returns the job with canonical key order.
func (m *Merger) ApplyJob(job map[string]any, sel Selectors) (*Ordered, error) {
	merged, err := m.MergeJob(job, sel)
	if err != nil {
		return nil, err
	}
	return OrderJob(merged), nil
}

// MergeJob is ApplyJob without the final key ordering. The job name is
// never taken from the override side.
func (m *Merger) MergeJob(job map[string]any, sel Selectors) (map[string]any, error) {
	name, ok := stringValue(job[KeyName])
	if !ok {
		return nil, errors.MissingField(KeyName).WithDetail("reason", "baseline job has no name")
	}

	res, err := m.Resolve(name, sel)
	if err != nil {
		return nil, fmt.Errorf("job %q: resolving overrides: %w", name, err)
	}
	delete(res.Override, KeyName)

	merged, err := m.merge(cloneMap(job), res.Override, res.TaskDefault, "")
	if err != nil {
		return nil, fmt.Errorf("job %q: %w", name, err)
	}
	merged[KeyName] = name

	if err := checkDependencies(merged); err != nil {
		return nil, fmt.Errorf("job %q: %w", name, err)
	}

	m.log.Debug("job merged", logger.Fields(logger.FieldJob, name, logger.FieldSelector, res.Selectors))
	pruned, _ := prune(merged).(map[string]any)
	return pruned, nil
}

// checkDependencies verifies every depends_on edge points at a task of the
// same job.
func checkDependencies(job map[string]any) error {
	tasks, _ := asList(job[KeyTasks])
	known := make(map[string]bool, len(tasks))
	for _, item := range tasks {
		if entry, ok := asMap(item); ok {
			if id, ok := stringValue(entry[KeyTaskKey]); ok {
				known[id] = true
			}
		}
	}
	for _, item := range tasks {
		entry, ok := asMap(item)
		if !ok {
			continue
		}
		id, _ := stringValue(entry[KeyTaskKey])
		deps, _ := asList(entry[KeyDependsOn])
		for _, d := range deps {
			dep, _ := asMap(d)
			target, _ := stringValue(dep[KeyTaskKey])
			if !known[target] {
				return errors.InvalidInput(
					indexPath(KeyTasks, id)+"."+KeyDependsOn,
					fmt.Sprintf("task %q depends on %q, which is not a task of this job", id, target))
			}
		}
	}
	return nil
}
