package jobs

import (
	"github.com/kbukum/bundlegen/dag"
	"github.com/kbukum/bundlegen/util"
)

// Job document fields written by the generators.
const (
	FormatMultiTask = "MULTI_TASK"

	fieldName            = "name"
	fieldFormat          = "format"
	fieldTasks           = "tasks"
	fieldTaskKey         = "task_key"
	fieldDependsOn       = "depends_on"
	fieldLibraries       = "libraries"
	fieldWhl             = "whl"
	fieldPythonWheelTask = "python_wheel_task"
	fieldPackageName     = "package_name"
	fieldEntryPoint      = "entry_point"
	fieldParameters      = "parameters"
)

// Options describe the project a job is generated for.
type Options struct {
	// Project names the default pipeline's job and prefixes all others.
	Project string
	// PackageName is the Python package holding the entry point.
	PackageName string
	// EntryPoint is the console script the wheel task calls.
	EntryPoint string
	// Wheel is the library path attached to every task. Empty omits it.
	Wheel string
	// ConfSource is passed as --conf-source when set.
	ConfSource string
	// Env is passed as --env when set.
	Env string
}

// JobName returns the job name for pipeline in project: the default
// pipeline takes the project name, others are "<project>_<pipeline>".
func JobName(project, pipeline string) string {
	if pipeline == dag.DefaultPipeline || pipeline == "" {
		return util.SanitizeName(project)
	}
	return util.SanitizeName(project + "_" + pipeline)
}

// wheelTask builds the python_wheel_task of a task that runs target.
func (o Options) wheelTask(flag, target string, tags []string) map[string]any {
	params := []any{flag, target}
	if o.ConfSource != "" {
		params = append(params, "--conf-source", o.ConfSource)
	}
	if o.Env != "" {
		params = append(params, "--env", o.Env)
	}
	for _, tag := range tags {
		params = append(params, "--tags", tag)
	}
	return map[string]any{
		fieldPackageName: o.PackageName,
		fieldEntryPoint:  o.EntryPoint,
		fieldParameters:  params,
	}
}

func (o Options) task(key string, wheelTask map[string]any) map[string]any {
	t := map[string]any{
		fieldTaskKey:         key,
		fieldPythonWheelTask: wheelTask,
	}
	if o.Wheel != "" {
		t[fieldLibraries] = []any{map[string]any{fieldWhl: o.Wheel}}
	}
	return t
}

func (o Options) job(name string, tasks []any) map[string]any {
	return map[string]any{
		fieldName:   name,
		fieldFormat: FormatMultiTask,
		fieldTasks:  tasks,
	}
}
