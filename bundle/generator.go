package bundle

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kbukum/bundlegen/dag"
	"github.com/kbukum/bundlegen/errors"
	"github.com/kbukum/bundlegen/jobs"
	"github.com/kbukum/bundlegen/logger"
	"github.com/kbukum/bundlegen/override"
	"github.com/kbukum/bundlegen/util"
)

// Generator produces the final job documents of a project.
type Generator struct {
	Merger *override.Merger
	Jobs   jobs.Generator
	// Workers bounds the number of jobs merged concurrently. Defaults to
	// the number of CPUs.
	Workers int
	// LogConfigEnv is the variable every default job cluster must set.
	// Defaults to override.DefaultLogConfigEnv.
	LogConfigEnv string
	Log          *logger.Logger
}

// Result holds the jobs of one successful run.
type Result struct {
	RunID string
	Jobs  map[string]*override.Ordered
}

// Names returns the job names in ascending order.
func (r *Result) Names() []string {
	return util.SortedKeys(r.Jobs)
}

// Generate builds one job per pipeline and applies sel to each. Any error
// aborts the run and no job is returned.
func (g *Generator) Generate(ctx context.Context, pipelines []*dag.Pipeline, sel override.Selectors) (*Result, error) {
	if g.Merger == nil || g.Jobs == nil {
		return nil, errors.InvalidInput("generator", "merger and job generator are required")
	}
	log := g.Log
	if log == nil {
		log = logger.Get("bundle")
	}
	runID := uuid.NewString()
	log = log.WithFields(logger.Fields(logger.FieldRunID, runID))
	start := time.Now()

	if err := override.CheckDefaultKey(g.Merger.DefaultKey()); err != nil {
		return nil, err
	}
	envVar := util.Coalesce(g.LogConfigEnv, override.DefaultLogConfigEnv)
	if err := override.ValidateClusterDefaults(sel, g.Merger.DefaultKey(), envVar); err != nil {
		log.Error("override validation failed", logger.ErrorFields("validate", err))
		return nil, err
	}

	baselines, err := g.baselines(pipelines)
	if err != nil {
		return nil, err
	}

	results := make([]*override.Ordered, len(baselines))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers())
	for i, job := range baselines {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			doc, err := g.Merger.ApplyJob(job, sel)
			if err != nil {
				return err
			}
			results[i] = doc
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		log.Error("job generation failed", logger.ErrorFields("merge", err))
		return nil, err
	}

	out := &Result{RunID: runID, Jobs: make(map[string]*override.Ordered, len(results))}
	for i, doc := range results {
		out.Jobs[baselines[i][override.KeyName].(string)] = doc
	}
	log.Info("jobs generated", logger.Fields(
		logger.FieldCount, len(out.Jobs),
		logger.FieldDuration, time.Since(start).Milliseconds()))
	return out, nil
}

// baselines assembles one job per pipeline; job names must be unique.
func (g *Generator) baselines(pipelines []*dag.Pipeline) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(pipelines))
	owners := make(map[string]string, len(pipelines))
	for _, p := range pipelines {
		job, err := g.Jobs.Generate(p)
		if err != nil {
			return nil, fmt.Errorf("pipeline %q: %w", p.Name, err)
		}
		name, _ := job[override.KeyName].(string)
		if name == "" {
			return nil, errors.MissingField(override.KeyName).WithDetail("pipeline", p.Name)
		}
		if other, dup := owners[name]; dup {
			return nil, errors.AlreadyExists("job", name).WithDetail("pipelines", []string{other, p.Name})
		}
		owners[name] = p.Name
		out = append(out, job)
	}
	return out, nil
}

func (g *Generator) workers() int {
	if g.Workers > 0 {
		return g.Workers
	}
	return runtime.NumCPU()
}
