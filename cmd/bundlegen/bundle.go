package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/bundlegen/bundle"
	"github.com/kbukum/bundlegen/config"
	"github.com/kbukum/bundlegen/errors"
	"github.com/kbukum/bundlegen/jobs"
	"github.com/kbukum/bundlegen/logger"
	"github.com/kbukum/bundlegen/override"
	"github.com/kbukum/bundlegen/util"
)

// bundleOptions defines flags for the bundle command.
type bundleOptions struct {
	configFile  string
	env         string
	defaultKey  string
	granularity string
	outputDir   string
	overwrite   bool
	check       bool
}

func (o *bundleOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.configFile, "config", "c", "", "path of bundlegen.yml (searched for when empty)")
	cmd.Flags().StringVarP(&o.env, "env", "e", "", "deployment environment; selects conf/<env>/databricks.yml")
	cmd.Flags().StringVar(&o.defaultKey, "default-key", "", "selector applied to every job and task")
	cmd.Flags().StringVar(&o.granularity, "granularity", "", "job granularity: node or pipeline")
	cmd.Flags().StringVarP(&o.outputDir, "output-dir", "o", "", "directory resource files are written to")
	cmd.Flags().BoolVar(&o.overwrite, "overwrite", false, "replace existing resource files")
	cmd.Flags().BoolVar(&o.check, "check", false, "report differences with existing files instead of writing")
}

// load reads the configuration and applies flags set on the command line.
func (o *bundleOptions) load(cmd *cobra.Command) (*config.AppConfig, error) {
	var opts []config.LoaderOption
	if o.configFile != "" {
		opts = append(opts, config.WithConfigFile(o.configFile))
	}
	var cfg config.AppConfig
	if err := config.LoadConfig("bundlegen", &cfg, opts...); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("env") {
		cfg.Generator.Env = o.env
	}
	if flags.Changed("default-key") {
		cfg.Generator.DefaultKey = o.defaultKey
	}
	if flags.Changed("granularity") {
		cfg.Generator.Granularity = o.granularity
	}
	if flags.Changed("output-dir") {
		cfg.Generator.OutputDir = o.outputDir
	}
	if flags.Changed("overwrite") {
		cfg.Generator.Overwrite = o.overwrite
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (o *bundleOptions) run(cmd *cobra.Command, cfg *config.AppConfig) error {
	gc := cfg.Generator
	log := logger.Get("bundle")

	merger, err := override.NewMerger(gc.DefaultKey, override.WithLogger(logger.Get("override")))
	if err != nil {
		return err
	}
	jobGen, err := jobs.DefaultRegistry().Create(gc.Granularity, jobs.Options{
		Project:     gc.Project,
		PackageName: gc.PackageName,
		EntryPoint:  gc.EntryPoint,
		Wheel:       gc.Wheel,
		ConfSource:  gc.ConfSource,
		Env:         gc.Env,
	})
	if err != nil {
		return err
	}

	pipelines, err := bundle.LoadPipelines(gc.PipelinesDir)
	if err != nil {
		return err
	}
	sel, err := bundle.LoadSelectors(gc.OverridesFile)
	if err != nil {
		return err
	}
	log.Debug("inputs loaded", logger.Fields(
		logger.FieldCount, len(pipelines),
		logger.FieldPath, gc.OverridesFile,
		"selectors", sel.Len()))

	gen := &bundle.Generator{
		Merger:       merger,
		Jobs:         jobGen,
		Workers:      gc.Workers,
		LogConfigEnv: gc.LogConfigEnv,
		Log:          log,
	}
	res, err := gen.Generate(cmd.Context(), pipelines, sel)
	if err != nil {
		return err
	}

	writer := &bundle.Writer{Dir: gc.OutputDir, Format: gc.Format, Overwrite: gc.Overwrite, Log: log}
	out := cmd.OutOrStdout()
	if o.check {
		diffs, err := bundle.Diff(writer, res)
		if err != nil {
			return err
		}
		for _, name := range util.SortedKeys(diffs) {
			fmt.Fprint(out, diffs[name])
		}
		if len(diffs) > 0 {
			return fmt.Errorf("%d resource file(s) out of date in %s", len(diffs), gc.OutputDir)
		}
		fmt.Fprintf(out, "%d resource file(s) up to date\n", len(res.Jobs))
		return nil
	}

	report, err := writer.Write(res)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %d, skipped %d resource file(s) in %s\n", len(report.Written), len(report.Skipped), gc.OutputDir)
	return nil
}

// registerLoggers binds the component loggers to the configured global logger.
func registerLoggers() {
	for _, name := range []string{"bundle", "override"} {
		logger.Register(name, logger.WithComponent(name))
	}
}

func newCmdBundle() *cobra.Command {
	o := &bundleOptions{}
	command := &cobra.Command{
		Use:   "bundle",
		Short: "Generate job resource files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.load(cmd)
			if err != nil {
				return err
			}
			logger.Init(cfg.Logging)
			registerLoggers()
			if err := o.run(cmd, cfg); err != nil {
				logger.Get("bundle").Error("bundle failed", logger.Fields(
					"code", errors.Wrap(err).Code, logger.FieldError, err.Error()))
				return err
			}
			return nil
		},
	}
	o.addFlags(command)
	return command
}
