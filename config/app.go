package config

import (
	"fmt"
	"path"
	"runtime"

	"github.com/kbukum/bundlegen/logger"
	"github.com/kbukum/bundlegen/override"
	"github.com/kbukum/bundlegen/util"
	"github.com/kbukum/bundlegen/validation"
)

// AppConfig is the bundlegen.yml file.
type AppConfig struct {
	Base      BaseConfig      `yaml:"base" mapstructure:"base"`
	Logging   logger.Config   `yaml:"logging" mapstructure:"logging"`
	Generator GeneratorConfig `yaml:"generator" mapstructure:"generator"`
}

// GeneratorConfig controls how jobs are generated and where they go.
type GeneratorConfig struct {
	// Project names the generated jobs.
	Project     string `yaml:"project" mapstructure:"project" validate:"required"`
	PackageName string `yaml:"package_name" mapstructure:"package_name" validate:"required"`
	EntryPoint  string `yaml:"entry_point" mapstructure:"entry_point" validate:"required"`
	Wheel       string `yaml:"wheel" mapstructure:"wheel"`
	ConfSource  string `yaml:"conf_source" mapstructure:"conf_source"`
	// Env is the deployment environment the jobs run in; it selects the
	// override file and is passed to every task.
	Env         string `yaml:"env" mapstructure:"env" validate:"required"`
	Granularity string `yaml:"granularity" mapstructure:"granularity" validate:"required"`

	DefaultKey   string `yaml:"default_key" mapstructure:"default_key" validate:"required"`
	LogConfigEnv string `yaml:"log_config_env" mapstructure:"log_config_env" validate:"required"`

	OverridesFile string `yaml:"overrides_file" mapstructure:"overrides_file"`
	PipelinesDir  string `yaml:"pipelines_dir" mapstructure:"pipelines_dir" validate:"required"`
	OutputDir     string `yaml:"output_dir" mapstructure:"output_dir" validate:"required"`
	Format        string `yaml:"format" mapstructure:"format" validate:"oneof=yaml json"`
	Workers       int    `yaml:"workers" mapstructure:"workers" validate:"min=1"`
	Overwrite     bool   `yaml:"overwrite" mapstructure:"overwrite"`
}

// ApplyDefaults fills unset fields.
func (c *AppConfig) ApplyDefaults() {
	c.Base.ApplyDefaults()
	c.Logging.ApplyDefaults()
	c.Generator.ApplyDefaults()
	if c.Base.Name == "" {
		c.Base.Name = c.Generator.Project
	}
	if c.Base.Debug && c.Logging.Level == "info" {
		c.Logging.Level = "debug"
	}
}

// Validate checks every section.
func (c *AppConfig) Validate() error {
	if err := c.Base.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return c.Generator.Validate()
}

// ApplyDefaults fills unset generator fields.
func (c *GeneratorConfig) ApplyDefaults() {
	c.PackageName = util.Coalesce(c.PackageName, c.Project)
	c.EntryPoint = util.Coalesce(c.EntryPoint, "databricks_run")
	c.Env = util.Coalesce(c.Env, "dev")
	c.Granularity = util.Coalesce(c.Granularity, "node")
	c.DefaultKey = util.Coalesce(c.DefaultKey, "default")
	c.LogConfigEnv = util.Coalesce(c.LogConfigEnv, override.DefaultLogConfigEnv)
	c.PipelinesDir = util.Coalesce(c.PipelinesDir, "conf/pipelines")
	c.OutputDir = util.Coalesce(c.OutputDir, "resources")
	c.Format = util.Coalesce(c.Format, "yaml")
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.ConfSource == "" && c.PackageName != "" {
		c.ConfSource = path.Join("/dbfs/FileStore", c.PackageName, "conf")
	}
	if c.OverridesFile == "" {
		c.OverridesFile = path.Join("conf", c.Env, "databricks.yml")
	}
}

// Validate checks struct tags, then the default key.
func (c *GeneratorConfig) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	return override.CheckDefaultKey(c.DefaultKey)
}
