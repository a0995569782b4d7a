// Package config loads bundlegen's configuration.
//
// Settings come from a bundlegen.yml file, an optional .env file and the
// process environment, in that order of increasing precedence. Environment
// variables use the BUNDLEGEN_ prefix with underscore-separated paths:
//
//	BUNDLEGEN_GENERATOR_ENV=prod
//	BUNDLEGEN_LOGGING_LEVEL=debug
//
// # Usage
//
//	var cfg config.AppConfig
//	if err := config.LoadConfig("bundlegen", &cfg, config.WithConfigFile(path)); err != nil {
//	    return err
//	}
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
