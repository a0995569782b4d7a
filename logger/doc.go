// Package logger provides structured logging for bundlegen using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//
// # Usage
//
//	log := logger.Get("override")
//	log.Debug("pattern skipped", logger.Fields(logger.FieldSelector, key))
package logger
