// Package validation collects field-level validation failures into a single
// errors.AppError.
//
// The fluent Validator is used for checks over generic documents (the
// job-cluster log routing gate) and Validate checks struct tags on
// configuration types through go-playground/validator.
package validation
