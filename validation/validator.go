package validation

import (
	"fmt"
	"strings"

	"github.com/kbukum/bundlegen/errors"
)

// Validator collects validation errors.
type Validator struct {
	errors []FieldError
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string           `json:"field"`
	Message string           `json:"message"`
	Code    errors.ErrorCode `json:"code"`
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{
		errors: make([]FieldError, 0),
	}
}

// AddError adds a field error with the generic invalid-input code.
func (v *Validator) AddError(field, message string) {
	v.add(field, message, errors.ErrCodeInvalidInput)
}

// AddMissing adds a field error for a required field that is absent.
func (v *Validator) AddMissing(field, message string) {
	v.add(field, message, errors.ErrCodeMissingField)
}

func (v *Validator) add(field, message string, code errors.ErrorCode) {
	v.errors = append(v.errors, FieldError{
		Field:   field,
		Message: message,
		Code:    code,
	})
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns an AppError if there are validation errors, nil otherwise.
// The error carries the shared code of all field errors, or INVALID_INPUT
// when they differ.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}

	code := v.errors[0].Code
	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
		if e.Code != code {
			code = errors.ErrCodeInvalidInput
		}
	}

	appErr := errors.New(code, strings.Join(messages, "; "))
	appErr.Details = map[string]any{
		"fields": v.errors,
	}

	return appErr
}

// Required checks if a string is non-empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddMissing(field, "is required")
	}
	return v
}

// RequiredKey checks that m has a non-empty value under key.
func (v *Validator) RequiredKey(field string, m map[string]any, key string) *Validator {
	val, ok := m[key]
	if !ok || val == nil {
		v.AddMissing(field, "is required")
		return v
	}
	if s, isStr := val.(string); isStr && strings.TrimSpace(s) == "" {
		v.AddMissing(field, "must not be empty")
	}
	return v
}

// NotPrefixed checks that a string does not start with prefix.
func (v *Validator) NotPrefixed(field, value, prefix string) *Validator {
	if prefix != "" && strings.HasPrefix(value, prefix) {
		v.AddError(field, fmt.Sprintf("must not start with %q", prefix))
	}
	return v
}

// Min checks if a number meets minimum value.
func (v *Validator) Min(field string, value, minVal int) *Validator {
	if value < minVal {
		v.AddError(field, fmt.Sprintf("must be at least %d", minVal))
	}
	return v
}

// OneOf checks if a value is one of the allowed values.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if value == "" {
		return v
	}
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.AddError(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom applies a custom validation condition.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	if !condition {
		v.AddError(field, message)
	}
	return v
}
