package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Recoverable indicates the failing entry may be skipped.
	Recoverable bool `json:"recoverable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic recoverability detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:        code,
		Message:     message,
		Recoverable: IsRecoverableCode(code),
	}
}

// As converts an error to an AppError if possible.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is, or wraps, an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

// --- Constructors, one per failure class ---

// InvalidInput creates an error for a value with the wrong shape at path.
func InvalidInput(path, reason string) *AppError {
	details := make(map[string]any)
	if path != "" {
		details["path"] = path
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("invalid input at %s: %s", displayPath(path), reason),
		Details: details,
	}
}

// MissingIdentifier creates an error for a list entry without its identifier field.
func MissingIdentifier(section, field string, index int) *AppError {
	return &AppError{
		Code:    ErrCodeMissingIdentifier,
		Message: fmt.Sprintf("entry %d of %q has no %q", index, section, field),
		Details: map[string]any{"section": section, "field": field, "index": index},
	}
}

// UnknownSection creates an error for a list of mappings with no registered identifier.
func UnknownSection(field string) *AppError {
	return &AppError{
		Code: ErrCodeUnknownSection,
		Message: fmt.Sprintf("list field %q contains mappings but has no registered identifier; "+
			"register it as a section or add it to the replace set", field),
		Details: map[string]any{"field": field},
	}
}

// MissingField creates an error for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("missing required field: %s", field),
		Details: map[string]any{"field": field},
	}
}

// ReservedKey creates an error for a selector that cannot be used.
func ReservedKey(key, reason string) *AppError {
	return &AppError{
		Code: ErrCodeReservedKey, Message: fmt.Sprintf("selector %q is reserved: %s", key, reason),
		Details: map[string]any{"selector": key},
	}
}

// InvalidPattern creates a recoverable error for a pattern selector that does not compile.
func InvalidPattern(selector string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeInvalidPattern, Message: fmt.Sprintf("pattern selector %q does not compile", selector),
		Recoverable: true, Details: map[string]any{"selector": selector}, Cause: cause,
	}
}

// CycleDetected creates an error for a pipeline whose graph has a cycle.
func CycleDetected(pipeline string, processed, total int) *AppError {
	return &AppError{
		Code:    ErrCodeCycleDetected,
		Message: fmt.Sprintf("pipeline %q has a cycle, processed %d of %d nodes", pipeline, processed, total),
		Details: map[string]any{"pipeline": pipeline},
	}
}

// NotFound creates an error for a resource that was not found.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("%s %q not found", resource, id),
		Details: details,
	}
}

// AlreadyExists creates an error for a resource that already exists.
func AlreadyExists(resource, id string) *AppError {
	return &AppError{
		Code: ErrCodeAlreadyExists, Message: fmt.Sprintf("%s %q already exists", resource, id),
		Details: map[string]any{"resource": resource, "id": id},
	}
}

// Internal creates an error for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "unexpected failure", Cause: cause,
	}
}

func displayPath(path string) string {
	if strings.TrimSpace(path) == "" {
		return "(root)"
	}
	return path
}

// Wrap converts any error into an AppError, keeping an existing AppError in
// the chain. Returns nil for a nil error.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := As(err); ok {
		return appErr
	}
	return Internal(err)
}
