package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Structural errors (malformed baseline or override documents)
const (
	// ErrCodeInvalidInput indicates a document or argument has the wrong shape.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingIdentifier indicates a list entry lacks its identifier field.
	ErrCodeMissingIdentifier ErrorCode = "MISSING_IDENTIFIER"
	// ErrCodeCycleDetected indicates a pipeline graph is not acyclic.
	ErrCodeCycleDetected ErrorCode = "CYCLE_DETECTED"
)

// Configuration errors
const (
	// ErrCodeUnknownSection indicates a list of mappings with no registered identifier.
	ErrCodeUnknownSection ErrorCode = "UNKNOWN_SECTION"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeReservedKey indicates a selector key that cannot be used.
	ErrCodeReservedKey ErrorCode = "RESERVED_KEY"
	// ErrCodeInvalidPattern indicates a pattern selector that does not compile.
	ErrCodeInvalidPattern ErrorCode = "INVALID_PATTERN"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeAlreadyExists indicates the resource already exists.
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Only a broken pattern is isolated to its own entry; everything else aborts the run.
var recoverableCodes = map[ErrorCode]bool{
	ErrCodeInvalidPattern: true,
}

// IsRecoverableCode returns true if an error with this code can be skipped
// without aborting generation.
func IsRecoverableCode(code ErrorCode) bool {
	return recoverableCodes[code]
}
