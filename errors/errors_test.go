package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Fatal(t *testing.T) {
	err := New(ErrCodeUnknownSection, "bad section")
	if err.Code != ErrCodeUnknownSection {
		t.Errorf("expected code %s, got %s", ErrCodeUnknownSection, err.Code)
	}
	if err.Message != "bad section" {
		t.Errorf("expected message 'bad section', got %q", err.Message)
	}
	if err.Recoverable {
		t.Error("UNKNOWN_SECTION should not be recoverable")
	}
}

func TestAppError_New_Recoverable(t *testing.T) {
	err := New(ErrCodeInvalidPattern, "bad regex")
	if !err.Recoverable {
		t.Error("INVALID_PATTERN should be recoverable")
	}
}

func TestAppError_MissingIdentifier_NamesSection(t *testing.T) {
	err := MissingIdentifier("tasks", "task_key", 2)
	if err.Code != ErrCodeMissingIdentifier {
		t.Errorf("expected MISSING_IDENTIFIER, got %s", err.Code)
	}
	if !strings.Contains(err.Error(), `"tasks"`) || !strings.Contains(err.Error(), `"task_key"`) {
		t.Errorf("message should name section and field, got %q", err.Error())
	}
	if err.Details["index"] != 2 {
		t.Errorf("expected index=2, got %v", err.Details["index"])
	}
}

func TestAppError_UnknownSection_NamesField(t *testing.T) {
	err := UnknownSection("webhooks")
	if !strings.Contains(err.Message, `"webhooks"`) {
		t.Errorf("expected field name in message, got %q", err.Message)
	}
	if err.Details["field"] != "webhooks" {
		t.Errorf("expected field=webhooks, got %v", err.Details["field"])
	}
}

func TestAppError_InvalidInput_RootPath(t *testing.T) {
	err := InvalidInput("", "expected a mapping")
	if !strings.Contains(err.Message, "(root)") {
		t.Errorf("expected (root) in message, got %q", err.Message)
	}
	if _, ok := err.Details["path"]; ok {
		t.Error("expected no path detail for the root")
	}
}

func TestAppError_InvalidPattern_KeepsCause(t *testing.T) {
	cause := fmt.Errorf("missing closing )")
	err := InvalidPattern("re:(abc", cause)
	if !err.Recoverable {
		t.Error("InvalidPattern should be recoverable")
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected cause in the chain")
	}
}

func TestAppError_WithDetails_Merge(t *testing.T) {
	err := NotFound("pipeline", "etl").WithDetails(map[string]any{
		"dir": "pipelines",
	})
	if err.Details["dir"] != "pipelines" {
		t.Errorf("expected dir=pipelines in details")
	}
	if err.Details["resource"] != "pipeline" {
		t.Error("expected original details to be preserved")
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := &AppError{}
	err.WithDetail("key", "value")
	if err.Details["key"] != "value" {
		t.Errorf("expected key=value, got %v", err.Details["key"])
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := Internal(cause)
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
	if NotFound("x", "").Unwrap() != nil {
		t.Error("Unwrap should return nil when no cause")
	}
}

func TestAppError_Constructors_Table(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		code        ErrorCode
		recoverable bool
	}{
		{"MissingField", MissingField("spark_env_vars.LOGGING_CONFIG"), ErrCodeMissingField, false},
		{"ReservedKey", ReservedKey("_default", "leading underscore"), ErrCodeReservedKey, false},
		{"CycleDetected", CycleDetected("etl", 1, 3), ErrCodeCycleDetected, false},
		{"AlreadyExists", AlreadyExists("generator", "node"), ErrCodeAlreadyExists, false},
		{"InvalidPattern", InvalidPattern("re:[", nil), ErrCodeInvalidPattern, true},
		{"Internal", Internal(nil), ErrCodeInternal, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.Recoverable != tc.recoverable {
				t.Errorf("expected recoverable=%v, got %v", tc.recoverable, tc.err.Recoverable)
			}
		})
	}
}

func TestHasCode_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("job wf: %w", UnknownSection("webhooks"))
	if !HasCode(wrapped, ErrCodeUnknownSection) {
		t.Error("expected HasCode to see through wrapping")
	}
	if HasCode(wrapped, ErrCodeMissingField) {
		t.Error("expected HasCode to reject a different code")
	}
	if HasCode(fmt.Errorf("plain"), ErrCodeInternal) {
		t.Error("expected HasCode to be false for plain errors")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil) != nil {
		t.Error("Wrap(nil) should return nil")
	}

	orig := NotFound("item", "1")
	if Wrap(fmt.Errorf("outer: %w", orig)) != orig {
		t.Error("Wrap should return the AppError from the chain")
	}

	plain := fmt.Errorf("something broke")
	got := Wrap(plain)
	if got.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", got.Code)
	}
	if got.Cause != plain {
		t.Error("expected cause to be the original error")
	}
}
