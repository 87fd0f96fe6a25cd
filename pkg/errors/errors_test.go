// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and the taxonomy predicates

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/gamerepo/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_found_error",
			code:    errors.ErrNotFound,
			message: "version not found",
			wantStr: "[NOT_FOUND] version not found",
		},
		{
			name:    "cycle_error",
			code:    errors.ErrCyclicInheritance,
			message: "a -> b -> a",
			wantStr: "[CYCLIC_INHERITANCE] a -> b -> a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}
			if err.Details == nil {
				t.Error("New() details should be initialized")
			}
			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrapf(baseErr, errors.ErrIO, "cannot read %s", "1.12.2.json")

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}
		wantStr := "[IO] cannot read 1.12.2.json: base error"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		if err := errors.Wrap(nil, errors.ErrIO, "io"); err != nil {
			t.Error("Wrap(nil) should return nil")
		}
	})
}

func TestWithDetails(t *testing.T) {
	err := errors.New(errors.ErrCorruption, "hash mismatch").
		WithDetail("hash", "abcd").
		WithDetails(map[string]interface{}{"size": int64(10)})

	if err.Details["hash"] != "abcd" {
		t.Errorf("WithDetail() hash = %v", err.Details["hash"])
	}
	if err.Details["size"] != int64(10) {
		t.Errorf("WithDetails() size = %v", err.Details["size"])
	}
	if got := errors.GetErrorDetails(err); got["hash"] != "abcd" {
		t.Errorf("GetErrorDetails() = %v", got)
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrNotFound, "error 1")
	err2 := errors.New(errors.ErrNotFound, "error 2")
	err3 := errors.New(errors.ErrIO, "error 3")

	if !stderrors.Is(err1, err2) {
		t.Error("errors.Is() should match on code")
	}
	if stderrors.Is(err1, err3) {
		t.Error("errors.Is() should not match different codes")
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		notFound   bool
		corruption bool
		parse      bool
		resolution bool
	}{
		{name: "not_found", err: errors.New(errors.ErrNotFound, "x"), notFound: true},
		{name: "corruption", err: errors.New(errors.ErrCorruption, "x"), corruption: true},
		{name: "parse", err: errors.New(errors.ErrParse, "x"), parse: true},
		{name: "cycle", err: errors.New(errors.ErrCyclicInheritance, "x"), resolution: true},
		{name: "missing_ancestor", err: errors.New(errors.ErrMissingAncestor, "x"), resolution: true},
		{name: "too_deep", err: errors.New(errors.ErrChainTooDeep, "x"), resolution: true},
		{name: "fmt_wrapped", err: fmt.Errorf("ctx: %w", errors.New(errors.ErrNotFound, "x")), notFound: true},
		{name: "standard", err: stderrors.New("plain")},
		{name: "nil", err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsNotFound(tt.err); got != tt.notFound {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.notFound)
			}
			if got := errors.IsCorruption(tt.err); got != tt.corruption {
				t.Errorf("IsCorruption() = %v, want %v", got, tt.corruption)
			}
			if got := errors.IsParse(tt.err); got != tt.parse {
				t.Errorf("IsParse() = %v, want %v", got, tt.parse)
			}
			if got := errors.IsResolution(tt.err); got != tt.resolution {
				t.Errorf("IsResolution() = %v, want %v", got, tt.resolution)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := errors.GetErrorCode(stderrors.New("plain")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode() = %v, want %v", got, errors.ErrUnknown)
	}
	if got := errors.GetErrorCode(nil); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode(nil) = %v, want %v", got, errors.ErrUnknown)
	}
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	ioErr := errors.Wrap(rootCause, errors.ErrIO, "cannot read manifest")
	renameErr := errors.Wrap(ioErr, errors.ErrIO, "rename rolled back")

	if !errors.IsErrorCode(renameErr, errors.ErrIO) {
		t.Error("Top level should have ErrIO code")
	}
	if !stderrors.Is(renameErr, rootCause) {
		t.Error("Should find root cause with errors.Is")
	}
}
