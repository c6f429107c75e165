package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataFor(t *testing.T) {
	t.Parallel()

	if got := MetadataFor(CodeValidation).HTTPStatus; got != http.StatusBadRequest {
		t.Fatalf("validation status = %d, want 400", got)
	}
	if got := MetadataFor(CodeDependency); !got.Retryable || got.HTTPStatus != http.StatusServiceUnavailable {
		t.Fatalf("dependency metadata = %+v", got)
	}
	if got := MetadataFor(Code("UNKNOWN")).HTTPStatus; got != http.StatusInternalServerError {
		t.Fatalf("unknown code must map to internal, got %d", got)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := stdErrors.New("redis: connection refused")
	err := Wrap(CodeDependency, cause, "state store unreachable")

	if !stdErrors.Is(err, cause) {
		t.Fatalf("wrapped error lost its cause")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("code = %q", err.Code())
	}
	if err.Error() != "DEPENDENCY_ERROR: state store unreachable" {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestWrapNilCause(t *testing.T) {
	t.Parallel()

	err := Wrap(CodeInternal, nil, "oops")
	if err.Unwrap() != nil {
		t.Fatalf("nil cause must stay nil")
	}
}

func TestAsThroughWrapping(t *testing.T) {
	t.Parallel()

	inner := New(CodeNotFound, "set not found").WithDetails(map[string]string{"id": "set-1"})
	outer := fmt.Errorf("loading state: %w", inner)

	typed := As(outer)
	if typed == nil {
		t.Fatalf("As failed to find the typed error")
	}
	if typed.Code() != CodeNotFound {
		t.Fatalf("code = %q", typed.Code())
	}
	if typed.Details() == nil {
		t.Fatalf("details lost through wrapping")
	}

	if As(stdErrors.New("plain")) != nil {
		t.Fatalf("plain errors must not convert")
	}
	if As(nil) != nil {
		t.Fatalf("nil must not convert")
	}
}

func TestDump(t *testing.T) {
	t.Parallel()

	cause := stdErrors.New("dial tcp: refused")
	err := Wrap(CodeDependency, cause, "cart service down")

	d := Dump(err)
	if d.TopMessage != "DEPENDENCY_ERROR: cart service down" {
		t.Fatalf("top message = %q", d.TopMessage)
	}
	if d.Code != CodeDependency {
		t.Fatalf("code = %q", d.Code)
	}
	if len(d.Chain) != 2 {
		t.Fatalf("chain = %v, want 2 entries", d.Chain)
	}

	if got := Dump(nil); got.TopMessage != "" || got.Chain != nil {
		t.Fatalf("Dump(nil) = %+v", got)
	}
}
