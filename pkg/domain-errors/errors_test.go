package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHasCode(t *testing.T) {
	err := New(CodeNotFound, "no such row")
	if !HasCode(err, CodeNotFound) {
		t.Fatalf("expected CodeNotFound")
	}
	if HasCode(err, CodeInternal) {
		t.Fatalf("did not expect CodeInternal")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if !HasCode(wrapped, CodeNotFound) {
		t.Fatalf("expected HasCode to see through wrapping")
	}
}

func TestHasKind(t *testing.T) {
	err := NewKind(CodeNotFound, KindStateNotFound, "state 9 not found in country 2")
	if !HasKind(err, KindStateNotFound) {
		t.Fatalf("expected KindStateNotFound")
	}
	if HasKind(err, KindCountryNotFound) {
		t.Fatalf("kinds must not be conflated")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := Wrap(cause, CodeInternal, "failed to load countries")
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to be discoverable")
	}
	if CodeOf(err) != CodeInternal {
		t.Fatalf("expected CodeInternal, got %s", CodeOf(err))
	}
}

func TestCodeOfPlainError(t *testing.T) {
	if CodeOf(errors.New("boom")) != CodeInternal {
		t.Fatalf("plain errors default to internal")
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:   http.StatusBadRequest,
		CodeBadRequest:   http.StatusBadRequest,
		CodeUnauthorized: http.StatusUnauthorized,
		CodeForbidden:    http.StatusForbidden,
		CodeNotFound:     http.StatusNotFound,
		CodeConflict:     http.StatusConflict,
		CodeDuplicate:    http.StatusUnprocessableEntity,
		CodeRateLimited:  http.StatusTooManyRequests,
		CodeInternal:     http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := HTTPStatus(code); got != want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", code, got, want)
		}
	}
}
