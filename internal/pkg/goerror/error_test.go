package goerror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "server", err: NewServer(errors.New("boom")), want: http.StatusInternalServerError},
		{name: "invalid format", err: NewInvalidFormat(), want: http.StatusBadRequest},
		{name: "invalid input", err: NewInvalidInput(errors.New("bad")), want: http.StatusBadRequest},
		{name: "unauthorized", err: NewBusiness("nope", CodeUnauthorized), want: http.StatusUnauthorized},
		{name: "too many", err: NewBusiness("slow down", CodeTooManyRequest), want: http.StatusTooManyRequests},
		{name: "wrapped", err: Wrap(errors.New("cause"), "invalid", CodeInvalidFormat), want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gerr *Error
			if !errors.As(tt.err, &gerr) {
				t.Fatalf("expected *Error, got %T", tt.err)
			}
			if got := gerr.StatusCode(); got != tt.want {
				t.Fatalf("status code = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	// Arrange
	cause := errors.New("code mismatch")

	// Act
	err := Wrap(cause, "verification code is invalid or expired", CodeUnauthorized)

	// Assert
	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped error to match its cause")
	}

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if gerr.Msg() != "verification code is invalid or expired" {
		t.Fatalf("unexpected message %q", gerr.Msg())
	}
	if gerr.Type() != TypeBusiness {
		t.Fatalf("unexpected type %s", gerr.Type())
	}
}

func TestNewInvalidInputFields(t *testing.T) {
	err := NewInvalidInput(nil, "phone_number", "phone_number is required", "code")

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if gerr.Code() != CodeInvalidFormat {
		t.Fatalf("odd key/value pairs should fall back to invalid format, got %s", gerr.Code())
	}

	err = NewInvalidInput(nil, "phone_number", "phone_number is required")
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if gerr.Fields()["phone_number"] != "phone_number is required" {
		t.Fatalf("unexpected fields %v", gerr.Fields())
	}
}

func TestAs(t *testing.T) {
	// Arrange
	inner := NewBusiness("Authentication required", CodeUnauthorized)
	wrapped := fmt.Errorf("session: %w", inner)

	// Act
	gerr, ok := As(wrapped)

	// Assert
	if !ok {
		t.Fatal("expected *Error in chain")
	}
	if gerr.Code() != CodeUnauthorized || gerr.Code().String() != "ERROR_CODE_UNAUTHORIZED" {
		t.Fatalf("unexpected code %s", gerr.Code())
	}
	if _, ok := As(errors.New("plain")); ok {
		t.Fatal("plain error should not match")
	}
}

func TestUnknownCodeIsInternal(t *testing.T) {
	err := &Error{code: Code(99)}

	if err.StatusCode() != http.StatusInternalServerError {
		t.Fatalf("status = %d", err.StatusCode())
	}
	if err.Code().String() != "ERROR_CODE_INTERNAL" {
		t.Fatalf("name = %s", err.Code())
	}
	if err.Error() != "ERROR_TYPE_SERVER" {
		t.Fatalf("error = %s", err.Error())
	}
}
