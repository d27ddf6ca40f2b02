package errors

import (
	"context"
	"fmt"
	"testing"
)

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		NewValidationError("firstName", "First name must be at least 2 characters"),
		NewValidationError("email", "Invalid email"),
	}

	want := "First name must be at least 2 characters · Invalid email"
	if errs.Error() != want {
		t.Errorf("Error() = %q, want %q", errs.Error(), want)
	}

	if errs.Fields()["email"] != "Invalid email" {
		t.Errorf("Expected email field message, got %v", errs.Fields())
	}
}

func TestValidationErrors_OrNil(t *testing.T) {
	var errs ValidationErrors
	if errs.OrNil() != nil {
		t.Error("Expected nil for empty validation errors")
	}

	errs = append(errs, NewValidationError("name", "required"))
	if errs.OrNil() == nil {
		t.Error("Expected non-nil error")
	}
}

func TestServiceError_NotFound(t *testing.T) {
	var err error = fmt.Errorf("get order: %w", &ServiceError{
		Service:    "orders",
		Operation:  "get",
		StatusCode: 404,
		Message:    "Order not found with id: 7",
	})

	if !Is(err, ErrNotFound) {
		t.Error("Expected 404 service error to match ErrNotFound")
	}

	var svcErr *ServiceError
	if !As(err, &svcErr) {
		t.Fatal("Expected errors.As to find ServiceError")
	}
	if svcErr.Error() != "Order not found with id: 7" {
		t.Errorf("Expected body text verbatim, got %q", svcErr.Error())
	}
}

func TestServiceError_OtherStatus(t *testing.T) {
	err := &ServiceError{StatusCode: 400, Message: "bad"}
	if Is(err, ErrNotFound) {
		t.Error("400 must not match ErrNotFound")
	}
}

func TestTransportError_Unwrap(t *testing.T) {
	err := &TransportError{Service: "orders", Operation: "list", Err: context.DeadlineExceeded}

	if !Is(err, context.DeadlineExceeded) {
		t.Error("Expected transport error to unwrap to cause")
	}
	if err.Error() != "orders service unreachable: context deadline exceeded" {
		t.Errorf("Unexpected message %q", err.Error())
	}
}
