package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors_Messages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrItemNotFound, "item not found"},
		{ErrDocumentNotFound, "document not found"},
		{ErrInvalidItem, "invalid item"},
		{ErrStorageIO, "storage i/o failure"},
	}
	for _, tt := range tests {
		if tt.err.Error() != tt.want {
			t.Errorf("unexpected message: got %q, want %q", tt.err.Error(), tt.want)
		}
	}
}

func TestSentinelErrors_WrappedIdentity(t *testing.T) {
	wrapped := fmt.Errorf("get item: %w", ErrItemNotFound)
	if !errors.Is(wrapped, ErrItemNotFound) {
		t.Fatal("errors.Is must match wrapped ErrItemNotFound")
	}

	fields := FieldErrors{"quantity": "must be a non-negative integer"}
	wrapped2 := fmt.Errorf("%w: %w", ErrInvalidItem, fields)
	if !errors.Is(wrapped2, ErrInvalidItem) {
		t.Fatal("errors.Is must match double-wrapped ErrInvalidItem")
	}
	var got FieldErrors
	if !errors.As(wrapped2, &got) {
		t.Fatal("errors.As must recover FieldErrors")
	}
	if got["quantity"] == "" {
		t.Fatalf("expected quantity reason, got %v", got)
	}
}

func TestFieldErrors_ErrorIsSorted(t *testing.T) {
	fe := FieldErrors{"quantity": "bad", "code": "required"}
	if got, want := fe.Error(), "code: required; quantity: bad"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
