package domain

import (
	"errors"
	"sort"
	"strings"
)

// Sentinel errors for the inventory domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrDocumentNotFound indicates the requested document does not exist
	// or its content is not held by the blob store.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrInvalidItem indicates submitted item fields violate domain constraints.
	ErrInvalidItem = errors.New("invalid item")

	// ErrStorageIO indicates a blob store write, read, or delete failed.
	ErrStorageIO = errors.New("storage i/o failure")
)

// FieldErrors maps a field name to a human-readable reason it was rejected.
// It is returned wrapped in ErrInvalidItem so callers can re-prompt per field.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}
