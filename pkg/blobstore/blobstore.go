// Package blobstore holds uploaded document content keyed by a flat,
// already sanitized name. Writes replace the whole blob; there is no append
// and no versioning, so the last write for a name wins.
package blobstore

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	// ErrNotExist is returned by Open when no blob has the given name.
	ErrNotExist = errors.New("blob does not exist")

	// ErrInvalidName is returned for names that are empty or not a plain basename.
	ErrInvalidName = errors.New("invalid blob name")
)

// Store is implemented by every blob backend.
type Store interface {
	// Put replaces the blob called name with the content of r and returns the
	// number of bytes written.
	Put(ctx context.Context, name string, r io.Reader) (int64, error)

	// Open returns the blob for reading. The caller must Close it.
	Open(ctx context.Context, name string) (*Object, error)

	// Remove deletes a blob. Removing a missing blob is not an error.
	Remove(ctx context.Context, name string) error

	// Exists reports whether a blob called name is present.
	Exists(ctx context.Context, name string) (bool, error)

	// Stat describes the blob called name as it is now, or returns ErrNotExist.
	Stat(ctx context.Context, name string) (Info, error)

	// List describes every blob currently held.
	List(ctx context.Context) ([]Info, error)

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
}

// TempReaper is implemented by backends that stage writes in temporary files
// a crash can leave behind.
type TempReaper interface {
	// RemoveStaleTemp deletes staging files last modified before cutoff and
	// returns how many it removed.
	RemoveStaleTemp(ctx context.Context, cutoff time.Time) (int, error)
}

// Info describes a stored blob.
type Info struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// Object is an open blob. It supports seeking so it can be served with
// http.ServeContent.
type Object struct {
	io.ReadSeekCloser
	Info
}
