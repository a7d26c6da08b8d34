package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FilesystemStore keeps blobs as regular files in one flat directory.
type FilesystemStore struct {
	dir string
}

var (
	_ Store      = (*FilesystemStore)(nil)
	_ TempReaper = (*FilesystemStore)(nil)
)

const tempSuffix = ".tmp"

// NewFilesystemStore creates dir when it does not exist yet.
func NewFilesystemStore(dir string) (*FilesystemStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &FilesystemStore{dir: dir}, nil
}

// Dir returns the directory holding the blobs.
func (s *FilesystemStore) Dir() string {
	return s.dir
}

// Put writes r to a temporary file, fsyncs it, and renames it over name so
// readers never observe a partially written blob.
func (s *FilesystemStore) Put(_ context.Context, name string, r io.Reader) (int64, error) {
	if !validName(name) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	fullPath := filepath.Join(s.dir, name)
	tmpPath := filepath.Join(s.dir, "."+name+"."+uuid.NewString()+tempSuffix)

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return 0, fmt.Errorf("create temp blob: %w", err)
	}

	size, err := io.Copy(f, r)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return 0, fmt.Errorf("write blob %s: %w", name, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return 0, fmt.Errorf("sync blob %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return 0, fmt.Errorf("close blob %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, fullPath); err != nil {
		_ = os.Remove(tmpPath)
		return 0, fmt.Errorf("rename blob %s: %w", name, err)
	}
	return size, nil
}

// Open returns ErrNotExist when the file is missing.
func (s *FilesystemStore) Open(_ context.Context, name string) (*Object, error) {
	if !validName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotExist, name)
		}
		return nil, fmt.Errorf("open blob %s: %w", name, err)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat blob %s: %w", name, err)
	}
	return &Object{
		ReadSeekCloser: f,
		Info:           Info{Name: name, Size: st.Size(), ModTime: st.ModTime()},
	}, nil
}

// Remove deletes the file, ignoring a file that is already gone.
func (s *FilesystemStore) Remove(_ context.Context, name string) error {
	if !validName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove blob %s: %w", name, err)
	}
	return nil
}

func (s *FilesystemStore) Exists(_ context.Context, name string) (bool, error) {
	if !validName(name) {
		return false, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	st, err := os.Stat(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat blob %s: %w", name, err)
	}
	return st.Mode().IsRegular(), nil
}

func (s *FilesystemStore) Stat(_ context.Context, name string) (Info, error) {
	if !validName(name) {
		return Info{}, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	st, err := os.Stat(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Info{}, fmt.Errorf("%w: %s", ErrNotExist, name)
		}
		return Info{}, fmt.Errorf("stat blob %s: %w", name, err)
	}
	if !st.Mode().IsRegular() {
		return Info{}, fmt.Errorf("%w: %s", ErrNotExist, name)
	}
	return Info{Name: name, Size: st.Size(), ModTime: st.ModTime()}, nil
}

// List skips directories and dot-files, which include in-flight temp files.
func (s *FilesystemStore) List(_ context.Context) ([]Info, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read upload dir: %w", err)
	}
	out := make([]Info, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		st, err := e.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("stat blob %s: %w", e.Name(), err)
		}
		out = append(out, Info{Name: e.Name(), Size: st.Size(), ModTime: st.ModTime()})
	}
	return out, nil
}

// RemoveStaleTemp deletes temp files of interrupted Puts that were last
// written before cutoff. Younger temp files may belong to a Put in progress.
func (s *FilesystemStore) RemoveStaleTemp(_ context.Context, cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("read upload dir: %w", err)
	}
	removed := 0
	for _, e := range entries {
		name := e.Name()
		if !e.Type().IsRegular() || !strings.HasPrefix(name, ".") || !strings.HasSuffix(name, tempSuffix) {
			continue
		}
		st, err := e.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return removed, fmt.Errorf("stat temp file %s: %w", name, err)
		}
		if !st.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, fmt.Errorf("remove temp file %s: %w", name, err)
		}
		removed++
	}
	return removed, nil
}

func (s *FilesystemStore) Ping(_ context.Context) error {
	st, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("upload dir: %w", err)
	}
	if !st.IsDir() {
		return fmt.Errorf("upload dir %s is not a directory", s.dir)
	}
	return nil
}
