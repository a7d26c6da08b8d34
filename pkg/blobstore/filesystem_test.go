package blobstore

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *FilesystemStore {
	t.Helper()
	s, err := NewFilesystemStore(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatalf("NewFilesystemStore: %v", err)
	}
	return s
}

func readAll(t *testing.T, s Store, name string) string {
	t.Helper()
	obj, err := s.Open(context.Background(), name)
	if err != nil {
		t.Fatalf("Open(%q): %v", name, err)
	}
	defer obj.Close() //nolint:errcheck
	data, err := io.ReadAll(obj)
	if err != nil {
		t.Fatalf("read %q: %v", name, err)
	}
	return string(data)
}

func TestNewFilesystemStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	s, err := NewFilesystemStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Dir() != dir {
		t.Fatalf("expected dir %s, got %s", dir, s.Dir())
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

func TestFilesystemStore_PutOpen(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n, err := s.Put(ctx, "report.pdf", strings.NewReader("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if n != 8 {
		t.Fatalf("expected 8 bytes written, got %d", n)
	}
	if got := readAll(t, s, "report.pdf"); got != "%PDF-1.4" {
		t.Fatalf("unexpected content %q", got)
	}

	obj, err := s.Open(ctx, "report.pdf")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer obj.Close() //nolint:errcheck
	if obj.Name != "report.pdf" || obj.Size != 8 || obj.ModTime.IsZero() {
		t.Fatalf("unexpected info: %+v", obj.Info)
	}
}

func TestFilesystemStore_PutOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Put(ctx, "scan.png", strings.NewReader("first version")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := s.Put(ctx, "scan.png", strings.NewReader("second")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if got := readAll(t, s, "scan.png"); got != "second" {
		t.Fatalf("expected last write to win, got %q", got)
	}
}

func TestFilesystemStore_PutLeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Put(context.Background(), "a.txt", strings.NewReader("x")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	entries, err := os.ReadDir(s.Dir())
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "a.txt" {
		t.Fatalf("expected only a.txt in dir, got %v", entries)
	}
}

func TestFilesystemStore_OpenMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Open(context.Background(), "missing.pdf")
	if !errors.Is(err, ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestFilesystemStore_Remove(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Put(ctx, "invoice.pdf", strings.NewReader("x")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Remove(ctx, "invoice.pdf"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	ok, err := s.Exists(ctx, "invoice.pdf")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Fatal("blob still exists after Remove")
	}

	t.Run("missing blob is not an error", func(t *testing.T) {
		if err := s.Remove(ctx, "invoice.pdf"); err != nil {
			t.Fatalf("expected nil for missing blob, got %v", err)
		}
	})
}

func TestFilesystemStore_RejectsUnsafeNames(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"", ".", "..", "../escape", `a\b`, "dir/file"} {
		if _, err := s.Put(ctx, name, strings.NewReader("x")); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Put(%q): expected ErrInvalidName, got %v", name, err)
		}
		if _, err := s.Open(ctx, name); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Open(%q): expected ErrInvalidName, got %v", name, err)
		}
		if err := s.Remove(ctx, name); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Remove(%q): expected ErrInvalidName, got %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(s.Dir()), "escape")); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("write escaped the upload directory")
	}
}

func TestFilesystemStore_List(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"a.pdf", "b.png"} {
		if _, err := s.Put(ctx, name, strings.NewReader(name)); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(s.Dir(), ".a.pdf.inflight.tmp"), []byte("x"), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	if err := os.Mkdir(filepath.Join(s.Dir(), "subdir"), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	infos, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	got := map[string]int64{}
	for _, info := range infos {
		got[info.Name] = info.Size
	}
	if len(got) != 2 || got["a.pdf"] != 5 || got["b.png"] != 5 {
		t.Fatalf("unexpected listing: %v", got)
	}
}

func TestFilesystemStore_Stat(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Put(ctx, "a.pdf", strings.NewReader("hello")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	info, err := s.Stat(ctx, "a.pdf")
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Name != "a.pdf" || info.Size != 5 || info.ModTime.IsZero() {
		t.Fatalf("unexpected info: %+v", info)
	}
	if _, err := s.Stat(ctx, "missing.pdf"); !errors.Is(err, ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
	if _, err := s.Stat(ctx, "../a.pdf"); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}

func TestFilesystemStore_RemoveStaleTemp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	write := func(name string, mtime time.Time) {
		t.Helper()
		path := filepath.Join(s.Dir(), name)
		if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		if err := os.Chtimes(path, mtime, mtime); err != nil {
			t.Fatalf("chtimes %s: %v", name, err)
		}
	}
	write(".old.pdf.crashed.tmp", now.Add(-3*time.Hour))
	write(".new.pdf.inflight.tmp", now)
	write("old.pdf", now.Add(-3*time.Hour))
	write(".hidden", now.Add(-3*time.Hour))

	n, err := s.RemoveStaleTemp(ctx, now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("RemoveStaleTemp: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 temp file removed, got %d", n)
	}
	for name, want := range map[string]bool{
		".old.pdf.crashed.tmp":  false,
		".new.pdf.inflight.tmp": true,
		"old.pdf":               true,
		".hidden":               true,
	} {
		_, err := os.Stat(filepath.Join(s.Dir(), name))
		if got := err == nil; got != want {
			t.Errorf("%s: present=%v, want %v", name, got, want)
		}
	}
}
