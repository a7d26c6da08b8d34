package blobstore

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
)

// Runs against a live MinIO when MINIO_TEST_ENDPOINT is set, e.g. localhost:9000.
func newMinioTestStore(t *testing.T) *MinioStore {
	t.Helper()
	endpoint := os.Getenv("MINIO_TEST_ENDPOINT")
	if endpoint == "" {
		t.Skip("MINIO_TEST_ENDPOINT not set")
	}
	user := os.Getenv("MINIO_ROOT_USER")
	if user == "" {
		user = "minioadmin"
	}
	pass := os.Getenv("MINIO_ROOT_PASSWORD")
	if pass == "" {
		pass = "minioadmin"
	}

	s, err := NewMinioStore(context.Background(), MinioConfig{
		Endpoint:  endpoint,
		AccessKey: user,
		SecretKey: pass,
		Bucket:    "stockroom-test-" + uuid.NewString()[:8],
	})
	if err != nil {
		t.Fatalf("NewMinioStore: %v", err)
	}
	return s
}

func TestMinioStore_RoundTrip(t *testing.T) {
	s := newMinioTestStore(t)
	ctx := context.Background()

	if err := s.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if _, err := s.Put(ctx, "manual.pdf", strings.NewReader("%PDF")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	obj, err := s.Open(ctx, "manual.pdf")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, err := io.ReadAll(obj)
	_ = obj.Close()
	if err != nil || string(data) != "%PDF" {
		t.Fatalf("read: %q, %v", data, err)
	}

	infos, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 1 || infos[0].Name != "manual.pdf" {
		t.Fatalf("unexpected listing: %+v", infos)
	}

	if info, err := s.Stat(ctx, "manual.pdf"); err != nil || info.Size != infos[0].Size {
		t.Fatalf("Stat: %+v, %v", info, err)
	}

	if err := s.Remove(ctx, "manual.pdf"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := s.Stat(ctx, "manual.pdf"); !errors.Is(err, ErrNotExist) {
		t.Fatalf("Stat after remove: expected ErrNotExist, got %v", err)
	}
	if err := s.Remove(ctx, "manual.pdf"); err != nil {
		t.Fatalf("second Remove: %v", err)
	}
	if ok, err := s.Exists(ctx, "manual.pdf"); err != nil || ok {
		t.Fatalf("Exists after remove: %v, %v", ok, err)
	}
	if _, err := s.Open(ctx, "manual.pdf"); !errors.Is(err, ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}
