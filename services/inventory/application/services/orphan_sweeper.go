package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ghuser/stockroom/pkg/blobstore"
	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/pkg/telemetry"
	"github.com/ghuser/stockroom/services/inventory/domain/repositories"
)

// OrphanSweeper removes blobs no document references, along with staging
// files of interrupted writes. Anything younger than the grace period is
// skipped so an upload whose row is not inserted yet is never collected.
type OrphanSweeper struct {
	docs    repositories.DocumentRepository
	blobs   blobstore.Store
	grace   time.Duration
	metrics *telemetry.Metrics
	log     logger.Logger
	now     func() time.Time
}

func NewOrphanSweeper(docs repositories.DocumentRepository, blobs blobstore.Store, grace time.Duration, metrics *telemetry.Metrics, log logger.Logger) *OrphanSweeper {
	return &OrphanSweeper{docs: docs, blobs: blobs, grace: grace, metrics: metrics, log: log, now: time.Now}
}

// Sweep runs one pass and returns how many blobs and stale staging files it
// removed. A failure on one blob is logged and the pass continues.
func (s *OrphanSweeper) Sweep(ctx context.Context) (int, error) {
	infos, err := s.blobs.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list blobs: %w", err)
	}

	cutoff := s.now().Add(-s.grace)
	removed := 0
	for _, info := range infos {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if info.ModTime.After(cutoff) {
			continue
		}

		refs, err := s.docs.CountByStoredName(ctx, info.Name)
		if err != nil {
			s.log.WarnContext(ctx, "orphan check failed", "stored_name", info.Name, "error", err)
			continue
		}
		if refs > 0 {
			continue
		}

		// The listing may be stale: an upload can have replaced the blob
		// before inserting its row.
		current, err := s.blobs.Stat(ctx, info.Name)
		if errors.Is(err, blobstore.ErrNotExist) {
			continue
		}
		if err != nil {
			s.log.WarnContext(ctx, "orphan stat failed", "stored_name", info.Name, "error", err)
			continue
		}
		if current.ModTime.After(cutoff) {
			continue
		}

		if err := s.blobs.Remove(ctx, info.Name); err != nil {
			s.log.WarnContext(ctx, "orphan remove failed", "stored_name", info.Name, "error", err)
			continue
		}
		removed++
		s.log.InfoContext(ctx, "orphan blob removed", "stored_name", info.Name, "size", current.Size)
	}

	if reaper, ok := s.blobs.(blobstore.TempReaper); ok {
		n, err := reaper.RemoveStaleTemp(ctx, cutoff)
		if err != nil {
			s.log.WarnContext(ctx, "stale temp file cleanup failed", "error", err)
		}
		if n > 0 {
			s.log.InfoContext(ctx, "stale temp files removed", "count", n)
		}
		removed += n
	}

	s.metrics.OrphansSwept(ctx, removed)
	return removed, nil
}
