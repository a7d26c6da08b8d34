package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/ghuser/stockroom"

// Metrics holds the attachment lifecycle counters. A nil *Metrics records
// nothing, so callers never need to check.
type Metrics struct {
	uploads       metric.Int64Counter
	uploadedBytes metric.Int64Counter
	deletes       metric.Int64Counter
	orphansSwept  metric.Int64Counter
}

// NewMetrics registers the counters on mp. Pass otel.GetMeterProvider() after Setup.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	meter := mp.Meter(meterName)

	uploads, err := meter.Int64Counter("stockroom.documents.uploaded",
		metric.WithDescription("Documents attached to items"))
	if err != nil {
		return nil, fmt.Errorf("uploads counter: %w", err)
	}
	uploadedBytes, err := meter.Int64Counter("stockroom.documents.uploaded_bytes",
		metric.WithDescription("Bytes written to the blob store by uploads"),
		metric.WithUnit("By"))
	if err != nil {
		return nil, fmt.Errorf("uploaded bytes counter: %w", err)
	}
	deletes, err := meter.Int64Counter("stockroom.documents.deleted",
		metric.WithDescription("Document rows removed, labelled by whether the blob was removed too"))
	if err != nil {
		return nil, fmt.Errorf("deletes counter: %w", err)
	}
	orphans, err := meter.Int64Counter("stockroom.blobs.orphans_swept",
		metric.WithDescription("Unreferenced blobs removed by the worker sweep"))
	if err != nil {
		return nil, fmt.Errorf("orphans counter: %w", err)
	}

	return &Metrics{
		uploads:       uploads,
		uploadedBytes: uploadedBytes,
		deletes:       deletes,
		orphansSwept:  orphans,
	}, nil
}

func (m *Metrics) DocumentUploaded(ctx context.Context, size int64) {
	if m == nil {
		return
	}
	m.uploads.Add(ctx, 1)
	m.uploadedBytes.Add(ctx, size)
}

// DocumentDeleted records one row removal. blobRemoved is false when the
// blob was kept because another document still referenced it.
func (m *Metrics) DocumentDeleted(ctx context.Context, blobRemoved bool) {
	if m == nil {
		return
	}
	m.deletes.Add(ctx, 1, metric.WithAttributes(attribute.Bool("blob_removed", blobRemoved)))
}

func (m *Metrics) OrphansSwept(ctx context.Context, n int) {
	if m == nil || n == 0 {
		return
	}
	m.orphansSwept.Add(ctx, int64(n))
}
