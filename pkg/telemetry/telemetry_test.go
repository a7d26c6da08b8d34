package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/ghuser/stockroom/pkg/config"
)

func baseConfig() *config.Config {
	return &config.Config{
		ServiceName:    "stockroom-test",
		ServiceVersion: "test",
		Environment:    "testing",
		OtelEndpoint:   "", // disabled
	}
}

// Setup registers a Prometheus exporter on the default registry, so it runs
// once for the package.
func TestSetup(t *testing.T) {
	ctx := context.Background()
	shutdown, handler, err := Setup(ctx, baseConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shutdown == nil || handler == nil {
		t.Fatal("expected shutdown and metrics handler")
	}
	t.Cleanup(func() {
		if err := shutdown(context.Background()); err != nil {
			t.Errorf("shutdown error: %v", err)
		}
	})

	t.Run("PropagatesTraceContextAndBaggage", func(t *testing.T) {
		fields := otel.GetTextMapPropagator().Fields()
		for _, want := range []string{"traceparent", "baggage"} {
			if !slices.Contains(fields, want) {
				t.Errorf("propagator fields %v missing %q", fields, want)
			}
		}

		// A traceparent arriving with an event must survive extract and inject.
		const parent = "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"
		in := propagation.MapCarrier{"traceparent": parent}
		extracted := otel.GetTextMapPropagator().Extract(ctx, in)
		out := propagation.MapCarrier{}
		otel.GetTextMapPropagator().Inject(extracted, out)
		if out["traceparent"] != parent {
			t.Fatalf("traceparent not propagated: got %q", out["traceparent"])
		}
	})

	t.Run("MetricsHandlerExposesDocumentCounters", func(t *testing.T) {
		m, err := NewMetrics(otel.GetMeterProvider())
		if err != nil {
			t.Fatalf("NewMetrics: %v", err)
		}
		m.DocumentUploaded(ctx, 42)
		m.DocumentDeleted(ctx, true)
		m.OrphansSwept(ctx, 2)

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		if ct := rr.Header().Get("Content-Type"); !strings.Contains(ct, "text/plain") {
			t.Errorf("expected text/plain content-type, got %q", ct)
		}
		body := rr.Body.String()
		for _, name := range []string{
			"stockroom_documents_uploaded",
			"stockroom_documents_deleted",
			"stockroom_blobs_orphans_swept",
		} {
			if !strings.Contains(body, name) {
				t.Errorf("metrics output missing %s", name)
			}
		}
	})
}
