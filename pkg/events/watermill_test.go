package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/stockroom/pkg/logger"
)

func setupTracer() *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp
}

func nopLogger() logger.Logger {
	return logger.Discard()
}

// TestRetryWithBackoff_SuccessOnFirstAttempt verifies no retry occurs on success.
func TestRetryWithBackoff_SuccessOnFirstAttempt(t *testing.T) {
	calls := 0
	handler := func(_ context.Context, _ *message.Message) error {
		calls++
		return nil
	}
	msg := message.NewMessage("id", nil)
	err := retryWithBackoff(context.Background(), msg, handler, maxRetries, time.Millisecond, nopLogger())
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

// TestRetryWithBackoff_SuccessAfterRetries verifies retry continues until success.
func TestRetryWithBackoff_SuccessAfterRetries(t *testing.T) {
	calls := 0
	handler := func(_ context.Context, _ *message.Message) error {
		calls++
		if calls < 3 {
			return errors.New("transient error")
		}
		return nil
	}
	msg := message.NewMessage("id", nil)
	err := retryWithBackoff(context.Background(), msg, handler, maxRetries, time.Millisecond, nopLogger())
	if err != nil {
		t.Fatalf("expected nil after eventual success, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

// TestRetryWithBackoff_ExhaustsRetries verifies an error is returned after all retries fail.
func TestRetryWithBackoff_ExhaustsRetries(t *testing.T) {
	calls := 0
	handler := func(_ context.Context, _ *message.Message) error {
		calls++
		return errors.New("permanent error")
	}
	msg := message.NewMessage("id", nil)
	err := retryWithBackoff(context.Background(), msg, handler, maxRetries, time.Millisecond, nopLogger())
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	if calls != maxRetries {
		t.Errorf("expected %d calls, got %d", maxRetries, calls)
	}
}

// TestRetryWithBackoff_ContextCancelled verifies retry stops when context is canceled.
func TestRetryWithBackoff_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	calls := 0
	handler := func(_ context.Context, _ *message.Message) error {
		calls++
		return errors.New("error")
	}
	msg := message.NewMessage("id", nil)
	err := retryWithBackoff(ctx, msg, handler, maxRetries, time.Second, nopLogger())
	if err == nil {
		t.Fatal("expected error from canceled context")
	}
	// Should have called handler once then exited on ctx.Done
	if calls != 1 {
		t.Errorf("expected 1 call before context cancel, got %d", calls)
	}
}

// TestOTelPropagation_InjectExtract verifies that trace context injected via
// the same propagation path used by Publish/Subscribe round-trips correctly.
func TestOTelPropagation_InjectExtract(t *testing.T) {
	tp := setupTracer()
	defer tp.Shutdown(context.Background()) //nolint:errcheck

	ctx, span := otel.Tracer("test").Start(context.Background(), "publish-span")
	defer span.End()
	wantTraceID := span.SpanContext().TraceID()

	// Simulate Publish: inject trace context into message metadata.
	msg := message.NewMessage("id", nil)
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for k, v := range carrier {
		msg.Metadata.Set(k, v)
	}

	// Simulate Subscribe: extract trace context from message metadata.
	extractCarrier := propagation.MapCarrier{}
	for k, v := range msg.Metadata {
		extractCarrier[k] = v
	}
	msgCtx := otel.GetTextMapPropagator().Extract(context.Background(), extractCarrier)

	gotSpan := trace.SpanFromContext(msgCtx)
	if !gotSpan.SpanContext().IsValid() {
		t.Fatal("extracted span context is not valid")
	}
	if gotSpan.SpanContext().TraceID() != wantTraceID {
		t.Errorf("trace ID mismatch: want %s, got %s", wantTraceID, gotSpan.SpanContext().TraceID())
	}
}

type stockChanged struct {
	ItemID   int64 `json:"item_id"`
	Quantity int64 `json:"quantity"`
}

// TestInMemoryEventBus_PublishJSONSubscribe exercises the full dispatch path
// over the GoChannel transport: publish, trace restore, decode, Ack.
func TestInMemoryEventBus_PublishJSONSubscribe(t *testing.T) {
	tp := setupTracer()
	defer tp.Shutdown(context.Background()) //nolint:errcheck

	bus := NewInMemoryEventBus(nopLogger())
	defer bus.Close() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	type received struct {
		payload stockChanged
		traceID trace.TraceID
	}
	got := make(chan received, 1)
	errCh, err := bus.Subscribe(ctx, "inventory.test", func(ctx context.Context, msg *message.Message) error {
		var p stockChanged
		if err := DecodeJSON(msg, &p); err != nil {
			return err
		}
		got <- received{payload: p, traceID: trace.SpanFromContext(ctx).SpanContext().TraceID()}
		return nil
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	go func() {
		for range errCh {
		}
	}()

	pubCtx, span := otel.Tracer("test").Start(ctx, "publish")
	if err := bus.PublishJSON(pubCtx, "inventory.test", stockChanged{ItemID: 7, Quantity: 5}); err != nil {
		t.Fatalf("PublishJSON: %v", err)
	}
	span.End()

	select {
	case r := <-got:
		if r.payload.ItemID != 7 || r.payload.Quantity != 5 {
			t.Errorf("unexpected payload: %+v", r.payload)
		}
		if r.traceID != span.SpanContext().TraceID() {
			t.Errorf("trace not propagated: want %s, got %s", span.SpanContext().TraceID(), r.traceID)
		}
	case <-ctx.Done():
		t.Fatal("message not delivered")
	}
}

func TestInMemoryEventBus_PingWithoutDatabase(t *testing.T) {
	bus := NewInMemoryEventBus(nopLogger())
	defer bus.Close() //nolint:errcheck
	if err := bus.Ping(context.Background()); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestDecodeJSON_InvalidPayload(t *testing.T) {
	var p stockChanged
	if err := DecodeJSON(message.NewMessage("id", []byte("{not json")), &p); err == nil {
		t.Fatal("expected decode error")
	}
}
