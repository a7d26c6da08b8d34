package telemetry

import (
	"context"
	"testing"

	"github.com/getsentry/sentry-go"
)

func TestScrubEvent(t *testing.T) {
	tests := []struct {
		name     string
		req      *sentry.Request
		wantData string
	}{
		{
			name: "login body filtered",
			req: &sentry.Request{
				URL:     "http://localhost:8080/login",
				Data:    "username=admin&password=1234",
				Cookies: "stockroom_session=abc",
				Headers: map[string]string{"Cookie": "stockroom_session=abc", "User-Agent": "curl"},
			},
			wantData: filtered,
		},
		{
			name: "item body kept",
			req: &sentry.Request{
				URL:     "http://localhost:8080/api/items/7",
				Data:    `{"code":"ab1"}`,
				Cookies: "stockroom_session=abc",
				Headers: map[string]string{"Cookie": "stockroom_session=abc", "User-Agent": "curl"},
			},
			wantData: `{"code":"ab1"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scrubEvent(&sentry.Event{Request: tt.req}, nil)
			if got.Request.Data != tt.wantData {
				t.Errorf("data: got %q, want %q", got.Request.Data, tt.wantData)
			}
			if got.Request.Cookies != filtered {
				t.Errorf("cookies not filtered: %q", got.Request.Cookies)
			}
			if got.Request.Headers["Cookie"] != filtered {
				t.Errorf("cookie header not filtered: %q", got.Request.Headers["Cookie"])
			}
			if got.Request.Headers["User-Agent"] != "curl" {
				t.Errorf("unrelated header changed: %q", got.Request.Headers["User-Agent"])
			}
		})
	}

	if ev := scrubEvent(&sentry.Event{}, nil); ev == nil {
		t.Fatal("event without request dropped")
	}
}

func TestSentryScope_OperatorAndTags(t *testing.T) {
	hub := sentry.NewHub(nil, sentry.NewScope())
	ctx := sentry.SetHubOnContext(context.Background(), hub)

	SentrySetOperator(ctx, "admin")
	SentryTag(ctx, "item_id", "7")

	event := hub.Scope().ApplyToEvent(sentry.NewEvent(), nil, nil)
	if event.User.Username != "admin" {
		t.Errorf("operator not recorded: %+v", event.User)
	}
	if event.Tags["item_id"] != "7" {
		t.Errorf("item tag not recorded: %v", event.Tags)
	}

	// Without a hub on the context both are no-ops.
	SentrySetOperator(context.Background(), "admin")
	SentryTag(context.Background(), "item_id", "7")
}

func TestSetupSentry_NoDSN(t *testing.T) {
	if err := SetupSentry(baseConfig()); err != nil {
		t.Fatalf("expected no-op without DSN, got %v", err)
	}
}
