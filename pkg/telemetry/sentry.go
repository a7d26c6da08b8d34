package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"

	"github.com/ghuser/stockroom/pkg/config"
)

const filtered = "[Filtered]"

// credentialRoutes carry the operator password in their body.
var credentialRoutes = map[string]bool{"/login": true}

// SetupSentry initializes the Sentry SDK. No-ops if DSN is empty.
// Session cookies and login bodies are stripped from every event.
func SetupSentry(cfg *config.Config) error {
	if cfg.SentryDSN == "" {
		return nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          cfg.ServiceName + "@" + cfg.ServiceVersion,
		ServerName:       cfg.ServiceName,
		TracesSampleRate: 0.2,
		BeforeSend:       scrubEvent,
	}); err != nil {
		return fmt.Errorf("sentry init: %w", err)
	}
	return nil
}

// SentryFlush flushes buffered events before process exit.
func SentryFlush() {
	sentry.Flush(2 * time.Second)
}

// SentryMiddleware returns a net/http middleware that captures panics and errors.
// Repanic: true so the outer Recovery middleware still handles the 500 response.
func SentryMiddleware() func(http.Handler) http.Handler {
	h := sentryhttp.New(sentryhttp.Options{Repanic: true})
	return h.Handle
}

// SentrySetOperator records the authenticated operator on the request hub so
// captured 5xx errors show who triggered them.
func SentrySetOperator(ctx context.Context, operator string) {
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.Scope().SetUser(sentry.User{Username: operator})
	}
}

// SentryTag sets key on the request hub, e.g. item_id or document_id.
func SentryTag(ctx context.Context, key, value string) {
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.Scope().SetTag(key, value)
	}
}

func scrubEvent(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	req := event.Request
	if req == nil {
		return event
	}
	if req.Cookies != "" {
		req.Cookies = filtered
	}
	for name := range req.Headers {
		switch strings.ToLower(name) {
		case "cookie", "authorization":
			req.Headers[name] = filtered
		}
	}
	if req.Data != "" && isCredentialRoute(req.URL) {
		req.Data = filtered
	}
	return event
}

func isCredentialRoute(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return true
	}
	return credentialRoutes[u.Path]
}
