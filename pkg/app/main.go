package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/stockroom/pkg/auth"
	"github.com/ghuser/stockroom/pkg/blobstore"
	"github.com/ghuser/stockroom/pkg/cache"
	"github.com/ghuser/stockroom/pkg/config"
	"github.com/ghuser/stockroom/pkg/database"
	"github.com/ghuser/stockroom/pkg/events"
	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/pkg/telemetry"
)

// Application holds shared infrastructure dependencies for all services.
// Pass it to InventoryRoutes during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler. Use slog's context
// methods and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "document uploaded", "item_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config       *config.Config
	Db           *database.Database
	Logger       logger.Logger
	EventBus     *events.EventBus   // nil disables item events
	Redis        *cache.RedisClient // nil disables the item cache
	Blobs        blobstore.Store
	Metrics      *telemetry.Metrics
	SessionStore sessions.Store // Redis-backed session store; nil in worker process
	Gate         *auth.Gate     // nil in worker process
}
