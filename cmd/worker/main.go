package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"

	"github.com/ghuser/stockroom/pkg/app"
	"github.com/ghuser/stockroom/pkg/blobstore"
	"github.com/ghuser/stockroom/pkg/cache"
	"github.com/ghuser/stockroom/pkg/config"
	"github.com/ghuser/stockroom/pkg/database"
	"github.com/ghuser/stockroom/pkg/events"
	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/pkg/scheduler"
	"github.com/ghuser/stockroom/pkg/telemetry"
	appsvcs "github.com/ghuser/stockroom/services/inventory/application/services"
	"github.com/ghuser/stockroom/services/inventory/domain"
	inventoryEvents "github.com/ghuser/stockroom/services/inventory/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	metrics, err := telemetry.NewMetrics(otel.GetMeterProvider())
	if err != nil {
		log.Error("failed to register metrics", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	blobs, err := blobstore.FromConfig(ctx, cfg)
	if err != nil {
		log.Error("failed to open blob store", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	appConfig := &app.Application{
		Config:   cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
		Blobs:    blobs,
		Metrics:  metrics,
	}
	svcs := appsvcs.New(appConfig)

	if err := registerSubscribers(ctx, appConfig, svcs); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	jobs, err := scheduler.New(log)
	if err != nil {
		log.Error("failed to create scheduler", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	if err := jobs.Every(ctx, "orphan-blob-sweep", cfg.OrphanSweepInterval, sweepOrphans(svcs, log)); err != nil {
		log.Error("failed to schedule orphan sweep", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	jobs.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()
	if err := jobs.Shutdown(); err != nil {
		log.Error("scheduler shutdown", "error", err)
	}

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application, svcs *appsvcs.Services) error {
	itemCache := cache.NewItemCache(a.Redis)
	handlers := map[string]func(context.Context, *message.Message) error{
		inventoryEvents.TopicItemCreated: handleItemChanged(a, svcs, itemCache),
		inventoryEvents.TopicItemUpdated: handleItemChanged(a, svcs, itemCache),
		inventoryEvents.TopicItemDeleted: handleItemDeleted(a, itemCache),
	}

	topics := make([]string, 0, len(handlers))
	for topic, handler := range handlers {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}

		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}(topic)
		topics = append(topics, topic)
	}

	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}

// handleItemChanged returns a handler for item.created and item.updated.
// Handlers must be idempotent; EventBus retries up to 3x on failure.
// The item is reloaded rather than taken from the payload, since events for
// one item may arrive out of order.
func handleItemChanged(a *app.Application, svcs *appsvcs.Services, itemCache *cache.ItemCache) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt inventoryEvents.ItemChangedEvent
		if err := events.DecodeJSON(msg, &evt); err != nil {
			return err
		}

		gen, err := itemCache.Generation(ctx, evt.ItemID)
		if err != nil {
			return err
		}
		item, err := svcs.Items.GetByID(ctx, evt.ItemID)
		if errors.Is(err, domain.ErrItemNotFound) {
			return itemCache.Delete(ctx, evt.ItemID)
		}
		if err != nil {
			return fmt.Errorf("reload item %d: %w", evt.ItemID, err)
		}

		stored, err := itemCache.SetIfCurrent(ctx, appsvcs.ToCachedItem(item), gen)
		if err != nil {
			// Cache warming is best-effort; log but do not fail the handler.
			a.Logger.WarnContext(ctx, "cache warm failed", "item_id", evt.ItemID, "error", err)
			return nil
		}
		if !stored {
			a.Logger.InfoContext(ctx, "cache warm skipped, item changed during reload", "item_id", evt.ItemID)
			return nil
		}
		a.Logger.InfoContext(ctx, "cache warmed", "item_id", evt.ItemID)
		return nil
	}
}

// handleItemDeleted drops the cache entry of a deleted item.
func handleItemDeleted(a *app.Application, itemCache *cache.ItemCache) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt inventoryEvents.ItemDeletedEvent
		if err := events.DecodeJSON(msg, &evt); err != nil {
			return err
		}
		if err := itemCache.Delete(ctx, evt.ItemID); err != nil {
			return err
		}
		a.Logger.InfoContext(ctx, "cache entry dropped", "item_id", evt.ItemID)
		return nil
	}
}

func sweepOrphans(svcs *appsvcs.Services, log logger.Logger) func(context.Context) error {
	return func(ctx context.Context) error {
		n, err := svcs.Sweeper.Sweep(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			log.InfoContext(ctx, "orphan sweep finished", "removed", n)
		}
		return nil
	}
}
