package services

import (
	"github.com/ghuser/stockroom/pkg/app"
	"github.com/ghuser/stockroom/pkg/cache"
	"github.com/ghuser/stockroom/pkg/events"
	"github.com/ghuser/stockroom/services/inventory/domain/repositories"
	"github.com/ghuser/stockroom/services/inventory/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Item       *ItemService
	Attachment *AttachmentService
	Sweeper    *OrphanSweeper
	Items      repositories.ItemRepository // raw reads for the worker's cache warmer
}

// New wires all inventory application services with infrastructure from the
// Application container.
func New(a *app.Application) *Services {
	var bus events.Publisher
	if a.EventBus != nil {
		bus = a.EventBus
	}
	var itemCache ItemCache
	if a.Redis != nil {
		itemCache = cache.NewItemCache(a.Redis)
	}

	items := postgres.NewItemRepository(a.Db, bus, a.Logger)
	docs := postgres.NewDocumentRepository(a.Db)
	return Wire(items, docs, a, itemCache)
}

// Wire builds the container over explicit repositories. Tests use it with the
// in-memory adapter.
func Wire(items repositories.ItemRepository, docs repositories.DocumentRepository, a *app.Application, itemCache ItemCache) *Services {
	attachments := NewAttachmentService(docs, items, a.Blobs, a.Metrics, a.Logger)
	return &Services{
		Item:       NewItemService(items, attachments, itemCache, a.Logger),
		Attachment: attachments,
		Sweeper:    NewOrphanSweeper(docs, a.Blobs, a.Config.OrphanGracePeriod, a.Metrics, a.Logger),
		Items:      items,
	}
}
