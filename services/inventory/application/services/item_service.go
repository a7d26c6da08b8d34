package services

import (
	"context"
	"fmt"

	pkgcache "github.com/ghuser/stockroom/pkg/cache"
	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/services/inventory/domain"
	"github.com/ghuser/stockroom/services/inventory/domain/models"
	"github.com/ghuser/stockroom/services/inventory/domain/repositories"
	domainsvcs "github.com/ghuser/stockroom/services/inventory/domain/services"
)

// ItemCache is the read-through cache consulted by ItemService.
// *pkgcache.ItemCache implements it. Delete must advance the generation
// returned by Generation, and SetIfCurrent must refuse a stale generation.
type ItemCache interface {
	Get(ctx context.Context, itemID int64) (*pkgcache.CachedItem, error)
	Generation(ctx context.Context, itemID int64) (int64, error)
	SetIfCurrent(ctx context.Context, item *pkgcache.CachedItem, gen int64) (bool, error)
	Delete(ctx context.Context, itemID int64) error
}

// ItemWithDocuments is an item together with every document attached to it.
type ItemWithDocuments struct {
	Item      *models.Item
	Documents []*models.Document
}

// ItemService orchestrates item CRUD. Event publishing is handled by the
// repository layer. Reads are served from Redis when a cache is configured.
type ItemService struct {
	repo        repositories.ItemRepository
	attachments *AttachmentService
	cache       ItemCache
	log         logger.Logger
}

// NewItemService wires an ItemService. itemCache may be nil.
func NewItemService(repo repositories.ItemRepository, attachments *AttachmentService, itemCache ItemCache, log logger.Logger) *ItemService {
	return &ItemService{repo: repo, attachments: attachments, cache: itemCache, log: log}
}

// Create normalizes and validates in, then persists the new Item.
func (s *ItemService) Create(ctx context.Context, in models.ItemInput) (*models.Item, error) {
	item, err := buildItem(in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}
	return item, nil
}

// Get retrieves an Item using a read-through cache:
//  1. Check Redis first.
//  2. On a miss, note the entry generation, then query the repository.
//  3. Warm the cache in the background, unless an Update or Delete
//     advanced the generation since step 2.
func (s *ItemService) Get(ctx context.Context, id int64) (*models.Item, error) {
	fill := false
	var gen int64
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			return fromCached(cached), nil
		}
		if !pkgcache.IsMiss(err) {
			s.log.WarnContext(ctx, "item cache read failed", "item_id", id, "error", err)
		}
		if gen, err = s.cache.Generation(ctx, id); err != nil {
			s.log.WarnContext(ctx, "item cache generation read failed", "item_id", id, "error", err)
		} else {
			fill = true
		}
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	if fill {
		entry := ToCachedItem(item)
		go func() {
			stored, err := s.cache.SetIfCurrent(context.Background(), entry, gen)
			if err != nil {
				s.log.Warn("item cache warm failed", "item_id", entry.ID, "error", err)
				return
			}
			if !stored {
				s.log.Debug("item cache warm skipped, entry invalidated", "item_id", entry.ID)
			}
		}()
	}
	return item, nil
}

// GetWithDocuments returns the item and its documents in upload order.
func (s *ItemService) GetWithDocuments(ctx context.Context, id int64) (*ItemWithDocuments, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	docs, err := s.attachments.List(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ItemWithDocuments{Item: item, Documents: docs}, nil
}

// List returns all items, or those whose code, description, or location
// contains filter ignoring case. Results are in id order.
func (s *ItemService) List(ctx context.Context, filter string) ([]*models.Item, error) {
	items, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// Update replaces every field of item id. The stored item is left untouched
// unless all fields are present and valid.
func (s *ItemService) Update(ctx context.Context, id int64, in models.ItemInput) (*models.Item, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	next, err := buildItem(in)
	if err != nil {
		return nil, err
	}
	current.Replace(next)

	if err := s.repo.Update(ctx, current); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	s.invalidate(ctx, id)
	return current, nil
}

// Delete removes every document of item id, blobs included, and then the
// item itself. Returns ErrItemNotFound if no such item exists.
func (s *ItemService) Delete(ctx context.Context, id int64) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check item: %w", err)
	}
	if !exists {
		return domain.ErrItemNotFound
	}

	if err := s.attachments.DeleteAllForItem(ctx, id); err != nil {
		return fmt.Errorf("delete item documents: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *ItemService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		s.log.WarnContext(ctx, "item cache invalidate failed", "item_id", id, "error", err)
	}
}

func buildItem(in models.ItemInput) (*models.Item, error) {
	item, err := models.NewItem(in)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidItem, err)
	}
	if err := domainsvcs.ValidateItemForWrite(item); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidItem, err)
	}
	return item, nil
}

// ToCachedItem converts an item to its cache entry.
func ToCachedItem(item *models.Item) *pkgcache.CachedItem {
	return &pkgcache.CachedItem{
		ID:          item.ID,
		Code:        item.Code.String(),
		Description: item.Description.String(),
		Quantity:    item.Quantity.Int64(),
		Location:    item.Location.String(),
	}
}

func fromCached(c *pkgcache.CachedItem) *models.Item {
	return &models.Item{
		ID:          c.ID,
		Code:        models.Code(c.Code),
		Description: models.Description(c.Description),
		Quantity:    models.Quantity(c.Quantity),
		Location:    models.Location(c.Location),
	}
}
