package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/events"
	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/services/inventory/domain"
	domainevents "github.com/ghuser/stockroom/services/inventory/domain/events"
	"github.com/ghuser/stockroom/services/inventory/domain/models"
	"github.com/ghuser/stockroom/services/inventory/domain/repositories"
)

// ItemRepository implements repositories.ItemRepository over a Store.
type ItemRepository struct {
	store *Store
	bus   events.Publisher
	log   logger.Logger
}

var _ repositories.ItemRepository = (*ItemRepository)(nil)

// NewItemRepository returns a repository over store. bus may be nil.
func NewItemRepository(store *Store, bus events.Publisher, log logger.Logger) *ItemRepository {
	return &ItemRepository{store: store, bus: bus, log: log}
}

func (r *ItemRepository) Save(ctx context.Context, item *models.Item) error {
	r.store.mu.Lock()
	r.store.nextItem++
	item.ID = r.store.nextItem
	r.store.items[item.ID] = *item
	r.store.mu.Unlock()

	r.publish(ctx, domainevents.TopicItemCreated, changedEvent(item))
	return nil
}

func (r *ItemRepository) GetByID(_ context.Context, id int64) (*models.Item, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return &item, nil
}

func (r *ItemRepository) Find(_ context.Context, filter string) ([]*models.Item, error) {
	needle := strings.ToUpper(filter)

	r.store.mu.RLock()
	out := make([]*models.Item, 0, len(r.store.items))
	for _, item := range r.store.items {
		if needle != "" && !matches(item, needle) {
			continue
		}
		item := item
		out = append(out, &item)
	}
	r.store.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// matches compares against the stored uppercase fields.
func matches(item models.Item, needle string) bool {
	return strings.Contains(item.Code.String(), needle) ||
		strings.Contains(item.Description.String(), needle) ||
		strings.Contains(item.Location.String(), needle)
}

func (r *ItemRepository) Update(ctx context.Context, item *models.Item) error {
	r.store.mu.Lock()
	if _, ok := r.store.items[item.ID]; !ok {
		r.store.mu.Unlock()
		return domain.ErrItemNotFound
	}
	r.store.items[item.ID] = *item
	r.store.mu.Unlock()

	r.publish(ctx, domainevents.TopicItemUpdated, changedEvent(item))
	return nil
}

// Delete removes the item and every document row that belongs to it.
func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	r.store.mu.Lock()
	if _, ok := r.store.items[id]; !ok {
		r.store.mu.Unlock()
		return domain.ErrItemNotFound
	}
	delete(r.store.items, id)
	for docID, doc := range r.store.docs {
		if doc.ItemID == id {
			delete(r.store.docs, docID)
		}
	}
	r.store.mu.Unlock()

	r.publish(ctx, domainevents.TopicItemDeleted, domainevents.ItemDeletedEvent{
		EventID:    uuid.New(),
		Version:    1,
		ItemID:     id,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

func (r *ItemRepository) Exists(_ context.Context, id int64) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	_, ok := r.store.items[id]
	return ok, nil
}

func (r *ItemRepository) publish(ctx context.Context, topic string, event any) {
	if r.bus == nil {
		return
	}
	if err := r.bus.PublishJSON(ctx, topic, event); err != nil {
		r.log.WarnContext(ctx, "item event not published", "topic", topic, "error", err)
	}
}

func changedEvent(item *models.Item) domainevents.ItemChangedEvent {
	return domainevents.ItemChangedEvent{
		EventID:     uuid.New(),
		Version:     1,
		ItemID:      item.ID,
		Code:        item.Code.String(),
		Description: item.Description.String(),
		Quantity:    item.Quantity.Int64(),
		Location:    item.Location.String(),
		OccurredAt:  time.Now().UTC(),
	}
}
