package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/database"
	"github.com/ghuser/stockroom/pkg/events"
	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/services/inventory/domain"
	domainevents "github.com/ghuser/stockroom/services/inventory/domain/events"
	"github.com/ghuser/stockroom/services/inventory/domain/models"
	"github.com/ghuser/stockroom/services/inventory/domain/repositories"
	"github.com/ghuser/stockroom/services/inventory/infrastructure/persistence/postgres/db"
)

const eventVersion = 1

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
type ItemRepository struct {
	db  *database.Database
	bus events.Publisher
	log logger.Logger
}

var _ repositories.ItemRepository = (*ItemRepository)(nil)

// NewItemRepository returns an ItemRepository backed by the given pool. When
// bus is non-nil every successful write is announced on it afterwards.
func NewItemRepository(database *database.Database, bus events.Publisher, log logger.Logger) *ItemRepository {
	return &ItemRepository{db: database, bus: bus, log: log}
}

// Save inserts item and sets its generated ID.
func (r *ItemRepository) Save(ctx context.Context, item *models.Item) error {
	id, err := db.New(r.db.DB()).InsertItem(ctx, db.InsertItemParams{
		Code:        item.Code.String(),
		Description: item.Description.String(),
		Quantity:    item.Quantity.Int64(),
		Location:    item.Location.String(),
	})
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	item.ID = id

	r.publish(ctx, domainevents.TopicItemCreated, changedEvent(item))
	return nil
}

// GetByID retrieves an Item by ID. Returns ErrItemNotFound if not found.
func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	row, err := db.New(r.db.DB()).GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return rowToItem(row), nil
}

// Find lists items in id order, filtered by a case-insensitive substring
// match on code, description, or location when filter is non-empty.
func (r *ItemRepository) Find(ctx context.Context, filter string) ([]*models.Item, error) {
	q := db.New(r.db.DB())

	var (
		rows []db.Item
		err  error
	)
	if filter == "" {
		rows, err = q.ListItems(ctx)
	} else {
		rows, err = q.SearchItems(ctx, "%"+escapeLike(filter)+"%")
	}
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}

	items := make([]*models.Item, len(rows))
	for i, row := range rows {
		items[i] = rowToItem(row)
	}
	return items, nil
}

// Update overwrites every field of an existing item.
func (r *ItemRepository) Update(ctx context.Context, item *models.Item) error {
	n, err := db.New(r.db.DB()).UpdateItem(ctx, db.UpdateItemParams{
		ID:          item.ID,
		Code:        item.Code.String(),
		Description: item.Description.String(),
		Quantity:    item.Quantity.Int64(),
		Location:    item.Location.String(),
	})
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if n == 0 {
		return domain.ErrItemNotFound
	}

	r.publish(ctx, domainevents.TopicItemUpdated, changedEvent(item))
	return nil
}

// Delete removes the item row. Documents go with it through the foreign key
// cascade; callers remove their blobs first.
func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	n, err := db.New(r.db.DB()).DeleteItem(ctx, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if n == 0 {
		return domain.ErrItemNotFound
	}

	r.publish(ctx, domainevents.TopicItemDeleted, domainevents.ItemDeletedEvent{
		EventID:    uuid.New(),
		Version:    eventVersion,
		ItemID:     id,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// Exists reports whether an item with the given ID exists.
func (r *ItemRepository) Exists(ctx context.Context, id int64) (bool, error) {
	exists, err := db.New(r.db.DB()).ItemExists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("check item exists: %w", err)
	}
	return exists, nil
}

// publish runs after the row change is already committed, so a failure here
// is logged rather than returned.
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
		Version:     eventVersion,
		ItemID:      item.ID,
		Code:        item.Code.String(),
		Description: item.Description.String(),
		Quantity:    item.Quantity.Int64(),
		Location:    item.Location.String(),
		OccurredAt:  time.Now().UTC(),
	}
}

func rowToItem(row db.Item) *models.Item {
	return &models.Item{
		ID:          row.ID,
		Code:        models.Code(row.Code),
		Description: models.Description(row.Description),
		Quantity:    models.Quantity(row.Quantity),
		Location:    models.Location(row.Location),
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside an ILIKE pattern. Backslash is
// PostgreSQL's default LIKE escape character.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
