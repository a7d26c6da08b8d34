package repositories

import (
	"context"

	"github.com/ghuser/stockroom/services/inventory/domain/models"
)

// ItemRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
type ItemRepository interface {
	// Save inserts a new Item and sets its generated ID.
	Save(ctx context.Context, item *models.Item) error

	// GetByID returns ErrItemNotFound when no item has the given ID.
	GetByID(ctx context.Context, id int64) (*models.Item, error)

	// Find returns every item when filter is empty; otherwise the items whose
	// code, description, or location contains filter, ignoring case.
	Find(ctx context.Context, filter string) ([]*models.Item, error)

	// Update overwrites all fields of an existing Item.
	// Returns ErrItemNotFound when no item has item.ID.
	Update(ctx context.Context, item *models.Item) error

	// Delete removes an item row. Returns ErrItemNotFound when absent.
	Delete(ctx context.Context, id int64) error

	// Exists reports whether an item with the given ID exists.
	Exists(ctx context.Context, id int64) (bool, error)
}
