package repositories

import (
	"context"

	"github.com/ghuser/stockroom/services/inventory/domain/models"
)

// DocumentRepository persists Document rows. It never touches blob content.
type DocumentRepository interface {
	// Save inserts doc and sets its generated ID.
	// Returns ErrItemNotFound when doc.ItemID references no item.
	Save(ctx context.Context, doc *models.Document) error

	// GetByID returns ErrDocumentNotFound when no document has the given ID.
	GetByID(ctx context.Context, id int64) (*models.Document, error)

	// FindByItemID lists the documents owned by an item in insertion order.
	FindByItemID(ctx context.Context, itemID int64) ([]*models.Document, error)

	// CountByStoredName counts the rows referencing a blob name.
	CountByStoredName(ctx context.Context, storedName string) (int, error)

	// Delete removes a document row. Returns ErrDocumentNotFound when absent.
	Delete(ctx context.Context, id int64) error
}
