package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/stockroom/pkg/database"
	"github.com/ghuser/stockroom/services/inventory/domain"
	"github.com/ghuser/stockroom/services/inventory/domain/models"
	"github.com/ghuser/stockroom/services/inventory/domain/repositories"
	"github.com/ghuser/stockroom/services/inventory/infrastructure/persistence/postgres/db"
)

const pgForeignKeyViolation = "23503"

// DocumentRepository implements repositories.DocumentRepository against PostgreSQL.
type DocumentRepository struct {
	db *database.Database
}

var _ repositories.DocumentRepository = (*DocumentRepository)(nil)

func NewDocumentRepository(database *database.Database) *DocumentRepository {
	return &DocumentRepository{db: database}
}

// Save inserts doc and sets its generated ID. A foreign key violation means the
// owning item is gone and is reported as ErrItemNotFound.
func (r *DocumentRepository) Save(ctx context.Context, doc *models.Document) error {
	id, err := db.New(r.db.DB()).InsertDocument(ctx, db.InsertDocumentParams{
		ItemID:      doc.ItemID,
		DisplayName: doc.DisplayName,
		StoredName:  doc.StoredName,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return domain.ErrItemNotFound
		}
		return fmt.Errorf("insert document: %w", err)
	}
	doc.ID = id
	return nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id int64) (*models.Document, error) {
	row, err := db.New(r.db.DB()).GetDocumentByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("query document: %w", err)
	}
	return rowToDocument(row), nil
}

func (r *DocumentRepository) FindByItemID(ctx context.Context, itemID int64) ([]*models.Document, error) {
	rows, err := db.New(r.db.DB()).ListDocumentsByItemID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	docs := make([]*models.Document, len(rows))
	for i, row := range rows {
		docs[i] = rowToDocument(row)
	}
	return docs, nil
}

func (r *DocumentRepository) CountByStoredName(ctx context.Context, storedName string) (int, error) {
	n, err := db.New(r.db.DB()).CountDocumentsByStoredName(ctx, storedName)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return int(n), nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id int64) error {
	n, err := db.New(r.db.DB()).DeleteDocument(ctx, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if n == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func rowToDocument(row db.Document) *models.Document {
	return &models.Document{
		ID:          row.ID,
		ItemID:      row.ItemID,
		DisplayName: row.DisplayName,
		StoredName:  row.StoredName,
	}
}
