package memory

import (
	"context"
	"sort"

	"github.com/ghuser/stockroom/services/inventory/domain"
	"github.com/ghuser/stockroom/services/inventory/domain/models"
	"github.com/ghuser/stockroom/services/inventory/domain/repositories"
)

// DocumentRepository implements repositories.DocumentRepository over a Store.
type DocumentRepository struct {
	store *Store
}

var _ repositories.DocumentRepository = (*DocumentRepository)(nil)

func NewDocumentRepository(store *Store) *DocumentRepository {
	return &DocumentRepository{store: store}
}

func (r *DocumentRepository) Save(_ context.Context, doc *models.Document) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.items[doc.ItemID]; !ok {
		return domain.ErrItemNotFound
	}
	r.store.nextDoc++
	doc.ID = r.store.nextDoc
	r.store.docs[doc.ID] = *doc
	return nil
}

func (r *DocumentRepository) GetByID(_ context.Context, id int64) (*models.Document, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	doc, ok := r.store.docs[id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return &doc, nil
}

func (r *DocumentRepository) FindByItemID(_ context.Context, itemID int64) ([]*models.Document, error) {
	r.store.mu.RLock()
	out := []*models.Document{}
	for _, doc := range r.store.docs {
		if doc.ItemID == itemID {
			doc := doc
			out = append(out, &doc)
		}
	}
	r.store.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *DocumentRepository) CountByStoredName(_ context.Context, storedName string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	n := 0
	for _, doc := range r.store.docs {
		if doc.StoredName == storedName {
			n++
		}
	}
	return n, nil
}

func (r *DocumentRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.docs[id]; !ok {
		return domain.ErrDocumentNotFound
	}
	delete(r.store.docs, id)
	return nil
}
