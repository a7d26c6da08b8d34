// Package memory holds process-local repositories for service and handler
// tests. Both repositories share one Store so that removing an item also drops
// its documents, as the foreign key does in PostgreSQL.
package memory

import (
	"sync"

	"github.com/ghuser/stockroom/services/inventory/domain/models"
)

// Store is the shared table set behind ItemRepository and DocumentRepository.
type Store struct {
	mu       sync.RWMutex
	items    map[int64]models.Item
	docs     map[int64]models.Document
	nextItem int64
	nextDoc  int64
}

func NewStore() *Store {
	return &Store{
		items: make(map[int64]models.Item),
		docs:  make(map[int64]models.Document),
	}
}
