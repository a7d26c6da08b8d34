// Package services contains stateless domain services for the inventory bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"fmt"
	"strings"

	"github.com/ghuser/stockroom/services/inventory/domain/models"
)

// ValidateItemForWrite checks the invariants a persisted Item must hold.
// It assumes the Item was built via models.NewItem and catches aggregates
// assembled by hand elsewhere:
//   - code and description are non-empty
//   - code, description, and location are already uppercase
//   - quantity is non-negative
func ValidateItemForWrite(item *models.Item) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}
	if item.Code == "" {
		return fmt.Errorf("code must be set")
	}
	if item.Description == "" {
		return fmt.Errorf("description must be set")
	}
	if item.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}

	for field, v := range map[string]string{
		"code":        item.Code.String(),
		"description": item.Description.String(),
		"location":    item.Location.String(),
	} {
		if v != strings.ToUpper(v) {
			return fmt.Errorf("%s must be normalized to uppercase", field)
		}
	}
	return nil
}

// ValidateDocumentForCreation checks a Document before its row is inserted.
// Names must already be sanitized basenames.
func ValidateDocumentForCreation(doc *models.Document) error {
	if doc == nil {
		return fmt.Errorf("document cannot be nil")
	}
	if doc.ItemID <= 0 {
		return fmt.Errorf("item_id must be set")
	}
	if doc.DisplayName == "" || doc.StoredName == "" {
		return fmt.Errorf("document names must be set")
	}
	if strings.ContainsAny(doc.StoredName, `/\`) || doc.StoredName == "." || doc.StoredName == ".." {
		return fmt.Errorf("stored name %q is not a safe basename", doc.StoredName)
	}
	return nil
}
