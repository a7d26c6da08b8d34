package models

import (
	"errors"
	"testing"

	"github.com/ghuser/stockroom/services/inventory/domain"
)

func TestNewItem(t *testing.T) {
	t.Run("normalizes fields", func(t *testing.T) {
		item, err := NewItem(ItemInput{Code: "ab1", Description: "widget", Quantity: "5", Location: "bin1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if item.Code != "AB1" || item.Description != "WIDGET" || item.Quantity != 5 || item.Location != "BIN1" {
			t.Fatalf("unexpected item: %+v", item)
		}
		if item.ID != 0 {
			t.Fatalf("expected unsaved item to have zero ID, got %d", item.ID)
		}
	})

	t.Run("reports every invalid field", func(t *testing.T) {
		_, err := NewItem(ItemInput{Quantity: "-3"})
		var fields domain.FieldErrors
		if !errors.As(err, &fields) {
			t.Fatalf("expected FieldErrors, got %v", err)
		}
		for _, f := range []string{"code", "description", "quantity"} {
			if _, ok := fields[f]; !ok {
				t.Errorf("expected %s to be reported, got %v", f, fields)
			}
		}
		if _, ok := fields["location"]; ok {
			t.Error("location is optional and must not be reported")
		}
	})
}

func TestItem_ReplaceKeepsID(t *testing.T) {
	item := &Item{ID: 9, Code: "OLD", Description: "OLD", Quantity: 1}
	item.Replace(&Item{ID: 100, Code: "NEW", Description: "NEWER", Quantity: 2, Location: "A1"})

	if item.ID != 9 {
		t.Fatalf("expected ID 9 to be kept, got %d", item.ID)
	}
	if item.Code != "NEW" || item.Description != "NEWER" || item.Quantity != 2 || item.Location != "A1" {
		t.Fatalf("unexpected item after Replace: %+v", item)
	}
}

func TestNewDocument_StoredNameEqualsDisplayName(t *testing.T) {
	doc := NewDocument(3, "report.pdf")
	if doc.ItemID != 3 || doc.DisplayName != "report.pdf" || doc.StoredName != "report.pdf" {
		t.Fatalf("unexpected document: %+v", doc)
	}
}
