package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/services/inventory/domain/events"
)

func TestItemChangedEvent_JSONFieldNames(t *testing.T) {
	evt := events.ItemChangedEvent{
		EventID:     uuid.New(),
		Version:     1,
		ItemID:      42,
		Code:        "AB1",
		Description: "WIDGET",
		Quantity:    5,
		Location:    "BIN1",
		OccurredAt:  time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal to map failed: %v", err)
	}

	for _, field := range []string{"event_id", "version", "item_id", "code", "description", "quantity", "location", "occurred_at"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("expected JSON field %q not found in: %s", field, data)
		}
	}
	if raw["item_id"] != float64(42) {
		t.Errorf("item_id: got %v", raw["item_id"])
	}
}

func TestItemDeletedEvent_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(events.ItemDeletedEvent{EventID: uuid.New(), Version: 1, ItemID: 7, OccurredAt: time.Now().UTC()})
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal to map failed: %v", err)
	}
	for _, field := range []string{"event_id", "version", "item_id", "occurred_at"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("expected JSON field %q not found in: %s", field, data)
		}
	}
}

func TestTopics_Distinct(t *testing.T) {
	seen := map[string]bool{}
	for _, topic := range []string{events.TopicItemCreated, events.TopicItemUpdated, events.TopicItemDeleted} {
		if topic == "" {
			t.Fatal("topic must not be empty")
		}
		if seen[topic] {
			t.Fatalf("duplicate topic %q", topic)
		}
		seen[topic] = true
	}
}
