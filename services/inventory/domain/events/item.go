package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the item repository after a successful write.
const (
	TopicItemCreated = "inventory.item.created"
	TopicItemUpdated = "inventory.item.updated"
	TopicItemDeleted = "inventory.item.deleted"
)

// ItemChangedEvent is published on TopicItemCreated and TopicItemUpdated.
// Consumers must reload the item rather than trust the payload ordering:
// delivery is at-least-once and not ordered across topics.
type ItemChangedEvent struct {
	EventID     uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version     int       `json:"version"`  // Schema version; increment on breaking changes
	ItemID      int64     `json:"item_id"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	Quantity    int64     `json:"quantity"`
	Location    string    `json:"location"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// ItemDeletedEvent is published on TopicItemDeleted once the item row is gone.
type ItemDeletedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ItemID     int64     `json:"item_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
