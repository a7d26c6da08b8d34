package models

// Document is a file attachment owned by exactly one Item.
//
// StoredName is the blob store key. It equals the sanitized DisplayName, so
// documents of different items uploaded under the same name share one blob.
type Document struct {
	ID          int64
	ItemID      int64
	DisplayName string
	StoredName  string
}

// NewDocument builds an unsaved Document for a sanitized upload name.
func NewDocument(itemID int64, safeName string) *Document {
	return &Document{
		ItemID:      itemID,
		DisplayName: safeName,
		StoredName:  safeName,
	}
}
