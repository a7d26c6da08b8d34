package models

import "github.com/ghuser/stockroom/services/inventory/domain"

// Item is the core aggregate for this bounded context.
// ID is zero until the repository assigns one on insert.
type Item struct {
	ID          int64
	Code        Code
	Description Description
	Quantity    Quantity
	Location    Location
}

// ItemInput carries the raw field values submitted for a create or update.
// Quantity stays a literal so it can be rejected when it is not an integer.
type ItemInput struct {
	Code        string
	Description string
	Quantity    string
	Location    string
}

// NewItem normalizes and validates every field of in. All problems are
// reported together as domain.FieldErrors; no partially valid Item is returned.
func NewItem(in ItemInput) (*Item, error) {
	fields := domain.FieldErrors{}

	code, err := NewCode(in.Code)
	if err != nil {
		fields["code"] = err.Error()
	}
	desc, err := NewDescription(in.Description)
	if err != nil {
		fields["description"] = err.Error()
	}
	qty, err := ParseQuantity(in.Quantity)
	if err != nil {
		fields["quantity"] = err.Error()
	}

	if len(fields) > 0 {
		return nil, fields
	}

	return &Item{
		Code:        code,
		Description: desc,
		Quantity:    qty,
		Location:    NewLocation(in.Location),
	}, nil
}

// Replace overwrites every mutable field with the values of next. ID is kept.
func (i *Item) Replace(next *Item) {
	i.Code = next.Code
	i.Description = next.Description
	i.Quantity = next.Quantity
	i.Location = next.Location
}
