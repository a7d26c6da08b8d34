package models

import (
	"errors"
	"strconv"
	"strings"
)

// Code is an item's stock code, stored uppercase. Never empty.
type Code string

// Description is an item's description, stored uppercase. Never empty.
type Description string

// Location is an item's storage location, stored uppercase. May be empty.
type Location string

// Quantity is a non-negative stock count.
type Quantity int64

var (
	errRequired        = errors.New("this field is required")
	errNotNonNegative  = errors.New("must be a non-negative integer")
	errQuantityTooLong = errors.New("is too large")
)

// NewCode uppercases s and rejects the empty string.
func NewCode(s string) (Code, error) {
	if s == "" {
		return "", errRequired
	}
	return Code(strings.ToUpper(s)), nil
}

// NewDescription uppercases s and rejects the empty string.
func NewDescription(s string) (Description, error) {
	if s == "" {
		return "", errRequired
	}
	return Description(strings.ToUpper(s)), nil
}

// NewLocation uppercases s. The empty location is valid.
func NewLocation(s string) Location {
	return Location(strings.ToUpper(s))
}

// ParseQuantity accepts only a plain decimal literal made of ASCII digits.
// Signs, spaces, and fractional parts are rejected.
func ParseQuantity(literal string) (Quantity, error) {
	if literal == "" {
		return 0, errRequired
	}
	for i := 0; i < len(literal); i++ {
		if literal[i] < '0' || literal[i] > '9' {
			return 0, errNotNonNegative
		}
	}
	n, err := strconv.ParseInt(literal, 10, 64)
	if err != nil {
		return 0, errQuantityTooLong
	}
	return Quantity(n), nil
}

func (c Code) String() string        { return string(c) }
func (d Description) String() string { return string(d) }
func (l Location) String() string    { return string(l) }
func (q Quantity) Int64() int64      { return int64(q) }
