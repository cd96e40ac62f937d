package model

import (
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidID is returned when an identifier is not in the store's format.
var ErrInvalidID = errors.New("invalid identifier")

// ParseID validates an opaque identifier received at the API boundary.
func ParseID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, ErrInvalidID
	}
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrInvalidID
	}
	return id, nil
}
