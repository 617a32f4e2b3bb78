package domain

import (
	"errors"
	"fmt"
)

// ErrMissingIdentifier is returned when a Link is requested for an entity without any UID.
var ErrMissingIdentifier = errors.New("entity has no identifier")

// ErrUnrecognizedType is returned when a value has no serialization rank.
var ErrUnrecognizedType = errors.New("unrecognized type")

// ErrUnknownKind is returned when a type tag has no registered prototype.
var ErrUnknownKind = errors.New("unknown kind")

// ErrListingNotFound is returned when a listing key cannot be found in a store.
var ErrListingNotFound = errors.New("listing not found")

// MissingIdentifierError reports the kind of the entity that could not be linked.
type MissingIdentifierError struct {
	Type string
}

func (e *MissingIdentifierError) Error() string {
	return fmt.Sprintf("no uid for %s entity", e.Type)
}

func (e *MissingIdentifierError) Unwrap() error {
	return ErrMissingIdentifier
}

// UnrecognizedTypeError reports the value that could not be ranked.
type UnrecognizedTypeError struct {
	Value any
}

func (e *UnrecognizedTypeError) Error() string {
	if s, ok := e.Value.(string); ok {
		return fmt.Sprintf("unrecognized type string: %q", s)
	}
	return fmt.Sprintf("can only rank entities and type strings, not %T", e.Value)
}

func (e *UnrecognizedTypeError) Unwrap() error {
	return ErrUnrecognizedType
}
