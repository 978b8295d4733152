package convert

import (
	"errors"
	"fmt"
)

// Sentinel errors for structural conversion failures.
var (
	// ErrMissingField indicates a required field or context entry is absent.
	ErrMissingField = errors.New("required field missing")

	// ErrUnparseable indicates a field value could not be parsed.
	ErrUnparseable = errors.New("field value not parseable")

	// ErrUnrecognizedState indicates a wire enum value or union tag outside
	// the schema.
	ErrUnrecognizedState = errors.New("unrecognized state")

	// ErrUnknownVariant indicates a domain value outside the closed set this
	// package maps, which means the model and the converter disagree about
	// the schema version.
	ErrUnknownVariant = errors.New("unknown variant")
)

// Error wraps a structural conversion failure with its location.
type Error struct {
	// Entity is the message or model type being converted (e.g., "Task").
	Entity string

	// Field is the offending field or context key, if one exists.
	Field string

	// Value is the offending raw value, if one exists.
	Value string

	// Err is the underlying sentinel.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Field != "" && e.Value != "":
		return fmt.Sprintf("%s %s: %q: %v", e.Entity, e.Field, e.Value, e.Err)
	case e.Field != "":
		return fmt.Sprintf("%s %s: %v", e.Entity, e.Field, e.Err)
	case e.Value != "":
		return fmt.Sprintf("%s: %s: %v", e.Entity, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Entity, e.Err)
}

// Unwrap returns the underlying sentinel for errors.Is support.
func (e *Error) Unwrap() error {
	return e.Err
}

func missingField(entity, field string) error {
	return &Error{Entity: entity, Field: field, Err: ErrMissingField}
}

func unparseable(entity, field, value string) error {
	return &Error{Entity: entity, Field: field, Value: value, Err: ErrUnparseable}
}

func unrecognizedState(entity, field, value string) error {
	return &Error{Entity: entity, Field: field, Value: value, Err: ErrUnrecognizedState}
}

func unknownVariant(entity string, v any) error {
	return &Error{Entity: entity, Value: fmt.Sprintf("%T", v), Err: ErrUnknownVariant}
}

func unknownEnum(entity, field string, v fmt.Stringer) error {
	return &Error{Entity: entity, Field: field, Value: v.String(), Err: ErrUnknownVariant}
}

// IsMissingField returns true if the error indicates a required field or
// context entry was absent.
func IsMissingField(err error) bool {
	return errors.Is(err, ErrMissingField)
}

// IsUnparseable returns true if the error indicates a field value could not
// be parsed.
func IsUnparseable(err error) bool {
	return errors.Is(err, ErrUnparseable)
}

// IsUnrecognizedState returns true if the error indicates a wire value
// outside the schema.
func IsUnrecognizedState(err error) bool {
	return errors.Is(err, ErrUnrecognizedState)
}

// IsUnknownVariant returns true if the error indicates a domain value the
// converter does not recognize.
func IsUnknownVariant(err error) bool {
	return errors.Is(err, ErrUnknownVariant)
}
