package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Shared field validators consumed by every record constructor. All of them
// are pure: value in, field-level failure out, no I/O and no process state.

// validateRequiredString reports a failure when value is empty.
func validateRequiredString(field, value string) *FieldError {
	if value == "" {
		return &FieldError{Field: field, Message: "required"}
	}
	return nil
}

// validateOptionalString allows nil; a set value must be non-empty.
func validateOptionalString(field string, value *string) *FieldError {
	if value != nil && *value == "" {
		return &FieldError{Field: field, Message: "must not be empty when set"}
	}
	return nil
}

// validateScalar accepts strings, booleans, and Go's integer and float
// kinds. The unique index compares scan_id by value, so composite types
// (documents, arrays) are rejected up front.
func validateScalar(field string, value any) *FieldError {
	switch value.(type) {
	case nil:
		return &FieldError{Field: field, Message: "required"}
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return nil
	default:
		return &FieldError{Field: field, Message: "must be a scalar (string, integer, float, or bool)"}
	}
}

// validateNonNegativeInt reports a failure when value is below zero.
func validateNonNegativeInt(field string, value int64) *FieldError {
	if value < 0 {
		return &FieldError{Field: field, Message: "must not be negative"}
	}
	return nil
}

// validateStartTime requires a non-zero timestamp.
func validateStartTime(field string, value time.Time) *FieldError {
	if value.IsZero() {
		return &FieldError{Field: field, Message: "required"}
	}
	return nil
}

// validateEndTime allows nil; a set value must be a real timestamp and must
// not precede the run's start.
func validateEndTime(field string, end *time.Time, start time.Time) *FieldError {
	if end == nil {
		return nil
	}
	if end.IsZero() {
		return &FieldError{Field: field, Message: "must be a valid timestamp when set"}
	}
	if end.Before(start) {
		return &FieldError{Field: field, Message: "must not be before start_time"}
	}
	return nil
}

// validateRef requires a non-zero record reference. References are logical
// only; nothing checks that the referenced document exists.
func validateRef(field string, id primitive.ObjectID) *FieldError {
	if id.IsZero() {
		return &FieldError{Field: field, Message: "required"}
	}
	return nil
}

// defaultMap returns a fresh empty map when m is nil. Every record owns its
// own container instance; defaults are never shared between calls.
func defaultMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

// defaultSlice returns a fresh empty slice when s is nil.
func defaultSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
