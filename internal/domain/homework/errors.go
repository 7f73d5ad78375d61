package homework

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// ShapeReason identifies which part of the response contract was violated.
type ShapeReason string

const (
	ReasonTopLevelType ShapeReason = "unexpected top-level type"
	ReasonMissingKey   ShapeReason = "missing key"
	ReasonFieldType    ShapeReason = "wrong field type"
	ReasonRecordType   ShapeReason = "unexpected record type"
)

// ShapeError is returned when a decoded API response does not have the documented layout.
type ShapeError struct {
	Reason ShapeReason
	Detail string
}

func (e *ShapeError) Error() string {
	if e.Detail == "" {
		return string(e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
}

// FieldError is returned when a homework record lacks a field or holds an undecodable value.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("field %q is missing", e.Field)
}

func (e *FieldError) Unwrap() error { return e.Err }

// StatusError is returned for a status code outside the verdict table.
type StatusError struct {
	Status Status
}

func (e *StatusError) Error() string {
	known := lo.Map(Statuses(), func(s Status, _ int) string { return string(s) })
	return fmt.Sprintf("unexpected homework status %q (expected one of: %s)", e.Status, strings.Join(known, ", "))
}
