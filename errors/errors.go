// Package errors provides error handling for go-db.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Sentinel errors for the validation taxonomy
//
// Usage:
//
//	// Wrap with context
//	if err := build(); err != nil {
//	    return errors.Wrap(err, "failed to build closure")
//	}
//
//	// Classify errors
//	if errors.Is(err, errors.ErrMalformedGraph) {
//	    // abort this closure build, keep the others
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
	Join      = crdb.Join
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for the validation pipeline. Every error crossing the
// closure/rule boundary is classified as one of these (or ErrNotFound).
// Use errors.Is() to check, errors.Wrap() to add context while preserving
// the classification.
var (
	// ErrNotFound indicates the requested term or record does not exist
	ErrNotFound = New("not found")

	// ErrMalformedGraph indicates an edge with an unrecognized predicate or
	// a term id loaded with conflicting metadata. Fatal to the closure build
	// that observed it; independent builds are unaffected.
	ErrMalformedGraph = New("malformed graph")

	// ErrSchemaViolation indicates an annotation record missing a mandatory
	// field. Fatal to that record only; loading continues and skipped
	// records are counted.
	ErrSchemaViolation = New("schema violation")

	// ErrNotEvaluable indicates a rule whose external dependency (retraction
	// list, taxon constraints, reasoner) is absent. Callers must surface
	// this as a status, never treat it as "no violations".
	ErrNotEvaluable = New("rule not evaluable")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsMalformedGraphError checks if an error is or wraps ErrMalformedGraph
func IsMalformedGraphError(err error) bool {
	return err != nil && Is(err, ErrMalformedGraph)
}

// IsSchemaViolationError checks if an error is or wraps ErrSchemaViolation
func IsSchemaViolationError(err error) bool {
	return err != nil && Is(err, ErrSchemaViolation)
}

// IsNotEvaluableError checks if an error is or wraps ErrNotEvaluable
func IsNotEvaluableError(err error) bool {
	return err != nil && Is(err, ErrNotEvaluable)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}

// NewMalformedGraphError creates a malformed-graph error with a formatted message
func NewMalformedGraphError(format string, args ...interface{}) error {
	return Wrap(ErrMalformedGraph, Newf(format, args...).Error())
}

// NewSchemaViolationError creates a schema-violation error with a formatted message
func NewSchemaViolationError(format string, args ...interface{}) error {
	return Wrap(ErrSchemaViolation, Newf(format, args...).Error())
}

// NewNotEvaluableError creates a not-evaluable error with a formatted message
func NewNotEvaluableError(format string, args ...interface{}) error {
	return Wrap(ErrNotEvaluable, Newf(format, args...).Error())
}
