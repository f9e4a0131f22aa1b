// Package wpperr defines the error taxonomy shared by the population
// data, interpolation, and query layers.
package wpperr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies an Error so callers can branch on failure category
// without string-matching messages.
type Kind int

const (
	// InvalidInput marks a structurally well-formed argument that is
	// semantically unacceptable (unknown region, unknown sex).
	InvalidInput Kind = iota
	// Parse marks a failure to parse a string into a typed value
	// (date, integer, float, offset).
	Parse
	// OutOfRange marks an argument outside the bounds a calculation
	// supports (birthdate horizon, calculation-window width).
	OutOfRange
	// DataMissing marks a lookup that found no matching row in a
	// loaded table.
	DataMissing
	// Internal marks a failure that should not be reachable given a
	// validated Engine and valid inputs.
	Internal
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case Parse:
		return "parse"
	case OutOfRange:
		return "out_of_range"
	case DataMissing:
		return "data_missing"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the concrete error type produced by this module. Param
// names the offending argument, Value is its (stringified) offending
// content, and Range, when non-empty, describes the accepted bounds.
type Error struct {
	Kind  Kind
	Param string
	Value string
	Range string
	cause error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s=%q", e.Kind, e.Param, e.Value)
	if e.Range != "" {
		msg += fmt.Sprintf(" (accepted: %s)", e.Range)
	}
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.cause }

// New builds an Error with no range and no wrapped cause.
func New(kind Kind, param, value string) *Error {
	return &Error{Kind: kind, Param: param, Value: value}
}

// WithRange attaches a human-readable accepted-range description.
func (e *Error) WithRange(r string) *Error {
	e.Range = r
	return e
}

// Wrap attaches a stack-carrying cause via github.com/pkg/errors.
func (e *Error) Wrap(cause error) *Error {
	e.cause = errors.WithStack(cause)
	return e
}

// Is reports whether err is a *Error of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
