// Package errkind provides a small typed error taxonomy shared across the
// analysis pipeline, so HTTP and CLI front ends can map failures to the
// right status code or exit behavior without string-matching error text.
package errkind

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies the category of a pipeline failure.
type Kind string

const (
	// InputInvalid marks a request that failed validation before any
	// analysis work began.
	InputInvalid Kind = "input_invalid"
	// ParseSkipped marks a parse artifact that was dropped rather than
	// failing the whole request (e.g. a file with a parse error).
	ParseSkipped Kind = "parse_skipped"
	// GraphAbsent marks a request referencing a repo/branch with no
	// stored dependency graph.
	GraphAbsent Kind = "graph_absent"
	// CentralityDegenerate marks a centrality computation that could not
	// be carried out (graph too small) and fell back to a default.
	CentralityDegenerate Kind = "centrality_degenerate"
	// CollaboratorUnavailable marks a failure reaching an external
	// collaborator (retrieval, planner, store).
	CollaboratorUnavailable Kind = "collaborator_unavailable"
	// Cancelled marks a request aborted by context cancellation or
	// deadline.
	Cancelled Kind = "cancelled"
	// Internal marks an unexpected failure with no more specific kind.
	Internal Kind = "internal"
)

// Error wraps an underlying error with a Kind, so callers can both log the
// full chain and branch on category.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an *Error of the given kind around an existing error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind of err, defaulting to Internal when err is not
// (or does not wrap) an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// HTTPStatus maps a Kind to the HTTP status code the gin handlers should
// return for it.
func HTTPStatus(kind Kind) int {
	switch kind {
	case InputInvalid:
		return http.StatusBadRequest
	case GraphAbsent:
		return http.StatusNotFound
	case Cancelled:
		return http.StatusRequestTimeout
	case CollaboratorUnavailable:
		return http.StatusServiceUnavailable
	case ParseSkipped, CentralityDegenerate:
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}
