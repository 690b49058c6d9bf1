// Package storage implements the dense in-core storage layer: a contiguous
// row-major buffer of float64 values shared by reference-counted handles,
// plus the elementwise operations every backend kind exposes uniformly
// over it.
package storage

import "fmt"

// Kind distinguishes the categories of failure a storage or backend
// operation can signal. Every Kind is fatal to the operation that raised
// it; none are retryable internally.
type Kind int

const (
	// ShapeMismatch means extents disagree across an operation's contract.
	ShapeMismatch Kind = iota
	// LabelMismatch means a label count differs from rank, a label repeats
	// illegally, or a label set is not the permutation it was required to be.
	LabelMismatch
	// BackendUnsupported means the operation is not available for the
	// backend kind involved (e.g. raw buffer access on a non-in-core tensor).
	BackendUnsupported
	// RangeOutOfBounds means a slice interval violates an extent.
	RangeOutOfBounds
	// PlanningFailure means an N-way product's label algebra is inconsistent
	// (e.g. an output label that appears in no operand).
	PlanningFailure
	// AllocationFailure means a backend could not obtain memory for a
	// tensor or a temporary.
	AllocationFailure
)

func (k Kind) String() string {
	switch k {
	case ShapeMismatch:
		return "shape-mismatch"
	case LabelMismatch:
		return "label-mismatch"
	case BackendUnsupported:
		return "backend-unsupported"
	case RangeOutOfBounds:
		return "range-out-of-bounds"
	case PlanningFailure:
		return "planning-failure"
	case AllocationFailure:
		return "allocation-failure"
	default:
		return "unknown-error"
	}
}

// Error is the error type the storage, backend and lowering layers signal
// failures with; lowering may wrap it with call-path context. Callers
// distinguish failure categories with errors.Is against the sentinel Kind
// values (e.g. errors.Is(err, storage.ShapeMismatch)).
type Error struct {
	Kind Kind
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

// Is reports whether target is the Kind this Error carries, so that
// errors.Is(err, storage.ShapeMismatch) works without exposing *Error.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// Error lets a bare Kind act as its own matching sentinel for errors.Is.
func (k Kind) Error() string { return k.String() }

// Newf builds an *Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf("%s: %s", kind, fmt.Sprintf(format, args...))}
}
