package tensor

import "github.com/ltensor/ltensor/internal/storage"

// ErrorKind distinguishes the categories of failure this module signals.
// Test with errors.Is(err, tensor.ShapeMismatch)
// and friends; every *Error carries exactly one ErrorKind.
type ErrorKind = storage.Kind

const (
	// ShapeMismatch means extents disagree across an operation's contract.
	ShapeMismatch = storage.ShapeMismatch
	// LabelMismatch means a label count differs from rank, a label repeats
	// illegally, or a label set is not the permutation it was required to be.
	LabelMismatch = storage.LabelMismatch
	// BackendUnsupported means the operation is not available for the
	// backend kind involved (e.g. raw buffer access on a non-in-core tensor).
	BackendUnsupported = storage.BackendUnsupported
	// RangeOutOfBounds means a slice interval violates an extent.
	RangeOutOfBounds = storage.RangeOutOfBounds
	// PlanningFailure means an N-way product's label algebra is inconsistent.
	PlanningFailure = storage.PlanningFailure
	// AllocationFailure means a backend could not obtain memory for a
	// tensor or a temporary.
	AllocationFailure = storage.AllocationFailure
)

// Error is the error type this module's failures carry, possibly wrapped
// with call-path context; errors.As and errors.Is see through the wrapping.
type Error = storage.Error
