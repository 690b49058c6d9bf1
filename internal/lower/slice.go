package lower

import (
	"github.com/ltensor/ltensor/internal/storage"
	"github.com/pkg/errors"
)

// SliceTarget names the destination tensor and the ranges being written
// for a sliced-tensor assignment.
type SliceTarget struct {
	Dense   *storage.Dense
	Backend storage.Backend
	Ranges  []storage.Range
}

// SliceSource is the right-hand side of C[Cr] op= f*A[Ar].
type SliceSource struct {
	Dense  *storage.Dense
	Ranges []storage.Range
	Scalar float64
}

// AssignSlice lowers C[Cr] op= f*A[Ar]: rank and per-axis width are
// validated before Backend.Slice runs, so a mismatch never touches target.
// op==OpSub negates the scalar and is otherwise handled like OpAdd,
// matching the op discipline Assign uses for labeled assignment; there is
// no separate allocation step since slice never needs a temporary.
func AssignSlice(target SliceTarget, op Op, src SliceSource) error {
	if op == OpSub {
		src.Scalar = -src.Scalar
	}
	if len(target.Ranges) != len(src.Ranges) {
		return storage.Newf(storage.ShapeMismatch, "lower: slice assignment ranges have different rank (%d vs %d)", len(target.Ranges), len(src.Ranges))
	}
	for axis := range target.Ranges {
		if target.Ranges[axis].Width() != src.Ranges[axis].Width() {
			return storage.Newf(storage.ShapeMismatch, "lower: slice axis %d width %d does not match %d", axis, target.Ranges[axis].Width(), src.Ranges[axis].Width())
		}
	}
	beta := 1.0
	if op == OpSet {
		beta = 0
	}
	if err := target.Backend.Slice(target.Dense, src.Dense, target.Ranges, src.Ranges, src.Scalar, beta); err != nil {
		return errors.WithMessage(err, "lower: slice assignment")
	}
	return nil
}
