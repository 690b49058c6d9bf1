package tensor

import (
	"github.com/ltensor/ltensor/internal/lower"
	"github.com/ltensor/ltensor/internal/storage"
)

// SlicedTensor is a Tensor restricted to a sub-box of its own extents, one
// Range per axis, with an accumulated scalar factor.
type SlicedTensor struct {
	tensor *Tensor
	ranges []Range
	scalar float64
}

// Slice views t restricted to ranges, one per axis, with an identity scalar
// factor. len(ranges) must equal t.Rank(); that is checked when the slice is
// assigned, not here, matching L's deferred-validation discipline.
func (t *Tensor) Slice(ranges ...Range) SlicedTensor {
	rs := make([]Range, len(ranges))
	copy(rs, ranges)
	return SlicedTensor{tensor: t, ranges: rs, scalar: 1}
}

// Scale returns s with its accumulated scalar factor multiplied by alpha.
func (s SlicedTensor) Scale(alpha float64) SlicedTensor {
	s.scalar *= alpha
	return s
}

// Neg returns s with its accumulated scalar factor negated.
func (s SlicedTensor) Neg() SlicedTensor {
	s.scalar = -s.scalar
	return s
}

// Assign lowers C[Cr] = f*A[Ar].
func (s SlicedTensor) Assign(src SlicedTensor) error { return s.assign(lower.OpSet, src) }

// AddAssign lowers C[Cr] += f*A[Ar].
func (s SlicedTensor) AddAssign(src SlicedTensor) error { return s.assign(lower.OpAdd, src) }

// SubAssign lowers C[Cr] -= f*A[Ar].
func (s SlicedTensor) SubAssign(src SlicedTensor) error { return s.assign(lower.OpSub, src) }

func (s SlicedTensor) assign(op lower.Op, src SlicedTensor) error {
	if len(s.ranges) != s.tensor.Rank() {
		return storage.Newf(storage.ShapeMismatch, "tensor: slice target rank %d does not match %d ranges", s.tensor.Rank(), len(s.ranges))
	}
	if len(src.ranges) != src.tensor.Rank() {
		return storage.Newf(storage.ShapeMismatch, "tensor: slice source rank %d does not match %d ranges", src.tensor.Rank(), len(src.ranges))
	}
	target := lower.SliceTarget{Dense: s.tensor.dense, Backend: s.tensor.backend, Ranges: toStorageRanges(s.ranges)}
	source := lower.SliceSource{Dense: src.tensor.dense, Ranges: toStorageRanges(src.ranges), Scalar: src.scalar}
	return lower.AssignSlice(target, op, source)
}

func toStorageRanges(rs []Range) []storage.Range {
	out := make([]storage.Range, len(rs))
	copy(out, rs)
	return out
}
