package tensor

import "github.com/ltensor/ltensor/internal/storage"

// Shape is an ordered sequence of non-negative extents; its length is the
// tensor's rank. Shape{} (rank 0) denotes a scalar.
type Shape = storage.Shape

// Range is a half-open interval [Lo, Hi) selecting elements along one axis
// of a sliced-tensor expression.
type Range = storage.Range

// IndexRange is one axis range per axis of a sliced tensor, in order.
type IndexRange = []Range
