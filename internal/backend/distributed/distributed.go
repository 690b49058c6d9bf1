// Package distributed implements the sharded storage policy. It shares
// Dense's in-process layout and delegates every structural primitive to
// incore; a real deployment would instead shard each Dense's buffer across
// a cluster and turn Permute/Contract/Slice into collective operations, but
// the numerical contract is identical, so a single node running the in-core
// kernels is a conforming (if non-distributed) implementation of this
// policy.
package distributed

import (
	"github.com/ltensor/ltensor/internal/backend/incore"
	"github.com/ltensor/ltensor/internal/storage"
)

// Backend is the sharded realization of storage.Backend.
type Backend struct {
	delegate *incore.Backend
}

// New returns a distributed Backend.
func New() *Backend {
	return &Backend{delegate: incore.New()}
}

// Kind reports storage.Distributed.
func (*Backend) Kind() storage.BackendKind { return storage.Distributed }

// Alloc allocates a zero-initialized Dense across the (currently single)
// node set.
func (b *Backend) Alloc(shape storage.Shape) (*storage.Dense, error) {
	return b.delegate.Alloc(shape)
}

// Buffer is unsupported: a sharded tensor has no single local slice.
func (*Backend) Buffer(*storage.Dense) ([]float64, error) {
	return nil, storage.Newf(storage.BackendUnsupported, "distributed: raw buffer access is not supported by the distributed backend")
}

// Permute delegates to the in-core kernel.
func (b *Backend) Permute(dst, src *storage.Dense, dstLabels, srcLabels []rune, alpha, beta float64) error {
	return b.delegate.Permute(dst, src, dstLabels, srcLabels, alpha, beta)
}

// Contract delegates to the in-core kernel.
func (b *Backend) Contract(dst, a, bOperand *storage.Dense, dstLabels, aLabels, bLabels []rune, alpha, beta float64) error {
	return b.delegate.Contract(dst, a, bOperand, dstLabels, aLabels, bLabels, alpha, beta)
}

// Slice delegates to the in-core kernel.
func (b *Backend) Slice(dst, src *storage.Dense, dstRanges, srcRanges []storage.Range, alpha, beta float64) error {
	return b.delegate.Slice(dst, src, dstRanges, srcRanges, alpha, beta)
}

// Diagonal delegates to the in-core kernel.
func (b *Backend) Diagonal(dst, src *storage.Dense, dstLabels, srcLabels []rune, alpha, beta float64) error {
	return b.delegate.Diagonal(dst, src, dstLabels, srcLabels, alpha, beta)
}

var _ storage.Backend = (*Backend)(nil)
