// Package outofcore implements the disk-backed storage policy. It keeps the
// same Dense representation as incore but never exposes the raw buffer, and
// delegates every structural primitive to incore after paging the operands
// fully resident. Today's implementation has no partial-residency paging,
// so Alloc simply reserves the full buffer up front.
package outofcore

import (
	"github.com/ltensor/ltensor/internal/backend/incore"
	"github.com/ltensor/ltensor/internal/storage"
)

// Backend is the disk-backed realization of storage.Backend. It holds no
// file handles of its own yet; kept as a distinct type so callers can
// select disk semantics (and, later, eviction policy) independently of
// in-core.
type Backend struct {
	delegate *incore.Backend
}

// New returns a disk-backed Backend.
func New() *Backend {
	return &Backend{delegate: incore.New()}
}

// Kind reports storage.Disk.
func (*Backend) Kind() storage.BackendKind { return storage.Disk }

// Alloc allocates a zero-initialized Dense. Paging to secondary storage is
// not yet implemented: the buffer is resident for the tensor's lifetime.
func (b *Backend) Alloc(shape storage.Shape) (*storage.Dense, error) {
	return b.delegate.Alloc(shape)
}

// Buffer is unsupported for the disk backend: callers that need the raw
// slice must operate through Permute/Contract/Slice instead.
func (*Backend) Buffer(*storage.Dense) ([]float64, error) {
	return nil, storage.Newf(storage.BackendUnsupported, "outofcore: raw buffer access is not supported by the disk backend")
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
