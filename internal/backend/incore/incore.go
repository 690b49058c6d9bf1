// Package incore implements the in-core dense backend: it keeps every
// tensor's data in process memory and is the only backend in this module
// that exposes the raw buffer. It owns the primitive kernels (permute, contract,
// slice, diagonal); outofcore and distributed delegate their numerics to
// this package (see their doc comments).
package incore

import "github.com/ltensor/ltensor/internal/storage"

// Backend is the in-core realization of storage.Backend.
type Backend struct{}

// New returns an in-core Backend. It holds no state: every Dense it
// allocates is independent, reference-counted storage.
func New() *Backend { return &Backend{} }

// Kind reports storage.InCore.
func (*Backend) Kind() storage.BackendKind { return storage.InCore }

// Alloc allocates a zero-initialized in-core Dense.
func (*Backend) Alloc(shape storage.Shape) (*storage.Dense, error) {
	return storage.NewDense(shape)
}

// Buffer returns the raw backing slice; always supported in-core.
func (*Backend) Buffer(d *storage.Dense) ([]float64, error) {
	return d.Data(), nil
}

var _ storage.Backend = (*Backend)(nil)
