// Package incore provides the in-core tensor backend: the default policy,
// keeping every tensor's buffer resident in process memory.
package incore

import (
	internalincore "github.com/ltensor/ltensor/internal/backend/incore"
	"github.com/ltensor/ltensor/tensor"
)

// Backend is the in-core realization of tensor.Backend.
type Backend = internalincore.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new in-core backend.
func New() *Backend {
	return internalincore.New()
}
