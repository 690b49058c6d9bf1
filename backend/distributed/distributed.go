// Package distributed provides the sharded tensor backend.
package distributed

import (
	internaldistributed "github.com/ltensor/ltensor/internal/backend/distributed"
	"github.com/ltensor/ltensor/tensor"
)

// Backend is the sharded realization of tensor.Backend.
type Backend = internaldistributed.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new distributed backend.
func New() *Backend {
	return internaldistributed.New()
}
