// Package outofcore provides the disk-backed tensor backend.
package outofcore

import (
	internaloutofcore "github.com/ltensor/ltensor/internal/backend/outofcore"
	"github.com/ltensor/ltensor/tensor"
)

// Backend is the disk-backed realization of tensor.Backend.
type Backend = internaloutofcore.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new disk-backed backend.
func New() *Backend {
	return internaloutofcore.New()
}
