package tensor

import "github.com/ltensor/ltensor/internal/storage"

// Backend is the capability set a storage policy provides: allocation, raw
// buffer access (in-core only), and the structural primitives permute,
// contract, slice and diagonal. The three backends this module ships —
// backend/incore, backend/outofcore, backend/distributed — all implement it
// against the same in-core Dense representation; see their package docs for
// how each realizes (or declines) Buffer.
type Backend = storage.Backend

// BackendKind is the storage policy under a Tensor handle.
type BackendKind = storage.BackendKind

const (
	// InCore keeps the full buffer resident in process memory.
	InCore = storage.InCore
	// Disk pages blocks to and from secondary storage.
	Disk = storage.Disk
	// Distributed shards the buffer across a cluster.
	Distributed = storage.Distributed
	// Agnostic defers to the library's default backend.
	Agnostic = storage.Agnostic
)
