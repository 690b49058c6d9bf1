// Package tensor is the public surface of the labeled-tensor contraction
// engine: a reference-counted handle to dense storage (Tensor), the
// algebraic combinators that build deferred labeled-index expressions
// (LabeledTensor, Product, Addition, Distributive, SlicedTensor), and the
// entry points that lower an assignment of one of those expressions into a
// schedule of backend primitive calls.
//
// A minimal program:
//
//	be := incore.New()
//	a, _ := tensor.Build(be, "A", tensor.Shape{2, 2})
//	b, _ := tensor.Build(be, "B", tensor.Shape{2, 2})
//	c, _ := tensor.Build(be, "C", tensor.Shape{2, 2})
//	c.L("ij").Assign(a.L("ik").Mul(b.L("kj")))
package tensor

import (
	"github.com/google/uuid"

	"github.com/ltensor/ltensor/internal/expr"
	"github.com/ltensor/ltensor/internal/storage"
)

// Tensor is a reference-counted handle to dense storage: a diagnostic name,
// a backend kind, a shape, and backend-owned data. Two Tensors are equal
// iff they reference the same storage object; View creates such a second
// handle, and the storage lives until the last handle is Released.
type Tensor struct {
	name    string
	kind    BackendKind
	backend Backend
	dense   *storage.Dense
}

// Build allocates a new Tensor against the given backend, stamping it with
// name (or a fresh diagnostic id, if name is empty) and shape. Storage is
// allocated eagerly.
func Build(backend Backend, name string, shape Shape) (*Tensor, error) {
	if backend == nil {
		return nil, storage.Newf(storage.AllocationFailure, "tensor: Build requires a non-nil backend")
	}
	dense, err := backend.Alloc(shape)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = uuid.New().String()
	}
	return &Tensor{name: name, kind: backend.Kind(), backend: backend, dense: dense}, nil
}

// View returns a second handle to t's storage under its own diagnostic
// name (or a fresh id, if name is empty). Writes through either handle are
// visible through both; assignments targeting shared storage are staged so
// the other handles never observe a half-accumulated result.
func (t *Tensor) View(name string) *Tensor {
	t.dense.AddRef()
	if name == "" {
		name = uuid.New().String()
	}
	return &Tensor{name: name, kind: t.kind, backend: t.backend, dense: t.dense}
}

// Release drops this handle's reference to the storage; the backing buffer
// is reclaimed once the last handle has dropped. Using a released handle is
// a caller error.
func (t *Tensor) Release() { t.dense.Release() }

// Name returns the tensor's diagnostic name.
func (t *Tensor) Name() string { return t.name }

// Kind returns the backend policy storing this tensor.
func (t *Tensor) Kind() BackendKind { return t.kind }

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape { return t.dense.Shape() }

// Rank returns the number of axes.
func (t *Tensor) Rank() int { return t.dense.Rank() }

// NumElements returns the total element count (1 for a scalar).
func (t *Tensor) NumElements() int { return t.dense.NumElements() }

// Equal reports whether t and other reference the same storage object.
func (t *Tensor) Equal(other *Tensor) bool {
	return other != nil && t.dense == other.dense
}

// Zero sets every element to 0.
func (t *Tensor) Zero() { t.dense.Zero() }

// Scale multiplies every element by alpha in place.
func (t *Tensor) Scale(alpha float64) { t.dense.Scale(alpha) }

// Copy sets t = alpha*src elementwise; src must share t's shape.
func (t *Tensor) Copy(src *Tensor, alpha float64) error { return t.dense.Copy(src.dense, alpha) }

// Norm computes the p-norm of t's elements: p=0 is max|x|, p=1 is sum|x|,
// p=2 is the Euclidean norm, otherwise (sum|x|^p)^(1/p).
func (t *Tensor) Norm(p float64) float64 { return t.dense.Norm(p) }

// Dot computes the flat inner product of t and other; shapes must match.
func (t *Tensor) Dot(other *Tensor) (float64, error) { return t.dense.Dot(other.dense) }

// PointwiseMultiply sets t[i] *= other[i]; shapes must match.
func (t *Tensor) PointwiseMultiply(other *Tensor) error {
	return t.dense.PointwiseMultiply(other.dense)
}

// PointwiseDivide sets t[i] /= other[i]; shapes must match.
func (t *Tensor) PointwiseDivide(other *Tensor) error { return t.dense.PointwiseDivide(other.dense) }

// Buffer exposes the raw backing slice. Only the in-core backend supports
// this; other backends return a BackendUnsupported error.
func (t *Tensor) Buffer() ([]float64, error) { return t.backend.Buffer(t.dense) }

// ref builds the internal expression-AST handle this tensor lends to an
// expression built from it. AST nodes borrow it and must not outlive t.
func (t *Tensor) ref() expr.TensorRef {
	return expr.TensorRef{Dense: t.dense, Backend: t.backend, Name: t.name}
}
