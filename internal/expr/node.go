// Package expr implements the labeled-expression AST: a small, value-typed
// sum-of-variants (Labeled, Product, Addition, Distributive) built by
// operator-like combinator methods instead of operator overloading. Nodes
// only hold tensor handles and label vectors, so they copy cheaply;
// normalization (expanding a Distributive into a flat Addition of Products)
// happens lazily, at lowering time, never during construction.
package expr

import "github.com/ltensor/ltensor/internal/storage"

// TensorRef is the minimal tensor handle the AST needs. It is distinct from
// the public tensor.Tensor type so that this package does not import the
// public tensor package, which itself builds ASTs from this one.
type TensorRef struct {
	Dense   *storage.Dense
	Backend storage.Backend
	Name    string
}

// Labeled pairs a tensor handle with the index labels under which its axes
// are viewed for this expression, plus any scalar factor accumulated by
// Scale or Neg.
type Labeled struct {
	Ref    TensorRef
	Labels []rune
	Scalar float64
}

// Term is one signed product of factors: a single-factor Term is a bare
// labeled tensor; a multi-factor Term is a Product. Scalar carries the sign
// and any scale folded in by Scale/Neg, with every Factor's own Scalar
// normalized to 1 once it is absorbed into a Term (see stripScalar).
type Term struct {
	Factors []Labeled
	Scalar  float64
}

// Product is LabeledTensor × LabeledTensor × ... under repeated Mul.
type Product struct {
	Term Term
}

// Addition is a sum of Terms, each carrying its own sign folded into its
// Scalar.
type Addition struct {
	Terms []Term
}

// Distributive is LabeledTensor × Addition, expanded into an Addition of
// Products by Expand, lazily, at lowering time.
type Distributive struct {
	Left  Labeled
	Right Addition
}
