package tensor

import (
	"github.com/ltensor/ltensor/internal/expr"
	"github.com/ltensor/ltensor/internal/lower"
)

// LabeledTensor pairs a Tensor with the index labels under which its axes
// are viewed in an expression, plus an accumulated scalar factor.
// LabeledTensor is a value type: it copies cheaply and borrows the Tensor it
// was built from.
type LabeledTensor struct{ node expr.Labeled }

// L views t under the given index labels, one rune per axis, with an
// identity scalar factor. Labels may repeat within the string to express a
// trace/diagonal over those axes.
func (t *Tensor) L(labels string) LabeledTensor {
	return LabeledTensor{node: expr.NewLabeled(t.ref(), []rune(labels))}
}

// Scale returns l with its accumulated scalar factor multiplied by s.
func (l LabeledTensor) Scale(s float64) LabeledTensor { return LabeledTensor{l.node.Scale(s)} }

// Neg returns l with its accumulated scalar factor negated.
func (l LabeledTensor) Neg() LabeledTensor { return LabeledTensor{l.node.Neg()} }

// Mul builds LabeledTensor × LabeledTensor → Product.
func (l LabeledTensor) Mul(other LabeledTensor) Product {
	return Product{node: l.node.Mul(other.node)}
}

// Add builds LabeledTensor ± LabeledTensor → Addition.
func (l LabeledTensor) Add(other LabeledTensor) Addition {
	return Addition{node: l.node.Add(other.node)}
}

// Sub builds LabeledTensor − LabeledTensor → Addition.
func (l LabeledTensor) Sub(other LabeledTensor) Addition {
	return Addition{node: l.node.Sub(other.node)}
}

// AddProduct builds LabeledTensor + Product → Addition.
func (l LabeledTensor) AddProduct(p Product) Addition {
	return Addition{node: l.node.AddProduct(p.node)}
}

// SubProduct builds LabeledTensor − Product → Addition.
func (l LabeledTensor) SubProduct(p Product) Addition {
	return Addition{node: l.node.SubProduct(p.node)}
}

// Times builds LabeledTensor × Addition → Distributive.
func (l LabeledTensor) Times(a Addition) Distributive {
	return Distributive{node: l.node.Times(a.node)}
}

// Assign lowers target(labels) = rhs. rhs must be a LabeledTensor,
// Product, Addition or Distributive built from this module's combinators.
func (l LabeledTensor) Assign(rhs any) error { return lower.Assign(l.node, lower.OpSet, unwrap(rhs)) }

// AddAssign lowers target(labels) += rhs.
func (l LabeledTensor) AddAssign(rhs any) error {
	return lower.Assign(l.node, lower.OpAdd, unwrap(rhs))
}

// SubAssign lowers target(labels) -= rhs.
func (l LabeledTensor) SubAssign(rhs any) error {
	return lower.Assign(l.node, lower.OpSub, unwrap(rhs))
}

// Product is LabeledTensor × LabeledTensor × ... under repeated Mul.
type Product struct{ node expr.Product }

// Mul appends another LabeledTensor factor to the product.
func (p Product) Mul(other LabeledTensor) Product { return Product{node: p.node.Mul(other.node)} }

// Scale multiplies the product's accumulated scalar factor.
func (p Product) Scale(s float64) Product { return Product{p.node.Scale(s)} }

// Neg negates the product's accumulated scalar factor.
func (p Product) Neg() Product { return Product{p.node.Neg()} }

// Addition is a sum of labeled tensors and/or products, each carrying its
// own sign.
type Addition struct{ node expr.Addition }

// Add appends another LabeledTensor term, signed by its own factor.
func (a Addition) Add(other LabeledTensor) Addition { return Addition{node: a.node.Add(other.node)} }

// Sub appends the negation of another LabeledTensor term.
func (a Addition) Sub(other LabeledTensor) Addition { return Addition{node: a.node.Sub(other.node)} }

// AddProduct appends a Product term.
func (a Addition) AddProduct(p Product) Addition { return Addition{node: a.node.AddProduct(p.node)} }

// SubProduct appends the negation of a Product term.
func (a Addition) SubProduct(p Product) Addition { return Addition{node: a.node.SubProduct(p.node)} }

// Scale multiplies every term's accumulated scalar factor.
func (a Addition) Scale(s float64) Addition { return Addition{a.node.Scale(s)} }

// Neg negates every term's accumulated scalar factor.
func (a Addition) Neg() Addition { return Addition{a.node.Neg()} }

// Distributive is LabeledTensor × Addition, expanded into an Addition of
// Products at lowering time.
type Distributive struct{ node expr.Distributive }

// Neg negates the distributive's left factor.
func (d Distributive) Neg() Distributive { return Distributive{d.node.Neg()} }

// unwrap peels a public wrapper type down to the internal/expr node
// lower.Assign's type switch dispatches on; anything else passes through
// unchanged so lower.Assign can report it as an unsupported right-hand side.
func unwrap(rhs any) any {
	switch v := rhs.(type) {
	case LabeledTensor:
		return v.node
	case Product:
		return v.node
	case Addition:
		return v.node
	case Distributive:
		return v.node
	default:
		return rhs
	}
}
