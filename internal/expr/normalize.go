package expr

// Expand lowers a Distributive into an Addition of Products: L × (T1 ± T2
// ± ...) becomes (L·T1) ± (L·T2) ± ...
// This is the only normalization step in the package, and it runs lazily:
// callers invoke it at lowering time, never while the AST is being built.
func (d Distributive) Expand() Addition {
	out := Addition{Terms: make([]Term, len(d.Right.Terms))}
	left := stripScalar(d.Left)
	for i, t := range d.Right.Terms {
		factors := make([]Labeled, 0, len(t.Factors)+1)
		factors = append(factors, left)
		factors = append(factors, t.Factors...)
		out.Terms[i] = Term{Factors: factors, Scalar: d.Left.Scalar * t.Scalar}
	}
	return out
}
