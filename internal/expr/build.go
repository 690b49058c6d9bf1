package expr

// NewLabeled constructs the identity Labeled view of ref under labels: a
// scalar factor of 1, no permutation implied on its own.
func NewLabeled(ref TensorRef, labels []rune) Labeled {
	return Labeled{Ref: ref, Labels: labels, Scalar: 1}
}

// Scale multiplies the accumulated scalar factor.
func (l Labeled) Scale(s float64) Labeled {
	l.Scalar *= s
	return l
}

// Neg negates the accumulated scalar factor.
func (l Labeled) Neg() Labeled { return l.Scale(-1) }

func stripScalar(l Labeled) Labeled {
	l.Scalar = 1
	return l
}

// Mul builds LabeledTensor × LabeledTensor → Product.
func (l Labeled) Mul(other Labeled) Product {
	return Product{Term: Term{
		Factors: []Labeled{stripScalar(l), stripScalar(other)},
		Scalar:  l.Scalar * other.Scalar,
	}}
}

// Mul builds Product × LabeledTensor → Product, appending a factor.
func (p Product) Mul(other Labeled) Product {
	factors := make([]Labeled, len(p.Term.Factors), len(p.Term.Factors)+1)
	copy(factors, p.Term.Factors)
	factors = append(factors, stripScalar(other))
	return Product{Term: Term{Factors: factors, Scalar: p.Term.Scalar * other.Scalar}}
}

// Scale multiplies the product's accumulated scalar factor.
func (p Product) Scale(s float64) Product {
	p.Term.Scalar *= s
	return p
}

// Neg negates the product's accumulated scalar factor.
func (p Product) Neg() Product { return p.Scale(-1) }

// Add builds LabeledTensor ± LabeledTensor → Addition.
func (l Labeled) Add(other Labeled) Addition {
	return Addition{Terms: []Term{
		{Factors: []Labeled{stripScalar(l)}, Scalar: l.Scalar},
		{Factors: []Labeled{stripScalar(other)}, Scalar: other.Scalar},
	}}
}

// Sub builds LabeledTensor − LabeledTensor → Addition.
func (l Labeled) Sub(other Labeled) Addition { return l.Add(other.Neg()) }

// AddProduct builds LabeledTensor + Product → Addition.
func (l Labeled) AddProduct(p Product) Addition {
	return Addition{Terms: []Term{
		{Factors: []Labeled{stripScalar(l)}, Scalar: l.Scalar},
		p.Term,
	}}
}

// SubProduct builds LabeledTensor − Product → Addition.
func (l Labeled) SubProduct(p Product) Addition { return l.AddProduct(p.Neg()) }

// Add builds Addition ± LabeledTensor → Addition, appending a term with its
// sign carried into the factor.
func (a Addition) Add(other Labeled) Addition {
	terms := make([]Term, len(a.Terms), len(a.Terms)+1)
	copy(terms, a.Terms)
	terms = append(terms, Term{Factors: []Labeled{stripScalar(other)}, Scalar: other.Scalar})
	return Addition{Terms: terms}
}

// Sub builds Addition − LabeledTensor → Addition.
func (a Addition) Sub(other Labeled) Addition { return a.Add(other.Neg()) }

// AddProduct appends a Product term to an Addition.
func (a Addition) AddProduct(p Product) Addition {
	terms := make([]Term, len(a.Terms), len(a.Terms)+1)
	copy(terms, a.Terms)
	terms = append(terms, p.Term)
	return Addition{Terms: terms}
}

// SubProduct appends the negation of a Product term to an Addition.
func (a Addition) SubProduct(p Product) Addition { return a.AddProduct(p.Neg()) }

// Scale multiplies every term's accumulated scalar factor.
func (a Addition) Scale(s float64) Addition {
	out := Addition{Terms: make([]Term, len(a.Terms))}
	for i, t := range a.Terms {
		t.Scalar *= s
		out.Terms[i] = t
	}
	return out
}

// Neg negates every term's accumulated scalar factor.
func (a Addition) Neg() Addition { return a.Scale(-1) }

// Times builds LabeledTensor × Addition → Distributive.
func (l Labeled) Times(a Addition) Distributive {
	return Distributive{Left: l, Right: a}
}

// Neg negates a Distributive by negating its left factor's scalar; Expand
// then carries that sign into every expanded product term.
func (d Distributive) Neg() Distributive {
	d.Left = d.Left.Neg()
	return d
}
