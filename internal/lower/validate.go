package lower

import (
	"github.com/ltensor/ltensor/internal/expr"
	"github.com/ltensor/ltensor/internal/planner"
	"github.com/ltensor/ltensor/internal/storage"
	"github.com/pkg/errors"
)

// termPlan is one fully-validated product term of a right-hand side: its
// accumulated scalar factor, its factors (after self-contraction
// resolution), and, for two-or-more factors, the contraction tree the
// planner chose. Building a termPlan touches only shapes and label sets —
// it allocates nothing and never mutates a tensor — so every termPlan in a
// right-hand side can be built before any of them executes.
type termPlan struct {
	scalar  float64
	factors []reducedFactor
	tree    *planner.Step // nil for a single-factor (plain labeled) term
}

// planRHS validates the entire right-hand side of an assignment and returns
// one termPlan per product term (a bare Labeled and a Product both yield a
// single term; an Addition yields one term per summand; a Distributive is
// expanded first). Returns the first validation error encountered, before
// any term's plan is built further.
func planRHS(target expr.Labeled, rhs any) ([]termPlan, error) {
	switch v := rhs.(type) {
	case expr.Labeled:
		tp, err := buildTermPlan(target, expr.Term{Factors: []expr.Labeled{v}, Scalar: v.Scalar})
		if err != nil {
			return nil, err
		}
		return []termPlan{tp}, nil
	case expr.Product:
		tp, err := buildTermPlan(target, v.Term)
		if err != nil {
			return nil, err
		}
		return []termPlan{tp}, nil
	case expr.Addition:
		terms := make([]termPlan, len(v.Terms))
		for i, term := range v.Terms {
			tp, err := buildTermPlan(target, term)
			if err != nil {
				return nil, errors.WithMessagef(err, "term %d", i)
			}
			terms[i] = tp
		}
		return terms, nil
	case expr.Distributive:
		return planRHS(target, v.Expand())
	default:
		return nil, storage.Newf(storage.LabelMismatch, "lower: unsupported right-hand side %T", rhs)
	}
}

// buildTermPlan validates one product term: every factor's own label
// sequence, the self-contraction each factor needs (if any), and — for
// multi-factor terms — a contraction plan whose root exposes exactly
// target's labels.
func buildTermPlan(target expr.Labeled, term expr.Term) (termPlan, error) {
	n := len(term.Factors)
	if n == 0 {
		return termPlan{}, storage.Newf(storage.PlanningFailure, "lower: product has no factors")
	}

	targetSet := toSet(target.Labels)
	presentIn := make([]map[rune]bool, n)
	for i, f := range term.Factors {
		presentIn[i] = toSet(f.Labels)
	}

	reducedFactors := make([]reducedFactor, n)
	for i, f := range term.Factors {
		if f.Ref.Dense == nil {
			return termPlan{}, storage.Newf(storage.LabelMismatch, "lower: factor %d has no tensor", i)
		}
		if len(f.Labels) != f.Ref.Dense.Rank() {
			return termPlan{}, storage.Newf(storage.LabelMismatch, "lower: factor %d has %d labels but rank %d", i, len(f.Labels), f.Ref.Dense.Rank())
		}
		needed := map[rune]bool{}
		for l := range targetSet {
			needed[l] = true
		}
		for j, set := range presentIn {
			if j == i {
				continue
			}
			for l := range set {
				needed[l] = true
			}
		}
		rf, err := analyzeFactor(f.Ref.Dense, f.Ref.Backend, f.Labels, needed)
		if err != nil {
			return termPlan{}, errors.WithMessagef(err, "factor %d", i)
		}
		reducedFactors[i] = rf
	}

	if n == 1 {
		if !sameSet(reducedFactors[0].Labels, target.Labels) {
			return termPlan{}, storage.Newf(storage.LabelMismatch, "lower: labeled assignment requires a permutation of the target's labels")
		}
		return termPlan{scalar: term.Scalar, factors: reducedFactors}, nil
	}

	operands := make([]planner.Operand, n)
	for i, rf := range reducedFactors {
		operands[i] = planner.Operand{Labels: rf.Labels, Shape: shapeFor(rf.Dense, rf.OrigLabels, rf.Labels)}
	}
	tree, _, err := planner.Plan(operands, target.Labels)
	if err != nil {
		return termPlan{}, errors.WithMessage(err, "lower: planning product")
	}
	if !sameSet(tree.Labels, target.Labels) {
		return termPlan{}, storage.Newf(storage.LabelMismatch, "lower: product's external labels do not match target")
	}
	return termPlan{scalar: term.Scalar, factors: reducedFactors, tree: tree}, nil
}
