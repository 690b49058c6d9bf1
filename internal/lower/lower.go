// Package lower runs assignments: it accepts a labeled-expression AST
// (internal/expr) assigned to a labeled target and executes it to
// completion against a storage.Backend, allocating whatever temporaries the
// contraction planner's (internal/planner) chosen order requires and
// honoring the = / += / -= accumulation discipline and scalar factors.
package lower

import (
	"github.com/ltensor/ltensor/internal/expr"
	"github.com/ltensor/ltensor/internal/planner"
	"github.com/ltensor/ltensor/internal/storage"
	"github.com/pkg/errors"
)

// Op is the assignment discipline.
type Op int

const (
	// OpSet is "=": target is zeroed, then the right-hand side accumulates.
	OpSet Op = iota
	// OpAdd is "+=": the right-hand side accumulates onto target as-is.
	OpAdd
	// OpSub is "-=": the right-hand side's top-level scalar factor is
	// negated and it is then lowered exactly like OpAdd.
	OpSub
)

// Assign lowers target(labels) op= rhs, where rhs is an expr.Labeled,
// expr.Product, expr.Addition or expr.Distributive. Every term of rhs is
// validated and planned before target is touched at all, so a failing
// assignment leaves target unchanged, short of an allocation failure
// surfacing mid-execution, which by nature cannot be predicted ahead of
// time.
//
// A target whose storage is held by more than one handle is staged:
// pair-steps accumulate into a private working copy and the shared storage
// is overwritten once, at the end, so readers of the other handles never
// observe partial accumulation. An exclusively-held target is written in
// place, with any factor sharing its storage snapshotted first so that
// expressions like C("ij") = C("ji") read the pre-assignment values.
func Assign(target expr.Labeled, op Op, rhs any) error {
	if target.Ref.Dense == nil {
		return storage.Newf(storage.LabelMismatch, "lower: assignment target has no tensor")
	}
	if len(target.Labels) != target.Ref.Dense.Rank() {
		return storage.Newf(storage.LabelMismatch, "lower: target has %d labels but rank %d", len(target.Labels), target.Ref.Dense.Rank())
	}
	if hasDuplicate(target.Labels) {
		return storage.Newf(storage.LabelMismatch, "lower: assignment target's own labels must not repeat")
	}

	if op == OpSub {
		rhs = negate(rhs)
		op = OpAdd
	}

	terms, err := planRHS(target, rhs)
	if err != nil {
		return errors.WithMessage(err, "lower: assign")
	}

	dst := target.Ref.Dense
	work := dst
	if !dst.IsUnique() {
		work = dst.Clone()
	}
	workTarget := target
	workTarget.Ref.Dense = work

	// When the target is written in place, a factor aliasing it must be
	// snapshotted before the zero/accumulate below; a staged target is
	// already a snapshot, so the factors keep reading the shared storage.
	for ti := range terms {
		for fi := range terms[ti].factors {
			f := &terms[ti].factors[fi]
			if f.Dense.SharesBuffer(work) {
				f.Dense = f.Dense.Clone()
			}
		}
	}

	if op == OpSet {
		work.Zero()
	}
	for i, t := range terms {
		if err := execTerm(workTarget, t); err != nil {
			if work != dst {
				work.Release()
			}
			return errors.WithMessagef(err, "lower: assign: term %d", i)
		}
	}
	if work != dst {
		if err := dst.Copy(work, 1); err != nil {
			work.Release()
			return errors.WithMessage(err, "lower: assign")
		}
		work.Release()
	}
	return nil
}

// negate flips the top-level scalar factor of any right-hand-side variant,
// implementing the "-=" discipline.
func negate(rhs any) any {
	switch v := rhs.(type) {
	case expr.Labeled:
		return v.Neg()
	case expr.Product:
		return v.Neg()
	case expr.Addition:
		return v.Neg()
	case expr.Distributive:
		return v.Neg()
	default:
		return rhs
	}
}

// execTerm runs one already-validated term: it either writes a single
// factor straight into target, or materializes any factor self-contractions
// into temporaries and walks the term's contraction tree, allocating an
// intermediate per internal node and folding the term's scalar into the
// final pair-step's alpha. Temporaries are released as soon as their final
// consumer completes.
func execTerm(target expr.Labeled, t termPlan) error {
	be := target.Ref.Backend

	if t.tree == nil {
		f := t.factors[0]
		if f.NeedsReduce {
			return be.Diagonal(target.Ref.Dense, f.Dense, target.Labels, f.OrigLabels, t.scalar, 1)
		}
		return be.Permute(target.Ref.Dense, f.Dense, target.Labels, f.Labels, t.scalar, 1)
	}

	denses := make([]*storage.Dense, len(t.factors))
	labelsList := make([][]rune, len(t.factors))
	for i, f := range t.factors {
		if !f.NeedsReduce {
			denses[i] = f.Dense
			labelsList[i] = f.Labels
			continue
		}
		shape := shapeFor(f.Dense, f.OrigLabels, f.Labels)
		tmp, err := be.Alloc(shape)
		if err != nil {
			return err
		}
		if err := be.Diagonal(tmp, f.Dense, f.Labels, f.OrigLabels, 1, 0); err != nil {
			return err
		}
		denses[i] = tmp
		labelsList[i] = f.Labels
	}

	_, _, err := execStep(be, t.tree, denses, labelsList, target.Ref.Dense, target.Labels, t.scalar)
	for i, f := range t.factors {
		if f.NeedsReduce {
			denses[i].Release()
		}
	}
	return err
}

// execStep walks a planner.Step tree post-order. Every node but the root
// allocates its own temporary and writes with beta=0; the root writes
// directly into target, under the target's own label order, with the term's
// scalar as alpha and beta=1. A child intermediate is released once its
// parent pair-step has consumed it.
func execStep(be storage.Backend, step *planner.Step, denses []*storage.Dense, labelsList [][]rune, target *storage.Dense, targetLabels []rune, scalar float64) (*storage.Dense, []rune, error) {
	if step.IsLeaf() {
		return denses[step.OperandIndex], labelsList[step.OperandIndex], nil
	}
	leftDense, leftLabels, err := execStep(be, step.Left, denses, labelsList, nil, nil, 0)
	if err != nil {
		return nil, nil, err
	}
	rightDense, rightLabels, err := execStep(be, step.Right, denses, labelsList, nil, nil, 0)
	if err != nil {
		return nil, nil, err
	}

	alpha, beta := 1.0, 0.0
	out, outLabels := target, targetLabels
	if target != nil {
		alpha, beta = scalar, 1
	} else {
		out, err = be.Alloc(step.Shape)
		if err != nil {
			return nil, nil, err
		}
		outLabels = step.Labels
	}
	if err := runPair(be, out, leftDense, rightDense, outLabels, leftLabels, rightLabels, alpha, beta); err != nil {
		return nil, nil, err
	}
	if !step.Left.IsLeaf() {
		leftDense.Release()
	}
	if !step.Right.IsLeaf() {
		rightDense.Release()
	}
	return out, outLabels, nil
}

// runPair executes one pair-step. A pair with a scalar (rank-0) side whose
// other operand already carries exactly the step's output labels degenerates
// to a scale-and-relabel, dispatched as a permute with the scalar folded
// into alpha; every other case goes through the general contract kernel.
func runPair(be storage.Backend, dst, left, right *storage.Dense, outLabels, leftLabels, rightLabels []rune, alpha, beta float64) error {
	if planner.SelectPrimitive(leftLabels, rightLabels, outLabels) == planner.PrimScale {
		scalarSide, other, otherLabels := left, right, rightLabels
		if len(leftLabels) != 0 {
			scalarSide, other, otherLabels = right, left, leftLabels
		}
		if sameSet(otherLabels, outLabels) {
			return be.Permute(dst, other, outLabels, otherLabels, alpha*scalarSide.Data()[0], beta)
		}
	}
	return be.Contract(dst, left, right, outLabels, leftLabels, rightLabels, alpha, beta)
}
