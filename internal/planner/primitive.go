package planner

// Primitive names which kernel a pair-step should execute.
type Primitive int

const (
	// PrimScale means one side of the pair has no labels (a scalar): the
	// step degenerates to scaling the other operand while relabeling it
	// into the pair's output.
	PrimScale Primitive = iota
	// PrimOuter means neither operand shares a label with the other: a
	// pure outer product, dispatched as contract with no contracted axes.
	PrimOuter
	// PrimGEMM means both operands are already rank 2, the output is rank
	// 2, and there is no Hadamard label: a direct matrix product.
	PrimGEMM
	// PrimGeneral is the Hadamard-batched GEMM-reduction path that
	// handles every remaining shape.
	PrimGeneral
)

// SelectPrimitive inspects a pair-step's operand and output label sets and
// reports which primitive handles it. The contract primitive
// (internal/backend/*) implements PrimOuter, PrimGEMM and PrimGeneral
// identically via its Hadamard-batched GEMM reduction; SelectPrimitive exists
// so the lowerer can take the cheaper PrimScale shortcut and so callers can
// report which case a pair-step fell into for diagnostics.
func SelectPrimitive(leftLabels, rightLabels, outLabels []rune) Primitive {
	if len(leftLabels) == 0 || len(rightLabels) == 0 {
		return PrimScale
	}
	leftSet := toSet(leftLabels)
	shared := false
	for _, l := range rightLabels {
		if leftSet[l] {
			shared = true
			break
		}
	}
	if !shared {
		return PrimOuter
	}
	if len(leftLabels) == 2 && len(rightLabels) == 2 && len(outLabels) == 2 {
		hadamard := false
		outSet := toSet(outLabels)
		for _, l := range rightLabels {
			if leftSet[l] && outSet[l] {
				hadamard = true
				break
			}
		}
		if !hadamard {
			return PrimGEMM
		}
	}
	return PrimGeneral
}

func toSet(labels []rune) map[rune]bool {
	s := make(map[rune]bool, len(labels))
	for _, l := range labels {
		s[l] = true
	}
	return s
}
