package incore

import "github.com/ltensor/ltensor/internal/storage"

// Contract computes dst(dstLabels) = alpha*a(aLabels)*b(bLabels) + beta*dst(dstLabels)
// for arbitrary index labelings.
//
// Labels are partitioned into H (Hadamard, in both operands and the
// output), I (contracted, in both operands but not the output), and PA/PB
// (external to one operand and the output). Labels that appear in exactly
// one operand and not the output are unilateral and are summed out first.
// The remaining H/PA/I and H/I/PB axes of a and b are permuted into the
// canonical layouts [H,PA,I] and [H,I,PB], batched over H and reduced to a
// GEMM per batch, then the canonical result [H,PA,PB] is permuted into dst
// with the caller's beta.
func (be *Backend) Contract(dst, a, b *storage.Dense, dstLabels, aLabels, bLabels []rune, alpha, beta float64) error {
	if len(aLabels) != a.Rank() || len(bLabels) != b.Rank() || len(dstLabels) != dst.Rank() {
		return storage.Newf(storage.LabelMismatch, "contract: label count does not match rank")
	}
	if err := noDuplicateLabels(aLabels); err != nil {
		return err
	}
	if err := noDuplicateLabels(bLabels); err != nil {
		return err
	}
	if err := noDuplicateLabels(dstLabels); err != nil {
		return err
	}

	inA := toSet(aLabels)
	inB := toSet(bLabels)
	inC := toSet(dstLabels)

	var unilateralA, unilateralB map[int]bool
	var hadamard, internal, externalA, externalB []rune
	for axis, l := range aLabels {
		switch {
		case inB[l] && inC[l]:
			hadamard = append(hadamard, l)
		case inB[l]:
			internal = append(internal, l)
		case inC[l]:
			externalA = append(externalA, l)
		default:
			if unilateralA == nil {
				unilateralA = map[int]bool{}
			}
			unilateralA[axis] = true
		}
	}
	for axis, l := range bLabels {
		if inA[l] {
			continue // already classified above (hadamard/internal)
		}
		if inC[l] {
			externalB = append(externalB, l)
		} else {
			if unilateralB == nil {
				unilateralB = map[int]bool{}
			}
			unilateralB[axis] = true
		}
	}
	for _, l := range dstLabels {
		if !inA[l] && !inB[l] {
			return storage.Newf(storage.PlanningFailure, "contract: output label %q appears in neither operand", string(l))
		}
	}

	// Labels shared by both operands (Hadamard or contracted) must carry
	// the same extent on each side before any canonical buffer is sized.
	aShapeOrig, bShapeOrig := a.Shape(), b.Shape()
	for axis, l := range aLabels {
		if !inB[l] {
			continue
		}
		for bAxis, bl := range bLabels {
			if bl == l && bShapeOrig[bAxis] != aShapeOrig[axis] {
				return storage.Newf(storage.ShapeMismatch, "contract: label %q has extent %d in the first operand but %d in the second", string(l), aShapeOrig[axis], bShapeOrig[bAxis])
			}
		}
	}

	reducedA, aLabels2, err := sumReduceAxes(a, aLabels, unilateralA)
	if err != nil {
		return err
	}
	reducedB, bLabels2, err := sumReduceAxes(b, bLabels, unilateralB)
	if err != nil {
		return err
	}

	// Canonical orders: H taken from dst's order (H is a subset of dstLabels);
	// I taken from A's order (arbitrary but fixed, used consistently for
	// both operands); PA/PB taken from dst's order.
	hOrder := filterInSet(dstLabels, toSet(hadamard))
	iOrder := filterInSet(aLabels2, toSet(internal))
	paOrder := filterInSet(dstLabels, toSet(externalA))
	pbOrder := filterInSet(dstLabels, toSet(externalB))

	canonA := concat(hOrder, paOrder, iOrder)
	canonB := concat(hOrder, iOrder, pbOrder)
	canonC := concat(hOrder, paOrder, pbOrder)

	aShape, err := shapeFor(canonA, aLabels2, reducedA.Shape())
	if err != nil {
		return err
	}
	bShape, err := shapeFor(canonB, bLabels2, reducedB.Shape())
	if err != nil {
		return err
	}

	aCanon, err := storage.NewDense(aShape)
	if err != nil {
		return storage.Newf(storage.AllocationFailure, "contract: %v", err)
	}
	if err := be.Permute(aCanon, reducedA, canonA, aLabels2, 1, 0); err != nil {
		return err
	}
	bCanon, err := storage.NewDense(bShape)
	if err != nil {
		return storage.Newf(storage.AllocationFailure, "contract: %v", err)
	}
	if err := be.Permute(bCanon, reducedB, canonB, bLabels2, 1, 0); err != nil {
		return err
	}

	nH := extentOf(aShape, canonA, hOrder)
	nPA := extentOf(aShape, canonA, paOrder)
	nI := extentOf(aShape, canonA, iOrder)
	nPB := extentOf(bShape, canonB, pbOrder)

	cShape := make(storage.Shape, 0, len(hOrder)+len(paOrder)+len(pbOrder))
	cShape = append(cShape, extentSlice(aShape, canonA, hOrder)...)
	cShape = append(cShape, extentSlice(aShape, canonA, paOrder)...)
	cShape = append(cShape, extentSlice(bShape, canonB, pbOrder)...)
	cCanon, err := storage.NewDense(cShape)
	if err != nil {
		return storage.Newf(storage.AllocationFailure, "contract: %v", err)
	}

	aData, bData, cData := aCanon.Data(), bCanon.Data(), cCanon.Data()
	aBlock, bBlock, cBlock := nPA*nI, nI*nPB, nPA*nPB
	for h := 0; h < nH; h++ {
		gemm(nPA, nI, nPB, alpha,
			aData[h*aBlock:(h+1)*aBlock],
			bData[h*bBlock:(h+1)*bBlock],
			0,
			cData[h*cBlock:(h+1)*cBlock])
	}

	return be.Permute(dst, cCanon, dstLabels, canonC, 1, beta)
}

func noDuplicateLabels(labels []rune) error {
	seen := map[rune]bool{}
	for _, l := range labels {
		if seen[l] {
			return storage.Newf(storage.LabelMismatch, "label %q repeated; repeated labels must be reduced before calling contract", string(l))
		}
		seen[l] = true
	}
	return nil
}

func toSet(labels []rune) map[rune]bool {
	s := make(map[rune]bool, len(labels))
	for _, l := range labels {
		s[l] = true
	}
	return s
}

func filterInSet(labels []rune, set map[rune]bool) []rune {
	var out []rune
	seen := map[rune]bool{}
	for _, l := range labels {
		if set[l] && !seen[l] {
			out = append(out, l)
			seen[l] = true
		}
	}
	return out
}

func concat(parts ...[]rune) []rune {
	var out []rune
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// shapeFor looks up, for each label in order, its extent within
// (sourceLabels, sourceShape).
func shapeFor(order, sourceLabels []rune, sourceShape storage.Shape) (storage.Shape, error) {
	pos := make(map[rune]int, len(sourceLabels))
	for axis, l := range sourceLabels {
		pos[l] = axis
	}
	out := make(storage.Shape, len(order))
	for i, l := range order {
		axis, ok := pos[l]
		if !ok {
			return nil, storage.Newf(storage.LabelMismatch, "contract: label %q missing from expected operand", string(l))
		}
		out[i] = sourceShape[axis]
	}
	return out, nil
}

func extentOf(shape storage.Shape, labels, subset []rune) int {
	n := 1
	for _, e := range extentSlice(shape, labels, subset) {
		n *= e
	}
	return n
}

func extentSlice(shape storage.Shape, labels, subset []rune) []int {
	pos := make(map[rune]int, len(labels))
	for axis, l := range labels {
		pos[l] = axis
	}
	out := make([]int, len(subset))
	for i, l := range subset {
		out[i] = shape[pos[l]]
	}
	return out
}
