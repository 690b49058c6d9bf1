package incore

import "github.com/ltensor/ltensor/internal/storage"

// sumReduceAxes sums src over the axes listed in drop, returning a new
// Dense over the remaining axes in their original relative order, along
// with the surviving label sequence. Used to eliminate a unilateral label
// (one appearing in only one operand of a contraction and not in the
// output) before the pairwise GEMM-reduction path runs.
func sumReduceAxes(src *storage.Dense, labels []rune, drop map[int]bool) (*storage.Dense, []rune, error) {
	if len(drop) == 0 {
		return src, labels, nil
	}
	srcShape := src.Shape()
	var keepAxes []int
	var keepLabels []rune
	var outShape storage.Shape
	for axis, l := range labels {
		if drop[axis] {
			continue
		}
		keepAxes = append(keepAxes, axis)
		keepLabels = append(keepLabels, l)
		outShape = append(outShape, srcShape[axis])
	}
	out, err := storage.NewDense(outShape)
	if err != nil {
		return nil, nil, err
	}
	outData := out.Data()
	srcData := src.Data()
	srcStrides := src.Strides()
	n := src.NumElements()
	outStrides := out.Strides()

	idx := make([]int, len(labels))
	for flat := 0; flat < n; flat++ {
		rem := flat
		for axis, stride := range srcStrides {
			idx[axis] = rem / stride
			rem %= stride
		}
		outFlat := 0
		for k, axis := range keepAxes {
			outFlat += idx[axis] * outStrides[k]
		}
		outData[outFlat] += srcData[flat]
	}
	return out, keepLabels, nil
}
