package incore

import "github.com/ltensor/ltensor/internal/storage"

// Diagonal computes dst(dstLabels) = alpha*diag(src(srcLabels)) + beta*dst(dstLabels),
// where srcLabels may repeat a label to express a self-contraction. A label
// repeated in srcLabels and present in dstLabels survives as the single
// axis named by dstLabels, restricted to elements where every repeated
// occurrence agrees (reduction-to-diagonal); a label repeated in srcLabels
// but absent from dstLabels is summed over that restriction (trace). A
// label occurring once in srcLabels is a pass-through if kept, or an
// ordinary sum-reduction if dropped.
func (*Backend) Diagonal(dst, src *storage.Dense, dstLabels, srcLabels []rune, alpha, beta float64) error {
	if len(srcLabels) != src.Rank() {
		return storage.Newf(storage.LabelMismatch, "diagonal: label count does not match source rank")
	}
	if dst.SharesBuffer(src) {
		src = src.Clone()
	}
	if len(dstLabels) != dst.Rank() {
		return storage.Newf(storage.LabelMismatch, "diagonal: label count does not match destination rank")
	}
	seenDst := map[rune]bool{}
	for _, l := range dstLabels {
		if seenDst[l] {
			return storage.Newf(storage.LabelMismatch, "diagonal: label %q repeated in destination", string(l))
		}
		seenDst[l] = true
	}

	axesOf := map[rune][]int{}
	for axis, l := range srcLabels {
		axesOf[l] = append(axesOf[l], axis)
	}

	srcShape := src.Shape()
	for l, axes := range axesOf {
		ext := srcShape[axes[0]]
		for _, a := range axes[1:] {
			if srcShape[a] != ext {
				return storage.Newf(storage.ShapeMismatch, "diagonal: repeated label %q has extents %d and %d", string(l), ext, srcShape[a])
			}
		}
	}

	dstShape := dst.Shape()
	kept := make([]int, len(dstLabels)) // representative source axis for each dst axis
	for k, l := range dstLabels {
		axes, ok := axesOf[l]
		if !ok {
			return storage.Newf(storage.LabelMismatch, "diagonal: destination label %q does not appear in source", string(l))
		}
		if dstShape[k] != srcShape[axes[0]] {
			return storage.Newf(storage.ShapeMismatch, "diagonal: axis %q has extent %d in destination but %d in source", string(l), dstShape[k], srcShape[axes[0]])
		}
		kept[k] = axes[0]
	}

	dstData := dst.Data()
	srcData := src.Data()
	dstStrides := dst.Strides()
	srcStrides := src.Strides()

	if beta == 0 {
		for i := range dstData {
			dstData[i] = 0
		}
	} else if beta != 1 {
		for i := range dstData {
			dstData[i] *= beta
		}
	}

	n := src.NumElements()
	idx := make([]int, len(srcLabels))
	for flat := 0; flat < n; flat++ {
		rem := flat
		for axis, stride := range srcStrides {
			idx[axis] = rem / stride
			rem %= stride
		}
		diag := true
		for _, axes := range axesOf {
			for _, a := range axes[1:] {
				if idx[a] != idx[axes[0]] {
					diag = false
					break
				}
			}
			if !diag {
				break
			}
		}
		if !diag {
			continue
		}
		dstFlat := 0
		for k, axis := range kept {
			dstFlat += idx[axis] * dstStrides[k]
		}
		dstData[dstFlat] += alpha * srcData[flat]
	}
	return nil
}
