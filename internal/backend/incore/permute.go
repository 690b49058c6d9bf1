package incore

import "github.com/ltensor/ltensor/internal/storage"

// Permute computes dst(dstLabels) = alpha*src(srcLabels) + beta*dst(dstLabels).
// dstLabels must be a permutation of srcLabels and extents must agree under
// that permutation. beta == 0 means dst is never read, so a NaN-filled
// target is fully overwritten. A source sharing dst's buffer is snapshotted
// before dst is written.
func (*Backend) Permute(dst, src *storage.Dense, dstLabels, srcLabels []rune, alpha, beta float64) error {
	if len(dstLabels) != dst.Rank() || len(srcLabels) != src.Rank() {
		return storage.Newf(storage.LabelMismatch, "permute: label count does not match rank")
	}
	if dst.SharesBuffer(src) {
		src = src.Clone()
	}
	srcAxisOf := make(map[rune]int, len(srcLabels))
	for axis, l := range srcLabels {
		if _, dup := srcAxisOf[l]; dup {
			return storage.Newf(storage.LabelMismatch, "permute: label %q repeated in source", string(l))
		}
		srcAxisOf[l] = axis
	}

	// perm[k] = axis of src that dst's axis k reads from.
	perm := make([]int, len(dstLabels))
	srcShape := src.Shape()
	dstShape := dst.Shape()
	seenDst := make(map[rune]bool, len(dstLabels))
	for k, l := range dstLabels {
		if seenDst[l] {
			return storage.Newf(storage.LabelMismatch, "permute: label %q repeated in destination", string(l))
		}
		seenDst[l] = true
		axis, ok := srcAxisOf[l]
		if !ok {
			return storage.Newf(storage.LabelMismatch, "permute: label %q in destination is not a permutation of the source labels", string(l))
		}
		if dstShape[k] != srcShape[axis] {
			return storage.Newf(storage.ShapeMismatch, "permute: axis %q has extent %d in destination but %d in source", string(l), dstShape[k], srcShape[axis])
		}
		perm[k] = axis
	}

	dstData := dst.Data()
	srcData := src.Data()
	dstStrides := dst.Strides()
	srcStrides := src.Strides()
	n := dst.NumElements()

	if beta == 0 {
		for i := range dstData {
			dstData[i] = 0
		}
	} else if beta != 1 {
		for i := range dstData {
			dstData[i] *= beta
		}
	}

	idx := make([]int, len(dstLabels))
	for flat := 0; flat < n; flat++ {
		rem := flat
		for k, stride := range dstStrides {
			idx[k] = rem / stride
			rem %= stride
		}
		srcFlat := 0
		for k, axis := range perm {
			srcFlat += idx[k] * srcStrides[axis]
		}
		dstData[flat] += alpha * srcData[srcFlat]
	}
	return nil
}
