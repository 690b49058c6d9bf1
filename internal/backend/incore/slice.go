package incore

import "github.com/ltensor/ltensor/internal/storage"

// Slice computes dst[dstRanges] = alpha*src[srcRanges] + beta*dst[dstRanges],
// element by element with no reordering. Ranges must have equal rank and
// equal per-axis width, and must lie within their tensor's extents. beta == 0
// means the destination box is never read, so NaN-filled regions are fully
// overwritten.
func (*Backend) Slice(dst, src *storage.Dense, dstRanges, srcRanges []storage.Range, alpha, beta float64) error {
	if len(dstRanges) != dst.Rank() || len(srcRanges) != src.Rank() {
		return storage.Newf(storage.LabelMismatch, "slice: range rank does not match tensor rank")
	}
	if len(dstRanges) != len(srcRanges) {
		return storage.Newf(storage.ShapeMismatch, "slice: destination and source have different rank")
	}
	dstShape, srcShape := dst.Shape(), src.Shape()
	widths := make([]int, len(dstRanges))
	for axis := range dstRanges {
		dr, sr := dstRanges[axis], srcRanges[axis]
		if dr.Width() != sr.Width() {
			return storage.Newf(storage.ShapeMismatch, "slice: axis %d width %d in destination but %d in source", axis, dr.Width(), sr.Width())
		}
		if dr.Lo < 0 || dr.Hi > dstShape[axis] || dr.Lo > dr.Hi {
			return storage.Newf(storage.RangeOutOfBounds, "slice: destination axis %d range [%d,%d) out of bounds for extent %d", axis, dr.Lo, dr.Hi, dstShape[axis])
		}
		if sr.Lo < 0 || sr.Hi > srcShape[axis] || sr.Lo > sr.Hi {
			return storage.Newf(storage.RangeOutOfBounds, "slice: source axis %d range [%d,%d) out of bounds for extent %d", axis, sr.Lo, sr.Hi, srcShape[axis])
		}
		widths[axis] = dr.Width()
	}

	dstData, srcData := dst.Data(), src.Data()
	dstStrides, srcStrides := dst.Strides(), src.Strides()

	total := 1
	for _, w := range widths {
		total *= w
	}
	idx := make([]int, len(widths))
	for flat := 0; flat < total; flat++ {
		rem := flat
		for axis := len(widths) - 1; axis >= 0; axis-- {
			idx[axis] = rem % widths[axis]
			rem /= widths[axis]
		}
		dstFlat, srcFlat := 0, 0
		for axis := range widths {
			dstFlat += (dstRanges[axis].Lo + idx[axis]) * dstStrides[axis]
			srcFlat += (srcRanges[axis].Lo + idx[axis]) * srcStrides[axis]
		}
		if beta == 0 {
			dstData[dstFlat] = alpha * srcData[srcFlat]
		} else {
			dstData[dstFlat] = alpha*srcData[srcFlat] + beta*dstData[dstFlat]
		}
	}
	return nil
}
