package lower

import "github.com/ltensor/ltensor/internal/storage"

// reducedFactor describes one product factor after resolving any
// self-contraction in its own label sequence.
type reducedFactor struct {
	Dense       *storage.Dense
	Backend     storage.Backend
	Labels      []rune // unique, post-reduction; what the rest of the lowerer sees
	OrigLabels  []rune // as written in the expression; == Labels when nothing repeats
	NeedsReduce bool
}

// analyzeFactor inspects one factor's own label sequence for repeats and
// decides, for each repeated label, whether it survives as a single
// diagonal axis (kept, because the target or another factor still needs
// it) or is traced away entirely (kept nowhere else): reduction to the
// diagonal when something downstream still needs the label, a trace when
// nothing does. Purely inspects labels and shape; allocates nothing.
func analyzeFactor(dense *storage.Dense, be storage.Backend, labels []rune, neededElsewhere map[rune]bool) (reducedFactor, error) {
	axesOf := map[rune][]int{}
	for axis, l := range labels {
		axesOf[l] = append(axesOf[l], axis)
	}
	repeated := false
	for _, axes := range axesOf {
		if len(axes) > 1 {
			repeated = true
			break
		}
	}
	if !repeated {
		return reducedFactor{Dense: dense, Backend: be, Labels: labels, OrigLabels: labels}, nil
	}

	shape := dense.Shape()
	for l, axes := range axesOf {
		ext := shape[axes[0]]
		for _, a := range axes[1:] {
			if shape[a] != ext {
				return reducedFactor{}, storage.Newf(storage.ShapeMismatch, "lower: repeated label %q has extents %d and %d", string(l), ext, shape[a])
			}
		}
	}

	var reduced []rune
	seen := map[rune]bool{}
	for _, l := range labels {
		if seen[l] {
			continue
		}
		seen[l] = true
		if len(axesOf[l]) == 1 || neededElsewhere[l] {
			reduced = append(reduced, l)
		}
	}
	return reducedFactor{
		Dense:       dense,
		Backend:     be,
		Labels:      reduced,
		OrigLabels:  labels,
		NeedsReduce: true,
	}, nil
}

// shapeFor returns the extents of reducedLabels as they appear in origLabels
// order, used to size a self-contraction's temporary.
func shapeFor(dense *storage.Dense, origLabels, reducedLabels []rune) storage.Shape {
	pos := map[rune]int{}
	for axis, l := range origLabels {
		if _, ok := pos[l]; !ok {
			pos[l] = axis
		}
	}
	shape := dense.Shape()
	out := make(storage.Shape, len(reducedLabels))
	for i, l := range reducedLabels {
		out[i] = shape[pos[l]]
	}
	return out
}

func hasDuplicate(labels []rune) bool {
	seen := map[rune]bool{}
	for _, l := range labels {
		if seen[l] {
			return true
		}
		seen[l] = true
	}
	return false
}

func toSet(labels []rune) map[rune]bool {
	s := make(map[rune]bool, len(labels))
	for _, l := range labels {
		s[l] = true
	}
	return s
}

func sameSet(a, b []rune) bool {
	sa, sb := toSet(a), toSet(b)
	if len(sa) != len(sb) {
		return false
	}
	for l := range sa {
		if !sb[l] {
			return false
		}
	}
	return true
}
