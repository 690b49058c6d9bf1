// Package planner chooses, for an N-way product, a pairwise evaluation
// order minimizing a two-part (FLOPs, memory) cost; for each pair it leaves
// the primitive choice to primitive.go. The search is a subset-DP over
// which operands have merged so far. It explores every bracketing, exactly
// as literal enumeration would, but shares subcomputations across brackets,
// so it stays fast well past the handful of operands a real expression
// carries.
package planner

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ltensor/ltensor/internal/storage"
	"github.com/pkg/errors"
)

// Operand is one factor of an N-way product as the planner sees it. Any
// self-contraction (a repeated label within one operand's own Labels) must
// already be resolved before planning; Operand.Labels never repeats a label.
type Operand struct {
	Labels []rune
	Shape  storage.Shape
}

// Step is one node of the binary pair-step tree Plan returns. A leaf
// references an original operand by index; an internal node combines Left
// and Right and exposes Labels (and their Shape) to its parent.
type Step struct {
	Left, Right  *Step
	OperandIndex int // meaningful only when Left == nil && Right == nil
	Labels       []rune
	Shape        storage.Shape
}

// IsLeaf reports whether this step is an original operand rather than a
// pair-step result.
func (s *Step) IsLeaf() bool { return s.Left == nil && s.Right == nil }

// Cost is the two-part metric the search optimizes: total arithmetic work
// summed over every pair-step, and the peak intermediate memory across
// them.
type Cost struct {
	FLOPs  float64
	Memory float64
}

// Less is the tie-break order: lower FLOPs first, then lower peak memory.
func (c Cost) Less(other Cost) bool {
	if c.FLOPs != other.FLOPs {
		return c.FLOPs < other.FLOPs
	}
	return c.Memory < other.Memory
}

// Plan selects a pairwise contraction order for operands producing
// outputLabels, minimizing Cost. len(operands) must be >= 2; a
// single-operand "product" is not planned (the lowerer dispatches it as a
// permute directly).
func Plan(operands []Operand, outputLabels []rune) (*Step, Cost, error) {
	n := len(operands)
	if n < 2 {
		return nil, Cost{}, errors.New("planner: Plan requires at least two operands")
	}

	extent, err := globalExtents(operands, outputLabels)
	if err != nil {
		return nil, Cost{}, err
	}

	outSet := make(map[rune]bool, len(outputLabels))
	for _, l := range outputLabels {
		outSet[l] = true
	}

	labelOperands := map[rune][]int{}
	for i, op := range operands {
		seen := map[rune]bool{}
		for _, l := range op.Labels {
			if seen[l] {
				continue
			}
			seen[l] = true
			labelOperands[l] = append(labelOperands[l], i)
		}
	}

	externalCache := map[int][]rune{}
	external := func(mask int) []rune {
		if v, ok := externalCache[mask]; ok {
			return v
		}
		var out []rune
		for l, ops := range labelOperands {
			inMask, outMask := false, false
			for _, oi := range ops {
				if mask&(1<<uint(oi)) != 0 {
					inMask = true
				} else {
					outMask = true
				}
			}
			if !inMask {
				continue
			}
			if outSet[l] || outMask {
				out = append(out, l)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
		externalCache[mask] = out
		return out
	}
	extentProduct := func(labels []rune) float64 {
		p := 1.0
		for _, l := range labels {
			p *= float64(extent[l])
		}
		return p
	}
	shapeOf := func(labels []rune) storage.Shape {
		s := make(storage.Shape, len(labels))
		for i, l := range labels {
			s[i] = extent[l]
		}
		return s
	}
	union := func(a, b []rune) []rune {
		set := map[rune]bool{}
		for _, l := range a {
			set[l] = true
		}
		for _, l := range b {
			set[l] = true
		}
		out := make([]rune, 0, len(set))
		for l := range set {
			out = append(out, l)
		}
		sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
		return out
	}

	full := (1 << uint(n)) - 1
	memo := make(map[int]entry, full+1)
	for i, op := range operands {
		memo[1<<uint(i)] = entry{
			cost:    Cost{},
			tree:    &Step{OperandIndex: i, Labels: op.Labels, Shape: op.Shape},
			bracket: strconv.Itoa(i),
		}
	}

	masksByPopcount := make(map[int][]int)
	for mask := 1; mask <= full; mask++ {
		pc := bits(mask)
		masksByPopcount[pc] = append(masksByPopcount[pc], mask)
	}

	for size := 2; size <= n; size++ {
		for _, mask := range masksByPopcount[size] {
			var best entry
			haveBest := false
			for sub := (mask - 1) & mask; sub > 0; sub = (sub - 1) & mask {
				other := mask ^ sub
				if sub >= other {
					continue // only consider each unordered split once
				}
				l, ok1 := memo[sub]
				r, ok2 := memo[other]
				if !ok1 || !ok2 {
					continue
				}
				leftExt, rightExt := external(sub), external(other)
				pairFLOPs := extentProduct(union(leftExt, rightExt))
				pairMem := extentProduct(external(mask))
				cost := Cost{
					FLOPs:  l.cost.FLOPs + r.cost.FLOPs + pairFLOPs,
					Memory: maxF(l.cost.Memory, maxF(r.cost.Memory, pairMem)),
				}
				bracket := "(" + l.bracket + "," + r.bracket + ")"
				cand := entry{
					cost: cost,
					tree: &Step{
						Left:   l.tree,
						Right:  r.tree,
						Labels: external(mask),
						Shape:  shapeOf(external(mask)),
					},
					bracket: bracket,
				}
				if !haveBest || better(cand, best) {
					best = cand
					haveBest = true
				}
			}
			memo[mask] = best
		}
	}

	result := memo[full]
	return result.tree, result.cost, nil
}

// entry is one candidate (or memoized best) plan for a subset of operands.
type entry struct {
	cost    Cost
	tree    *Step
	bracket string
}

func better(a, b entry) bool {
	if a.cost.FLOPs != b.cost.FLOPs {
		return a.cost.FLOPs < b.cost.FLOPs
	}
	if a.cost.Memory != b.cost.Memory {
		return a.cost.Memory < b.cost.Memory
	}
	return strings.Compare(a.bracket, b.bracket) < 0
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func bits(x int) int {
	n := 0
	for x > 0 {
		n += x & 1
		x >>= 1
	}
	return n
}

// globalExtents validates that every label's extent agrees across all the
// places it occurs (operands and, where present, the requested output) and
// returns the agreed extent per label.
func globalExtents(operands []Operand, outputLabels []rune) (map[rune]int, error) {
	extent := map[rune]int{}
	for oi, op := range operands {
		if len(op.Labels) != len(op.Shape) {
			return nil, errors.Errorf("planner: operand %d has %d labels but rank %d", oi, len(op.Labels), len(op.Shape))
		}
		for axis, l := range op.Labels {
			e := op.Shape[axis]
			if prev, ok := extent[l]; ok {
				if prev != e {
					return nil, storage.Newf(storage.ShapeMismatch, "planner: label %q has extent %d in operand %d but %d elsewhere", string(l), e, oi, prev)
				}
			} else {
				extent[l] = e
			}
		}
	}
	for _, l := range outputLabels {
		if _, ok := extent[l]; !ok {
			return nil, storage.Newf(storage.PlanningFailure, "planner: output label %q does not appear in any operand", string(l))
		}
	}
	return extent, nil
}
