package tensor_test

import (
	"math"
	"testing"

	"github.com/ltensor/ltensor/backend/incore"
	"github.com/ltensor/ltensor/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermutePreservesNorm(t *testing.T) {
	be := incore.New()
	a := buildFilled(t, be, "A", tensor.Shape{3, 4}, nil)
	buf, _ := a.Buffer()
	for i := range buf {
		buf[i] = float64(i)*0.7 - 3
	}
	c, err := tensor.Build(be, "C", tensor.Shape{4, 3})
	require.NoError(t, err)

	require.NoError(t, c.L("ji").Assign(a.L("ij")))
	assert.InDelta(t, a.Norm(2), c.Norm(2), 1e-12*a.Norm(2))
}

func TestPermuteRoundTrip(t *testing.T) {
	be := incore.New()
	a := buildFilled(t, be, "A", tensor.Shape{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	c, err := tensor.Build(be, "C", tensor.Shape{3, 2})
	require.NoError(t, err)
	back, err := tensor.Build(be, "Back", tensor.Shape{2, 3})
	require.NoError(t, err)

	require.NoError(t, c.L("ji").Assign(a.L("ij")))
	require.NoError(t, back.L("ij").Assign(c.L("ji")))

	got, _ := back.Buffer()
	assert.InDeltaSlice(t, []float64{1, 2, 3, 4, 5, 6}, got, 1e-12)
}

func TestDotEqualsSquaredNorm(t *testing.T) {
	be := incore.New()
	a := buildFilled(t, be, "A", tensor.Shape{5}, []float64{1, -2, 3, -4, 5})

	dot, err := a.Dot(a)
	require.NoError(t, err)
	n := a.Norm(2)
	assert.InDelta(t, n*n, dot, 1e-12*dot)
}

func TestContractionAssociativity(t *testing.T) {
	be := incore.New()
	a := buildFilled(t, be, "A", tensor.Shape{2, 3}, []float64{1, -1, 2, 0.5, 3, -2})
	b := buildFilled(t, be, "B", tensor.Shape{3, 2}, []float64{2, 1, -1, 0, 4, 3})
	d := buildFilled(t, be, "D", tensor.Shape{2, 2}, []float64{1, 2, -3, 0.25})

	// Left bracketing via an explicit temporary.
	ab, err := tensor.Build(be, "AB", tensor.Shape{2, 2})
	require.NoError(t, err)
	require.NoError(t, ab.L("ik").Assign(a.L("ij").Mul(b.L("jk"))))
	left, err := tensor.Build(be, "Left", tensor.Shape{2, 2})
	require.NoError(t, err)
	require.NoError(t, left.L("il").Assign(ab.L("ik").Mul(d.L("kl"))))

	// Right bracketing.
	bd, err := tensor.Build(be, "BD", tensor.Shape{3, 2})
	require.NoError(t, err)
	require.NoError(t, bd.L("jl").Assign(b.L("jk").Mul(d.L("kl"))))
	right, err := tensor.Build(be, "Right", tensor.Shape{2, 2})
	require.NoError(t, err)
	require.NoError(t, right.L("il").Assign(a.L("ij").Mul(bd.L("jl"))))

	lbuf, _ := left.Buffer()
	rbuf, _ := right.Buffer()
	for i := range lbuf {
		assert.InDelta(t, lbuf[i], rbuf[i], 1e-10*math.Max(1, math.Abs(lbuf[i])))
	}

	// The planner's own order agrees with both.
	planned, err := tensor.Build(be, "Planned", tensor.Shape{2, 2})
	require.NoError(t, err)
	require.NoError(t, planned.L("il").Assign(a.L("ij").Mul(b.L("jk")).Mul(d.L("kl"))))
	pbuf, _ := planned.Buffer()
	for i := range lbuf {
		assert.InDelta(t, lbuf[i], pbuf[i], 1e-10*math.Max(1, math.Abs(lbuf[i])))
	}
}

func TestDistributiveMatchesExpandedForm(t *testing.T) {
	be := incore.New()
	d := buildFilled(t, be, "D", tensor.Shape{2, 3}, []float64{1, 2, -1, 0.5, 3, 2})
	j := buildFilled(t, be, "J", tensor.Shape{3, 2}, []float64{2, 0, 1, -1, 3, 4})
	k := buildFilled(t, be, "K", tensor.Shape{3, 2}, []float64{1, 1, -2, 0, 0.5, 2})

	viaDistributive, err := tensor.Build(be, "V1", tensor.Shape{2, 2})
	require.NoError(t, err)
	require.NoError(t, viaDistributive.L("il").Assign(
		d.L("ij").Times(j.L("jl").Sub(k.L("jl"))),
	))

	viaTwoProducts, err := tensor.Build(be, "V2", tensor.Shape{2, 2})
	require.NoError(t, err)
	require.NoError(t, viaTwoProducts.L("il").Assign(d.L("ij").Mul(j.L("jl"))))
	require.NoError(t, viaTwoProducts.L("il").SubAssign(d.L("ij").Mul(k.L("jl"))))

	got1, _ := viaDistributive.Buffer()
	got2, _ := viaTwoProducts.Buffer()
	assert.InDeltaSlice(t, got2, got1, 1e-12)
}

func TestAssignOverwritesNaNTarget(t *testing.T) {
	be := incore.New()
	a := buildFilled(t, be, "A", tensor.Shape{2, 2}, []float64{1, 2, 3, 4})
	b := buildFilled(t, be, "B", tensor.Shape{2, 2}, []float64{5, 6, 7, 8})
	c, err := tensor.Build(be, "C", tensor.Shape{2, 2})
	require.NoError(t, err)
	cbuf, _ := c.Buffer()
	for i := range cbuf {
		cbuf[i] = math.NaN()
	}

	require.NoError(t, c.L("ij").Assign(a.L("ik").Mul(b.L("kj"))))
	for _, v := range cbuf {
		assert.False(t, math.IsNaN(v))
	}
	assert.InDeltaSlice(t, []float64{19, 22, 43, 50}, cbuf, 1e-12)
}

func TestInPlaceTransposeAliasSafe(t *testing.T) {
	be := incore.New()
	a := buildFilled(t, be, "A", tensor.Shape{2, 2}, []float64{1, 2, 3, 4})

	require.NoError(t, a.L("ij").Assign(a.L("ji")))

	buf, _ := a.Buffer()
	assert.Equal(t, []float64{1, 3, 2, 4}, buf)
}

func TestRank3ContractionAgainstReferenceLoop(t *testing.T) {
	be := incore.New()
	a := buildFilled(t, be, "A", tensor.Shape{2, 3, 4}, nil)
	abuf, _ := a.Buffer()
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 4; k++ {
				abuf[i*12+j*4+k] = float64(i + j + k)
			}
		}
	}
	b := buildFilled(t, be, "B", tensor.Shape{4, 2}, nil)
	bbuf, _ := b.Buffer()
	for k := 0; k < 4; k++ {
		for l := 0; l < 2; l++ {
			bbuf[k*2+l] = float64(k * l)
		}
	}
	c, err := tensor.Build(be, "C", tensor.Shape{2, 3, 2})
	require.NoError(t, err)

	require.NoError(t, c.L("ijl").Assign(a.L("ijk").Mul(b.L("kl"))))

	cbuf, _ := c.Buffer()
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			for l := 0; l < 2; l++ {
				var want float64
				for k := 0; k < 4; k++ {
					want += abuf[i*12+j*4+k] * bbuf[k*2+l]
				}
				assert.InDelta(t, want, cbuf[i*6+j*2+l], 1e-12)
			}
		}
	}
}

func TestThreeWayIdentityChain(t *testing.T) {
	be := incore.New()
	eye := []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}
	a := buildFilled(t, be, "A", tensor.Shape{3, 3}, eye)
	b := buildFilled(t, be, "B", tensor.Shape{3, 3}, eye)
	d := buildFilled(t, be, "D", tensor.Shape{3, 3}, eye)
	c, err := tensor.Build(be, "C", tensor.Shape{3, 3})
	require.NoError(t, err)

	require.NoError(t, c.L("il").Assign(a.L("ij").Mul(b.L("jk")).Mul(d.L("kl"))))

	buf, _ := c.Buffer()
	assert.InDeltaSlice(t, eye, buf, 1e-12)
}

func TestSliceCenterBlockAccumulate(t *testing.T) {
	be := incore.New()
	ones := make([]float64, 16)
	for i := range ones {
		ones[i] = 1
	}
	a := buildFilled(t, be, "A", tensor.Shape{4, 4}, ones)
	c, err := tensor.Build(be, "C", tensor.Shape{4, 4})
	require.NoError(t, err)

	require.NoError(t, c.Slice(
		tensor.Range{Lo: 1, Hi: 3}, tensor.Range{Lo: 1, Hi: 3},
	).AddAssign(a.Slice(
		tensor.Range{Lo: 0, Hi: 2}, tensor.Range{Lo: 0, Hi: 2},
	)))

	buf, _ := c.Buffer()
	want := []float64{
		0, 0, 0, 0,
		0, 1, 1, 0,
		0, 1, 1, 0,
		0, 0, 0, 0,
	}
	assert.Equal(t, want, buf)
}
