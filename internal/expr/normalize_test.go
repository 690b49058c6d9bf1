package expr_test

import (
	"testing"

	"github.com/ltensor/ltensor/internal/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandDistributesLeftOverEveryTerm(t *testing.T) {
	a := expr.NewLabeled(ref("A"), []rune("ik")).Scale(2)
	b := expr.NewLabeled(ref("B"), []rune("kj"))
	c := expr.NewLabeled(ref("C"), []rune("kj")).Scale(-1)

	d := a.Times(b.Add(c))
	out := d.Expand()

	require.Len(t, out.Terms, 2)
	for _, term := range out.Terms {
		require.Len(t, term.Factors, 2)
		assert.Equal(t, "A", term.Factors[0].Ref.Name)
		assert.Equal(t, 1.0, term.Factors[0].Scalar)
	}
	assert.Equal(t, 2.0, out.Terms[0].Scalar)
	assert.Equal(t, -2.0, out.Terms[1].Scalar)
}

func TestExpandPreservesRightFactorOrder(t *testing.T) {
	l := expr.NewLabeled(ref("L"), []rune("i"))
	p := expr.NewLabeled(ref("P"), []rune("i")).Mul(expr.NewLabeled(ref("Q"), []rune("i")))
	add := expr.Addition{}.AddProduct(p)

	out := l.Times(add).Expand()
	require.Len(t, out.Terms, 1)
	require.Len(t, out.Terms[0].Factors, 3)
	assert.Equal(t, "L", out.Terms[0].Factors[0].Ref.Name)
	assert.Equal(t, "P", out.Terms[0].Factors[1].Ref.Name)
	assert.Equal(t, "Q", out.Terms[0].Factors[2].Ref.Name)
}
