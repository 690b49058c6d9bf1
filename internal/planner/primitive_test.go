package planner_test

import (
	"testing"

	"github.com/ltensor/ltensor/internal/planner"
	"github.com/stretchr/testify/assert"
)

func TestSelectPrimitiveScalarSide(t *testing.T) {
	assert.Equal(t, planner.PrimScale, planner.SelectPrimitive(nil, []rune("ij"), []rune("ij")))
	assert.Equal(t, planner.PrimScale, planner.SelectPrimitive([]rune("ij"), nil, []rune("ij")))
	assert.Equal(t, planner.PrimScale, planner.SelectPrimitive(nil, nil, nil))
}

func TestSelectPrimitiveClassifiesGEMMOuterAndGeneral(t *testing.T) {
	assert.Equal(t, planner.PrimGEMM, planner.SelectPrimitive([]rune("ik"), []rune("kj"), []rune("ij")))
	assert.Equal(t, planner.PrimOuter, planner.SelectPrimitive([]rune("i"), []rune("j"), []rune("ij")))
	assert.Equal(t, planner.PrimGeneral, planner.SelectPrimitive([]rune("ijk"), []rune("jkl"), []rune("il")))
}

func TestSelectPrimitiveHadamardIsGeneralEvenAtRankTwo(t *testing.T) {
	// h appears in both operands and the output, so a direct GEMM is not
	// available despite every rank being 2.
	assert.Equal(t, planner.PrimGeneral, planner.SelectPrimitive([]rune("hi"), []rune("hj"), []rune("hi")))
}
