package incore_test

import (
	"errors"
	"testing"

	"github.com/ltensor/ltensor/internal/backend/incore"
	"github.com/ltensor/ltensor/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermuteTranspose(t *testing.T) {
	be := incore.New()
	src, _ := storage.NewDense(storage.Shape{2, 3})
	copy(src.Data(), []float64{1, 2, 3, 4, 5, 6})
	dst, _ := storage.NewDense(storage.Shape{3, 2})

	require.NoError(t, be.Permute(dst, src, []rune("ji"), []rune("ij"), 1, 0))
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, dst.Data())
}

func TestPermuteIdentityWithBeta(t *testing.T) {
	be := incore.New()
	src, _ := storage.NewDense(storage.Shape{2})
	copy(src.Data(), []float64{1, 2})
	dst, _ := storage.NewDense(storage.Shape{2})
	copy(dst.Data(), []float64{10, 20})

	require.NoError(t, be.Permute(dst, src, []rune("i"), []rune("i"), 2, 1))
	assert.Equal(t, []float64{12, 24}, dst.Data())
}

func TestPermuteRejectsNonPermutationLabels(t *testing.T) {
	be := incore.New()
	src, _ := storage.NewDense(storage.Shape{2})
	dst, _ := storage.NewDense(storage.Shape{2})

	err := be.Permute(dst, src, []rune("j"), []rune("i"), 1, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, storage.LabelMismatch))
}

func TestPermuteRejectsShapeMismatch(t *testing.T) {
	be := incore.New()
	src, _ := storage.NewDense(storage.Shape{2, 3})
	dst, _ := storage.NewDense(storage.Shape{2, 4})

	err := be.Permute(dst, src, []rune("ij"), []rune("ij"), 1, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, storage.ShapeMismatch))
}

func TestPermuteInPlaceTranspose(t *testing.T) {
	be := incore.New()
	a, _ := storage.NewDense(storage.Shape{2, 2})
	copy(a.Data(), []float64{1, 2, 3, 4})

	require.NoError(t, be.Permute(a, a, []rune("ij"), []rune("ji"), 1, 0))
	assert.Equal(t, []float64{1, 3, 2, 4}, a.Data())
}

func TestPermuteRejectsRepeatedDestinationLabel(t *testing.T) {
	be := incore.New()
	src, _ := storage.NewDense(storage.Shape{2, 2})
	dst, _ := storage.NewDense(storage.Shape{2, 2})

	err := be.Permute(dst, src, []rune("ii"), []rune("ij"), 1, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, storage.LabelMismatch))
}
