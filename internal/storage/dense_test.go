package storage_test

import (
	"errors"
	"testing"

	"github.com/ltensor/ltensor/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDenseZeroInitialized(t *testing.T) {
	d, err := storage.NewDense(storage.Shape{2, 3})
	require.NoError(t, err)
	assert.Equal(t, 2, d.Rank())
	assert.Equal(t, 6, d.NumElements())
	for _, v := range d.Data() {
		assert.Equal(t, 0.0, v)
	}
}

func TestNewDenseNegativeExtent(t *testing.T) {
	_, err := storage.NewDense(storage.Shape{-1, 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, storage.ShapeMismatch))
}

func TestDenseScale(t *testing.T) {
	d, err := storage.NewDense(storage.Shape{3})
	require.NoError(t, err)
	copy(d.Data(), []float64{1, 2, 3})
	d.Scale(2)
	assert.Equal(t, []float64{2, 4, 6}, d.Data())
}

func TestDenseCopy(t *testing.T) {
	src, _ := storage.NewDense(storage.Shape{2})
	copy(src.Data(), []float64{1, 2})
	dst, _ := storage.NewDense(storage.Shape{2})

	require.NoError(t, dst.Copy(src, 0.5))
	assert.Equal(t, []float64{0.5, 1}, dst.Data())
}

func TestDenseCopyShapeMismatch(t *testing.T) {
	src, _ := storage.NewDense(storage.Shape{2})
	dst, _ := storage.NewDense(storage.Shape{3})
	err := dst.Copy(src, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, storage.ShapeMismatch))
}

func TestDenseNorm(t *testing.T) {
	d, _ := storage.NewDense(storage.Shape{3})
	copy(d.Data(), []float64{-3, 4, 0})

	assert.InDelta(t, 4.0, d.Norm(0), 1e-12)
	assert.InDelta(t, 7.0, d.Norm(1), 1e-12)
	assert.InDelta(t, 5.0, d.Norm(2), 1e-12)
}

func TestDenseDot(t *testing.T) {
	a, _ := storage.NewDense(storage.Shape{3})
	copy(a.Data(), []float64{1, 2, 3})
	b, _ := storage.NewDense(storage.Shape{3})
	copy(b.Data(), []float64{4, 5, 6})

	got, err := a.Dot(b)
	require.NoError(t, err)
	assert.InDelta(t, 32.0, got, 1e-12)
}

func TestDensePointwise(t *testing.T) {
	a, _ := storage.NewDense(storage.Shape{2})
	copy(a.Data(), []float64{2, 6})
	b, _ := storage.NewDense(storage.Shape{2})
	copy(b.Data(), []float64{3, 3})

	require.NoError(t, a.PointwiseMultiply(b))
	assert.Equal(t, []float64{6, 18}, a.Data())

	require.NoError(t, a.PointwiseDivide(b))
	assert.InDeltaSlice(t, []float64{2, 6}, a.Data(), 1e-12)
}

func TestDenseCloneIsIndependent(t *testing.T) {
	d, _ := storage.NewDense(storage.Shape{2})
	copy(d.Data(), []float64{1, 2})

	c := d.Clone()
	c.Data()[0] = 99

	assert.Equal(t, 1.0, d.Data()[0])
	assert.Equal(t, 99.0, c.Data()[0])
}

func TestDenseRefCounting(t *testing.T) {
	d, _ := storage.NewDense(storage.Shape{1})
	assert.True(t, d.IsUnique())
	d.AddRef()
	assert.False(t, d.IsUnique())
	d.Release()
	assert.True(t, d.IsUnique())
}
