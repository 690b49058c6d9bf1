package distributed_test

import (
	"errors"
	"testing"

	"github.com/ltensor/ltensor/internal/backend/distributed"
	"github.com/ltensor/ltensor/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindIsDistributed(t *testing.T) {
	be := distributed.New()
	assert.Equal(t, storage.Distributed, be.Kind())
}

func TestBufferUnsupported(t *testing.T) {
	be := distributed.New()
	d, err := be.Alloc(storage.Shape{2})
	require.NoError(t, err)

	_, err = be.Buffer(d)
	require.Error(t, err)
	assert.True(t, errors.Is(err, storage.BackendUnsupported))
}

func TestDiagonalDelegatesToIncore(t *testing.T) {
	be := distributed.New()
	a, _ := be.Alloc(storage.Shape{2, 2})
	copy(a.Data(), []float64{1, 2, 3, 4})
	dst, _ := be.Alloc(storage.Shape{})

	require.NoError(t, be.Diagonal(dst, a, nil, []rune("ii"), 1, 0))
	assert.InDelta(t, 5.0, dst.Data()[0], 1e-12)
}
