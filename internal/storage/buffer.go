package storage

import "sync/atomic"

// buffer is a reference-counted owner of a flat float64 slice. Multiple
// Dense handles may share one buffer; it is released (eligible for GC) when
// the last handle drops, matching the Tensor lifecycle in the data model:
// "storage is destroyed when the last handle drops".
type buffer struct {
	data     []float64
	refCount atomic.Int32
}

func newBuffer(size int) *buffer {
	b := &buffer{data: make([]float64, size)}
	b.refCount.Store(1)
	return b
}

func (b *buffer) addRef() {
	b.refCount.Add(1)
}

func (b *buffer) release() {
	if b.refCount.Add(-1) == 0 {
		b.data = nil
	}
}

func (b *buffer) isUnique() bool {
	return b.refCount.Load() == 1
}
