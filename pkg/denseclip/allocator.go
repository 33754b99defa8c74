package denseclip

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrUnknownBuffer is returned when a buffer is released to an allocator that
// does not currently own it.
var ErrUnknownBuffer = errors.New("buffer not owned by allocator")

// Allocator hands out fixed-size float32 arrays for sample storage.
//
// Implementations must be comparable (normally pointer types): a DenseClip
// compares the allocator passed to Destroy with the one that created it.
type Allocator interface {
	// Allocate returns a slice of length n. Contents are not guaranteed to be zero.
	Allocate(n int) []float32
	// Deallocate returns a slice obtained from Allocate.
	Deallocate(buf []float32) error
}

// HeapAllocator allocates directly from the Go heap and counts live buffers.
type HeapAllocator struct {
	live atomic.Int64
}

// NewHeapAllocator returns a HeapAllocator.
func NewHeapAllocator() *HeapAllocator {
	return &HeapAllocator{}
}

// Allocate returns a new zeroed slice of length n.
func (a *HeapAllocator) Allocate(n int) []float32 {
	a.live.Add(1)
	return make([]float32, n)
}

// Deallocate drops the buffer. The memory is reclaimed by the garbage collector.
func (a *HeapAllocator) Deallocate(buf []float32) error {
	if a.live.Add(-1) < 0 {
		a.live.Add(1)
		return ErrUnknownBuffer
	}
	return nil
}

// Live returns the number of buffers handed out and not yet returned.
func (a *HeapAllocator) Live() int {
	return int(a.live.Load())
}

// PoolAllocator recycles sample arrays through a sync.Pool to reduce GC
// pressure when clips are baked and discarded repeatedly, e.g. while an editor
// re-bakes a clip on every change.
//
// Recycled buffers keep their previous contents.
type PoolAllocator struct {
	pool sync.Pool

	mu   sync.Mutex
	live map[*float32]struct{}
}

// NewPoolAllocator returns a PoolAllocator ready for use.
func NewPoolAllocator() *PoolAllocator {
	return &PoolAllocator{
		pool: sync.Pool{
			New: func() any {
				return new([]float32)
			},
		},
		live: make(map[*float32]struct{}),
	}
}

// Allocate returns a slice of length n, reusing pooled capacity when possible.
func (a *PoolAllocator) Allocate(n int) []float32 {
	if n <= 0 {
		return nil
	}
	p := a.pool.Get().(*[]float32)
	buf := *p
	if cap(buf) < n {
		buf = make([]float32, n)
	}
	buf = buf[:n]

	a.mu.Lock()
	a.live[&buf[0]] = struct{}{}
	a.mu.Unlock()
	return buf
}

// Deallocate returns buf to the pool. The caller must not use buf afterwards.
func (a *PoolAllocator) Deallocate(buf []float32) error {
	if len(buf) == 0 {
		return nil
	}

	a.mu.Lock()
	key := &buf[0]
	if _, ok := a.live[key]; !ok {
		a.mu.Unlock()
		return ErrUnknownBuffer
	}
	delete(a.live, key)
	a.mu.Unlock()

	a.pool.Put(&buf)
	return nil
}

// Live returns the number of buffers handed out and not yet returned.
func (a *PoolAllocator) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}
