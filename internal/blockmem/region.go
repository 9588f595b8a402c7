package blockmem

import (
	"errors"
	"sync"
	"unsafe"
)

// ErrRegionSize indicates a non-positive region size request.
var ErrRegionSize = errors.New("blockmem: region size must be positive")

// heapLive pins heap-allocated regions while pools reference them only
// through intrusive links the collector cannot see. Process-global and
// mutex-guarded because unrelated pools share it.
var (
	heapMu   sync.Mutex
	heapLive = make(map[uintptr][]byte)
)

// Alloc returns a zeroed region of n bytes. When offHeap is set the
// region is an anonymous private mapping outside the Go heap (see
// region_unix.go); otherwise it comes from the heap and is pinned in
// heapLive until Free.
func Alloc(n int, offHeap bool) ([]byte, error) {
	if n <= 0 {
		return nil, ErrRegionSize
	}
	if offHeap {
		return mmapAlloc(n)
	}
	b := make([]byte, n)
	heapMu.Lock()
	heapLive[uintptr(unsafe.Pointer(unsafe.SliceData(b)))] = b
	heapMu.Unlock()
	return b, nil
}

// Free releases a region previously returned by Alloc with the same
// offHeap flag. Heap regions are unpinned and left to the collector.
func Free(b []byte, offHeap bool) error {
	if len(b) == 0 {
		return nil
	}
	if offHeap {
		return mmapFree(b)
	}
	heapMu.Lock()
	delete(heapLive, uintptr(unsafe.Pointer(unsafe.SliceData(b))))
	heapMu.Unlock()
	return nil
}

// Reclaim rebuilds the full-length slice for a region from its base
// address. Only valid for addresses of regions currently held by a
// pool (pinned in heapLive or mapped off-heap).
func Reclaim(base uintptr, n int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(base)), n)
}

// Base returns the address of b's first byte.
func Base(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}
