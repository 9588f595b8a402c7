//go:build !unix

package blockmem

import "unsafe"

// Off-heap mappings are unavailable here; degrade to pinned heap
// regions so Alloc/Free stay symmetric across platforms.
func mmapAlloc(n int) ([]byte, error) {
	b := make([]byte, n)
	heapMu.Lock()
	heapLive[uintptr(unsafe.Pointer(unsafe.SliceData(b)))] = b
	heapMu.Unlock()
	return b, nil
}

func mmapFree(b []byte) error {
	heapMu.Lock()
	delete(heapLive, uintptr(unsafe.Pointer(unsafe.SliceData(b))))
	heapMu.Unlock()
	return nil
}
