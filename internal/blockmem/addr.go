// Package blockmem provides the index/address arithmetic for block
// pools and the allocation of their backing regions, on the Go heap or
// off it via anonymous memory mappings.
package blockmem

import "unsafe"

// BlockAt returns the i-th block of size blockSize inside buf.
// Pure arithmetic, no bounds checking: callers validate i first.
func BlockAt(buf []byte, i, blockSize int) []byte {
	off := i * blockSize
	return buf[off : off+blockSize : off+blockSize]
}

// Offset returns the byte distance of blk's base address from buf's
// base address. ok is false when blk does not point inside buf.
func Offset(buf, blk []byte) (uintptr, bool) {
	if len(buf) == 0 || len(blk) == 0 {
		return 0, false
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(blk)))
	if addr < base || addr >= base+uintptr(len(buf)) {
		return 0, false
	}
	return addr - base, true
}

// Index converts a block's address back to its position inside buf.
// Like BlockAt, it performs no validation of its own.
func Index(buf, blk []byte, blockSize int) int {
	off, _ := Offset(buf, blk)
	return int(off) / blockSize
}
