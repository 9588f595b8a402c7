//go:build unix

package blockmem

import "golang.org/x/sys/unix"

// mmapAlloc creates an anonymous private mapping of n bytes. The pages
// are zeroed by the kernel and invisible to the Go collector, so
// intrusive links stored inside them never need pinning.
func mmapAlloc(n int) ([]byte, error) {
	return unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

func mmapFree(b []byte) error {
	return unix.Munmap(b)
}
