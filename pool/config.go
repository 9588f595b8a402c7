package pool

import "os"

// Config carries construction-time options. The zero value is the
// default: heap-backed storage owned by the pool, no guard.
type Config struct {
	// Buffer, when non-nil, supplies the fixed pool's backing memory.
	// It must hold at least numBlocks * blockSize bytes. The pool does
	// not own it: the caller keeps it alive for the payload's lifetime
	// and releases it afterwards. Ignored by the dynamic pool.
	Buffer []byte

	// OffHeap places backing storage in anonymous memory mappings
	// outside the Go heap, so the collector never scans or moves it.
	// Platforms without mmap fall back to pinned heap memory.
	OffHeap bool

	// Guard poisons freed blocks and fingerprints them, panicking with
	// ErrGuardTripped when a block is modified while on the free list.
	// Debug aid for catching writes through dangling references; it
	// adds a hash per alloc/dealloc pair. Fixed pool only.
	Guard bool
}

// DefaultConfig is used when constructors receive a nil *Config.
var DefaultConfig = Config{}

// checkContracts gates the programming-error assertions (bounds,
// alignment, leak-at-close, use-after-close). Release-grade deployments
// can set POOLKIT_NO_CHECKS to trade them away, accepting undefined
// behavior on contract violations. That trade is deliberate and loud,
// never the default.
var checkContracts = os.Getenv("POOLKIT_NO_CHECKS") == ""

// logAlloc enables allocation tracing to stderr.
var logAlloc = os.Getenv("POOLKIT_LOG_ALLOC") != ""
