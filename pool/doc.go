// Package pool provides manual memory pools for fixed-size object
// reuse in latency-sensitive code that must stay off the general heap.
//
// # Overview
//
// Two engines share one philosophy: O(1) allocation and deallocation,
// free lists threaded through the unused blocks themselves, and
// ref-counted handles over shared payloads.
//
// FixedPool: one contiguous buffer of numBlocks * blockSize bytes
//
//   - Free blocks hold a 32-bit index of their successor in their
//     first 4 bytes, so the free list costs no memory of its own
//   - The chain is bootstrapped lazily, one block per allocation, so
//     construction is O(1) and never touches the buffer
//   - The buffer may be caller-supplied (the pool borrows it), heap
//     allocated, or an anonymous mapping outside the Go heap
//   - Exhaustion is an expected result: Alloc returns ok=false
//
// DynPool: uniform-size blocks on a growing intrusive free list
//
//   - A freed block's first machine word links to the next free block
//   - The pool grows from the heap or OS when the free list is empty,
//     so allocation never reports exhaustion
//   - Clear releases the free list while checked-out blocks stay valid
//
// Typed[T]: construct/destroy-on-raw-block facade over either engine,
// with an optional destructor that runs on every Free.
//
// # Usage Example
//
//	p, err := pool.NewFixed(64, 1024, nil)
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	blk, ok := p.Alloc()
//	if !ok {
//	    // every block is checked out; shed load or fall back
//	}
//	// ... use blk ...
//	p.Dealloc(&blk) // blk is nil afterwards
//
// Typed values, with a destructor counted per Free:
//
//	tp, err := pool.NewTyped[Conn](p, func(c *Conn) { c.hangup() })
//	c, ok := tp.New()
//	...
//	tp.Free(&c)
//
// # Shared Ownership
//
// A pool value is a handle. Clone returns a second handle over the
// same payload; the payload and its buffer are released by the last
// Close. Plain struct copies share the payload too but do not bump the
// reference count - use Clone when the copy has its own lifetime.
//
// # Error Handling
//
// Exhaustion is recoverable and reported via ok=false results, never
// by error or panic. Programming errors - deallocating foreign or
// misaligned memory, closing with blocks checked out, use after close
// - panic with the sentinel errors in errors.go. Setting
// POOLKIT_NO_CHECKS removes those assertions for release-grade
// latency; violations then have undefined behavior. Running out of
// backing memory during mandatory growth is fatal by design: it is
// not a transient condition worth retrying.
//
// # Off-Heap Storage
//
// With Config.OffHeap the backing memory comes from anonymous private
// mappings the Go collector never scans. That removes GC pressure for
// large pools, but types stored there must not contain Go pointers;
// NewTyped enforces this. Platforms without mmap fall back to pinned
// heap memory transparently.
//
// # Thread Safety
//
// Pools are not thread-safe and reference counts are not atomic.
// Callers needing concurrent access synchronize externally.
package pool
