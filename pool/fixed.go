package pool

import (
	"fmt"
	"math"
	"os"

	"github.com/poolkit/poolkit/internal/blockmem"
	"github.com/poolkit/poolkit/internal/buf"
)

// MinBlockSize is the smallest usable fixed-pool block. Free blocks
// store a 32-bit index of their successor in their leading bytes, so
// anything smaller cannot sit on the free chain.
const MinBlockSize = 4

// noFree marks an empty free chain.
const noFree = -1

// FixedPool hands out and reclaims fixed-size blocks from one
// contiguous buffer. Both operations are O(1): free blocks double as
// free-list nodes by holding the index of their successor in their
// first 4 bytes, and the chain is bootstrapped lazily one block per
// allocation, so construction never touches the buffer.
//
// A FixedPool value is a handle. Clone shares the payload (buffer,
// free chain, counters) and Close drops one reference; the payload is
// released with the last handle. Not safe for concurrent use.
type FixedPool struct {
	pl *fixedPayload
}

// fixedPayload is the shared mutable state behind one family of handles.
type fixedPayload struct {
	blockSize int
	numBlocks int

	data     []byte // nil until first use
	external []byte // caller-supplied backing memory, adopted lazily
	owned    bool   // release data on final Close
	offHeap  bool

	nextFree int32 // index of the free-chain head, noFree when empty
	numFree  int
	numInit  int // lazy-initialization frontier

	refs       int
	nonTrivial bool // a typed facade with a destructor is attached
	guard      *guardState

	stats Stats
}

// NewFixed creates a pool of numBlocks blocks of blockSize bytes each.
// No backing storage is touched until the first allocation.
//
// Free blocks name their successor by a 32-bit embedded index and the
// block count itself doubles as the chain-end sentinel, so numBlocks
// is capped at math.MaxInt32.
//
// When cfg.Buffer is set it becomes the backing storage and the caller
// keeps ownership; otherwise the pool allocates (and zeroes) its own
// buffer on first use, off-heap when cfg.OffHeap is set.
func NewFixed(blockSize, numBlocks int, cfg *Config) (*FixedPool, error) {
	if cfg == nil {
		cfg = &DefaultConfig
	}
	if blockSize < MinBlockSize {
		return nil, ErrBlockSize
	}
	if numBlocks < 1 || numBlocks > math.MaxInt32 {
		return nil, ErrNumBlocks
	}
	need, ok := buf.MulOverflowSafe(blockSize, numBlocks)
	if !ok {
		return nil, ErrSizeOverflow
	}
	if cfg.Buffer != nil && len(cfg.Buffer) < need {
		return nil, ErrBufferSize
	}

	pl := &fixedPayload{
		blockSize: blockSize,
		numBlocks: numBlocks,
		external:  cfg.Buffer,
		owned:     cfg.Buffer == nil,
		offHeap:   cfg.OffHeap,
		nextFree:  0,
		numFree:   numBlocks,
		refs:      1,
	}
	if cfg.Guard {
		pl.guard = newGuardState(numBlocks)
	}
	return &FixedPool{pl: pl}, nil
}

// Clone returns a new handle sharing this pool's payload. Allocations
// through either handle draw from the same blocks.
func (p *FixedPool) Clone() *FixedPool {
	pl := p.pl
	if checkContracts && pl.refs <= 0 {
		panic(ErrClosed)
	}
	pl.refs++
	return &FixedPool{pl: pl}
}

// Close drops this handle's reference. The last Close releases owned
// backing storage. Closing while blocks are checked out of a pool
// whose elements carry a destructor is a contract violation: those
// values would leak whatever their destructor releases.
func (p *FixedPool) Close() error {
	pl := p.pl
	if pl.refs <= 0 {
		return ErrClosed
	}
	if pl.refs == 1 && checkContracts && pl.nonTrivial && pl.numFree != pl.numBlocks {
		panic(ErrOutstanding)
	}
	pl.refs--
	if pl.refs > 0 {
		return nil
	}
	var err error
	if pl.data != nil && pl.owned {
		err = blockmem.Free(pl.data, pl.offHeap)
	}
	pl.data = nil
	pl.external = nil
	return err
}

// Capacity returns the number of blocks currently free. Before the
// pool materializes its storage this is the full block count.
func (p *FixedPool) Capacity() int { return p.pl.numFree }

// NumBlocks returns the total block count.
func (p *FixedPool) NumBlocks() int { return p.pl.numBlocks }

// BlockSize returns the size of each block in bytes.
func (p *FixedPool) BlockSize() int { return p.pl.blockSize }

// Stats returns a snapshot of the payload's counters.
func (p *FixedPool) Stats() Stats { return p.pl.stats }

// materialize adopts the external buffer or allocates an owned one.
// Failure to obtain mandatory backing memory is fatal, not a
// per-call error: there is nothing useful a caller can do with it.
func (pl *fixedPayload) materialize() {
	if pl.external != nil {
		pl.data = pl.external[:pl.numBlocks*pl.blockSize]
		return
	}
	region, err := blockmem.Alloc(pl.numBlocks*pl.blockSize, pl.offHeap)
	if err != nil {
		panic(fmt.Errorf("pool: backing allocation failed: %w", err))
	}
	pl.data = region
	pl.stats.GrowCalls++
}

// Alloc hands out one raw block, or (nil, false) when every block is
// checked out. Exhaustion is an expected outcome, never a panic. The
// block keeps whatever it last held; callers wanting construction use
// the typed facade.
func (p *FixedPool) Alloc() ([]byte, bool) {
	pl := p.pl
	if checkContracts && pl.refs <= 0 {
		panic(ErrClosed)
	}
	pl.stats.AllocCalls++

	if pl.data == nil {
		pl.materialize()
	}

	// Extend the implicit free chain by one block per call: the
	// frontier block learns its successor's index only the first time
	// the allocator reaches it.
	if pl.numInit < pl.numBlocks {
		frontier := blockmem.BlockAt(pl.data, pl.numInit, pl.blockSize)
		buf.PutU32LE(frontier, uint32(pl.numInit+1))
		pl.numInit++
	}

	if pl.numFree == 0 {
		pl.stats.Exhausted++
		return nil, false
	}

	blk := blockmem.BlockAt(pl.data, int(pl.nextFree), pl.blockSize)
	if pl.guard != nil {
		pl.guard.verify(int(pl.nextFree), blk)
	}
	if logAlloc {
		fmt.Fprintf(os.Stderr, "[pool] fixed alloc: block=%d free=%d\n", pl.nextFree, pl.numFree-1)
	}

	pl.numFree--
	if pl.numFree > 0 {
		pl.nextFree = int32(buf.U32LE(blk))
	} else {
		pl.nextFree = noFree
	}
	return blk, true
}

// Dealloc returns a block to the pool and nils the caller's slice so a
// stale reference fails fast instead of aliasing the free chain.
//
// The block must have come from this pool: out-of-bounds or misaligned
// memory is a programming error reported by panicking with
// ErrForeignPointer or ErrMisaligned (skipped under POOLKIT_NO_CHECKS,
// where violations are undefined behavior).
func (p *FixedPool) Dealloc(block *[]byte) {
	pl := p.pl
	blk := *block
	if checkContracts {
		if pl.refs <= 0 {
			panic(ErrClosed)
		}
		off, ok := blockmem.Offset(pl.data, blk)
		if !ok {
			panic(ErrForeignPointer)
		}
		if off%uintptr(pl.blockSize) != 0 {
			panic(ErrMisaligned)
		}
	}

	idx := blockmem.Index(pl.data, blk, pl.blockSize)
	// Callers may hand back a shortened view; relink the full block.
	full := blockmem.BlockAt(pl.data, idx, pl.blockSize)

	next := uint32(pl.numBlocks) // sentinel: chain ends here
	if pl.nextFree != noFree {
		next = uint32(pl.nextFree)
	}
	buf.PutU32LE(full, next)
	if pl.guard != nil {
		pl.guard.arm(idx, full)
	}
	if logAlloc {
		fmt.Fprintf(os.Stderr, "[pool] fixed free: block=%d free=%d\n", idx, pl.numFree+1)
	}

	pl.nextFree = int32(idx)
	pl.numFree++
	pl.stats.FreeCalls++
	*block = nil
}

// AllocRaw adapts Alloc to the RawAllocator contract.
func (p *FixedPool) AllocRaw() ([]byte, bool) { return p.Alloc() }

func (p *FixedPool) markNonTrivial() { p.pl.nonTrivial = true }
func (p *FixedPool) offHeap() bool   { return p.pl.offHeap }

func (p *FixedPool) externalBase() uintptr {
	if p.pl.external == nil {
		return 0
	}
	return blockmem.Base(p.pl.external)
}

var _ RawAllocator = (*FixedPool)(nil)
