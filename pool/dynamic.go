package pool

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/poolkit/poolkit/internal/blockmem"
)

// wordSize is the intrusive next-link footprint at the front of every
// free dynamic-pool block.
const wordSize = int(unsafe.Sizeof(uintptr(0)))

// DynPool recycles uniform-size blocks through an intrusive singly
// linked free list: a freed block's first machine word holds the base
// address of the next free block. The pool grows by allocating fresh
// blocks whenever the free list is empty, so allocation never reports
// exhaustion; Clear hands the free list back to the heap or OS.
//
// Like FixedPool it is a ref-counted handle over shared state and is
// not safe for concurrent use.
type DynPool struct {
	pl *dynPayload
}

type dynPayload struct {
	blockSize int
	offHeap   bool

	freeHead uintptr // base address of the first free block, 0 when empty
	numFree  int
	numUsed  int

	refs       int
	nonTrivial bool

	stats Stats
}

// NewDyn creates a dynamic pool of blockSize-byte blocks. The block
// size must hold at least one machine word for the free-list link.
// cfg.Buffer and cfg.Guard do not apply here.
func NewDyn(blockSize int, cfg *Config) (*DynPool, error) {
	if cfg == nil {
		cfg = &DefaultConfig
	}
	if blockSize < wordSize {
		return nil, ErrBlockSize
	}
	return &DynPool{pl: &dynPayload{
		blockSize: blockSize,
		offHeap:   cfg.OffHeap,
		refs:      1,
	}}, nil
}

// Clone returns a new handle sharing this pool's payload.
func (p *DynPool) Clone() *DynPool {
	pl := p.pl
	if checkContracts && pl.refs <= 0 {
		panic(ErrClosed)
	}
	pl.refs++
	return &DynPool{pl: pl}
}

// Close drops this handle's reference. The last Close requires every
// block to have been returned (checked-out blocks would leak their
// memory for good), then releases the free list.
func (p *DynPool) Close() error {
	pl := p.pl
	if pl.refs <= 0 {
		return ErrClosed
	}
	if pl.refs == 1 && checkContracts && pl.numUsed > 0 {
		panic(ErrOutstanding)
	}
	pl.refs--
	if pl.refs > 0 {
		return nil
	}
	return p.Clear()
}

// BlockSize returns the size of each block in bytes.
func (p *DynPool) BlockSize() int { return p.pl.blockSize }

// NumFree returns the current free-list length.
func (p *DynPool) NumFree() int { return p.pl.numFree }

// NumUsed returns the number of blocks currently checked out.
func (p *DynPool) NumUsed() int { return p.pl.numUsed }

// Stats returns a snapshot of the payload's counters.
func (p *DynPool) Stats() Stats { return p.pl.stats }

// Alloc returns a block trimmed to n bytes, 0 <= n <= BlockSize. The
// free-list head is reused when one exists; otherwise a fresh block is
// allocated, and failure to obtain one is fatal rather than a per-call
// error. The block keeps whatever it last held.
func (p *DynPool) Alloc(n int) []byte {
	pl := p.pl
	if checkContracts {
		if pl.refs <= 0 {
			panic(ErrClosed)
		}
		if n < 0 || n > pl.blockSize {
			panic(ErrLenRange)
		}
	}
	pl.stats.AllocCalls++

	var blk []byte
	if pl.freeHead != 0 {
		blk = blockmem.Reclaim(pl.freeHead, pl.blockSize)
		pl.freeHead = readLink(blk)
		pl.numFree--
	} else {
		region, err := blockmem.Alloc(pl.blockSize, pl.offHeap)
		if err != nil {
			panic(fmt.Errorf("pool: block allocation failed: %w", err))
		}
		blk = region
		pl.stats.GrowCalls++
	}
	pl.numUsed++
	if logAlloc {
		fmt.Fprintf(os.Stderr, "[pool] dyn alloc: n=%d used=%d free=%d\n", n, pl.numUsed, pl.numFree)
	}
	return blk[:n]
}

// Dealloc prepends the block to the free list and nils the caller's
// slice. Shortened views are fine: only the base address matters.
func (p *DynPool) Dealloc(block *[]byte) {
	pl := p.pl
	blk := *block
	if checkContracts {
		if pl.refs <= 0 {
			panic(ErrClosed)
		}
		if cap(blk) == 0 {
			panic(ErrForeignPointer)
		}
	}

	full := blockmem.Reclaim(blockmem.Base(blk), pl.blockSize)
	writeLink(full, pl.freeHead)
	pl.freeHead = blockmem.Base(full)
	pl.numFree++
	pl.numUsed--
	pl.stats.FreeCalls++
	*block = nil
}

// Clear releases every block on the free list back to the heap or OS
// and resets the free count. Checked-out blocks are unaffected and
// remain valid.
func (p *DynPool) Clear() error {
	pl := p.pl
	for pl.freeHead != 0 {
		blk := blockmem.Reclaim(pl.freeHead, pl.blockSize)
		pl.freeHead = readLink(blk)
		if err := blockmem.Free(blk, pl.offHeap); err != nil {
			return err
		}
		pl.numFree--
	}
	pl.numFree = 0
	return nil
}

// AllocRaw adapts Alloc to the RawAllocator contract: a full-size
// block, and growth means it never reports exhaustion.
func (p *DynPool) AllocRaw() ([]byte, bool) { return p.Alloc(p.pl.blockSize), true }

func (p *DynPool) markNonTrivial()       { p.pl.nonTrivial = true }
func (p *DynPool) offHeap() bool         { return p.pl.offHeap }
func (p *DynPool) externalBase() uintptr { return 0 }

func readLink(blk []byte) uintptr {
	return *(*uintptr)(unsafe.Pointer(unsafe.SliceData(blk)))
}

func writeLink(blk []byte, next uintptr) {
	*(*uintptr)(unsafe.Pointer(unsafe.SliceData(blk))) = next
}

var _ RawAllocator = (*DynPool)(nil)
