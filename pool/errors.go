package pool

import "errors"

var (
	// ErrBlockSize indicates a block size below the engine's minimum
	// (4 bytes for the fixed pool, one machine word for the dynamic pool).
	ErrBlockSize = errors.New("pool: block size below minimum")

	// ErrNumBlocks indicates a block count that is not positive or does
	// not fit the 32-bit embedded-index scheme.
	ErrNumBlocks = errors.New("pool: block count outside 32-bit index range")

	// ErrSizeOverflow indicates blockSize * numBlocks does not fit in an int.
	ErrSizeOverflow = errors.New("pool: block count times block size overflows")

	// ErrBufferSize indicates a caller-supplied buffer smaller than
	// numBlocks * blockSize.
	ErrBufferSize = errors.New("pool: supplied buffer too small")

	// ErrTypeSize indicates an element type larger than the block size.
	ErrTypeSize = errors.New("pool: element type larger than block size")

	// ErrTypeAlign indicates blocks that would be misaligned for the
	// element type: a block size that is not a multiple of the type's
	// alignment, or a caller-supplied buffer whose base is not aligned
	// for it.
	ErrTypeAlign = errors.New("pool: blocks misaligned for element type")

	// ErrPointerType indicates a pointer-bearing element type on an
	// off-heap pool, whose memory the collector never scans.
	ErrPointerType = errors.New("pool: pointer-bearing type on off-heap pool")

	// ErrForeignPointer is the panic value for a deallocation of memory
	// this pool never handed out.
	ErrForeignPointer = errors.New("pool: block does not belong to this pool")

	// ErrMisaligned is the panic value for a deallocation whose address
	// is inside the buffer but not at a block boundary.
	ErrMisaligned = errors.New("pool: block not at a block-size boundary")

	// ErrLenRange is the panic value for a dynamic-pool allocation
	// request outside [0, BlockSize].
	ErrLenRange = errors.New("pool: requested length outside block size")

	// ErrOutstanding is the panic value for destroying a pool while
	// blocks are still checked out.
	ErrOutstanding = errors.New("pool: blocks still checked out at close")

	// ErrClosed reports use of a pool whose last handle was closed.
	ErrClosed = errors.New("pool: use of closed pool")

	// ErrGuardTripped is the panic value for a freed block that was
	// written while sitting on the free list.
	ErrGuardTripped = errors.New("pool: freed block was written while on the free list")
)
