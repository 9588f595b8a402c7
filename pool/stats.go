package pool

// Stats holds per-payload counters, shared by every handle of a pool.
// Cheap enough to keep unconditionally; read them via Stats().
type Stats struct {
	AllocCalls int // total allocation attempts
	FreeCalls  int // total deallocations
	Exhausted  int // allocation attempts that found no free block
	GrowCalls  int // backing regions obtained from the heap or OS
}
