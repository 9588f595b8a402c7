package pool

import "github.com/cespare/xxhash/v2"

// poisonByte fills freed blocks past their embedded next index.
const poisonByte = 0xA5

// guardState fingerprints freed blocks so that writes through dangling
// references surface at the next reuse instead of as silent free-chain
// corruption.
type guardState struct {
	sums map[int]uint64 // block index -> hash of the poisoned block
}

func newGuardState(numBlocks int) *guardState {
	return &guardState{sums: make(map[int]uint64, numBlocks)}
}

// arm poisons blk past its 4-byte next index and records the block's
// fingerprint. The index bytes are covered too: nothing rewrites them
// while the block sits on the chain.
func (g *guardState) arm(idx int, blk []byte) {
	for i := MinBlockSize; i < len(blk); i++ {
		blk[i] = poisonByte
	}
	g.sums[idx] = xxhash.Sum64(blk)
}

// verify checks a block coming off the free chain against its recorded
// fingerprint. Blocks that were never deallocated (the lazy frontier)
// carry none and pass.
func (g *guardState) verify(idx int, blk []byte) {
	sum, ok := g.sums[idx]
	if !ok {
		return
	}
	delete(g.sums, idx)
	if xxhash.Sum64(blk) != sum {
		panic(ErrGuardTripped)
	}
}
