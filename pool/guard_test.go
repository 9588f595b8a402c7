package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_CleanRoundTrip(t *testing.T) {
	p, err := NewFixed(32, 4, &Config{Guard: true})
	require.NoError(t, err)
	defer p.Close()

	blk, ok := p.Alloc()
	require.True(t, ok)
	p.Dealloc(&blk)

	// Untouched free block verifies and comes back.
	again, ok := p.Alloc()
	require.True(t, ok)
	p.Dealloc(&again)
}

func TestGuard_DetectsDanglingWrite(t *testing.T) {
	p, err := NewFixed(32, 4, &Config{Guard: true})
	require.NoError(t, err)
	defer p.Close()

	blk, ok := p.Alloc()
	require.True(t, ok)
	dangling := blk // survives the Dealloc below
	p.Dealloc(&blk)

	// A write through the stale reference scribbles over the
	// poisoned free block.
	dangling[20] = 0x01

	assert.PanicsWithValue(t, ErrGuardTripped, func() { p.Alloc() })
}

func TestGuard_PoisonsFreedBlocks(t *testing.T) {
	p, err := NewFixed(16, 2, &Config{Guard: true})
	require.NoError(t, err)
	defer p.Close()

	blk, ok := p.Alloc()
	require.True(t, ok)
	view := blk
	for i := range blk {
		blk[i] = 0xFF
	}
	p.Dealloc(&blk)

	for i := MinBlockSize; i < len(view); i++ {
		require.Equal(t, byte(poisonByte), view[i],
			"freed block contents past the embedded index are poisoned")
	}
}

func TestGuard_FrontierBlocksPass(t *testing.T) {
	p, err := NewFixed(16, 8, &Config{Guard: true})
	require.NoError(t, err)
	defer p.Close()

	// Blocks that were never freed carry no fingerprint and must not
	// trip the guard on their first allocation.
	for i := 0; i < 8; i++ {
		_, ok := p.Alloc()
		require.True(t, ok)
	}
}
