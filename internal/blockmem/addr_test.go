package blockmem

import "testing"

func TestBlockAtRoundTrip(t *testing.T) {
	buf := make([]byte, 16*8)
	for i := 0; i < 16; i++ {
		blk := BlockAt(buf, i, 8)
		if len(blk) != 8 {
			t.Fatalf("block %d: len = %d, want 8", i, len(blk))
		}
		off, ok := Offset(buf, blk)
		if !ok {
			t.Fatalf("block %d: Offset reported out of range", i)
		}
		if off != uintptr(i*8) {
			t.Fatalf("block %d: offset = %d, want %d", i, off, i*8)
		}
		if got := Index(buf, blk, 8); got != i {
			t.Fatalf("Index = %d, want %d", got, i)
		}
	}
}

func TestBlockAtCapped(t *testing.T) {
	buf := make([]byte, 4*8)
	blk := BlockAt(buf, 1, 8)
	if cap(blk) != 8 {
		t.Fatalf("cap = %d, want 8 (blocks must not alias their neighbors)", cap(blk))
	}
}

func TestOffsetForeign(t *testing.T) {
	buf := make([]byte, 64)
	other := make([]byte, 64)
	if _, ok := Offset(buf, other); ok {
		t.Fatal("foreign slice reported inside buf")
	}
	if _, ok := Offset(buf, nil); ok {
		t.Fatal("nil slice reported inside buf")
	}
}
