package buf

import (
	"math"
	"testing"
)

func TestMulOverflowSafe(t *testing.T) {
	if v, ok := MulOverflowSafe(64, 1024); !ok || v != 65536 {
		t.Fatalf("MulOverflowSafe(64,1024) = %d,%v", v, ok)
	}
	if v, ok := MulOverflowSafe(0, math.MaxInt); !ok || v != 0 {
		t.Fatalf("MulOverflowSafe(0,max) = %d,%v", v, ok)
	}
	if _, ok := MulOverflowSafe(math.MaxInt, 2); ok {
		t.Fatal("expected overflow")
	}
	if _, ok := MulOverflowSafe(math.MaxInt/2+1, 2); ok {
		t.Fatal("expected overflow")
	}
}
