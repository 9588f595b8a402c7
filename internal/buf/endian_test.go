package buf

import "testing"

func TestEndianHelpers(t *testing.T) {
	data := []byte{0x01, 0x23, 0x45, 0x67}

	if got := U32LE(data); got != 0x67452301 {
		t.Fatalf("U32LE = 0x%x, want 0x67452301", got)
	}

	PutU32LE(data, 42)
	if got := U32LE(data); got != 42 {
		t.Fatalf("U32LE after PutU32LE = %d, want 42", got)
	}

	short := []byte{0xAA}
	if U32LE(short) != 0 {
		t.Fatalf("U32LE short should be 0")
	}
	PutU32LE(short, 7) // must not panic
	if short[0] != 0xAA {
		t.Fatalf("PutU32LE short should be a no-op")
	}
}
