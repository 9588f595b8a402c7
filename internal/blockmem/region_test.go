package blockmem

import "testing"

func TestAllocHeap(t *testing.T) {
	b, err := Alloc(4096, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 4096 {
		t.Fatalf("len = %d, want 4096", len(b))
	}
	for i, c := range b {
		if c != 0 {
			t.Fatalf("byte %d not zeroed", i)
		}
	}
	heapMu.Lock()
	_, pinned := heapLive[Base(b)]
	heapMu.Unlock()
	if !pinned {
		t.Fatal("heap region not pinned")
	}
	if err := Free(b, false); err != nil {
		t.Fatal(err)
	}
	heapMu.Lock()
	_, pinned = heapLive[Base(b)]
	heapMu.Unlock()
	if pinned {
		t.Fatal("heap region still pinned after Free")
	}
}

func TestAllocOffHeap(t *testing.T) {
	b, err := Alloc(8192, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 8192 {
		t.Fatalf("len = %d, want 8192", len(b))
	}
	// Touch every page before releasing.
	for i := range b {
		b[i] = 0xA5
	}
	if err := Free(b, true); err != nil {
		t.Fatal(err)
	}
}

func TestAllocRejectsBadSize(t *testing.T) {
	if _, err := Alloc(0, false); err == nil {
		t.Fatal("expected error for zero size")
	}
	if _, err := Alloc(-1, true); err == nil {
		t.Fatal("expected error for negative size")
	}
}

func TestReclaim(t *testing.T) {
	b, err := Alloc(64, false)
	if err != nil {
		t.Fatal(err)
	}
	defer Free(b, false)

	b[0] = 0x7F
	again := Reclaim(Base(b), 64)
	if len(again) != 64 || again[0] != 0x7F {
		t.Fatal("Reclaim did not rebuild the original region")
	}
}
