package recycle

import (
	"testing"
)

func TestAddIgnoresZeroHandles(t *testing.T) {
	b := NewBin()
	b.AddProgram(0)
	b.AddShader(0)
	b.AddBuffer(0)
	b.AddTexture(0)
	if b.Pending() != 0 {
		t.Fatalf("zero handles must not be queued, pending=%d", b.Pending())
	}
}

func TestPendingCountsAllCategories(t *testing.T) {
	b := NewBin()
	b.AddProgram(1)
	b.AddShader(2)
	b.AddBuffer(3)
	b.AddBuffer(4)
	b.AddTexture(5)
	if b.Pending() != 5 {
		t.Fatalf("pending=%d, want 5", b.Pending())
	}
}

func TestFlushEmptyBinIsSafeWithoutContext(t *testing.T) {
	// An empty bin makes no GL calls, so flushing must work even when
	// no context has ever been current.
	b := NewBin()
	b.Flush()
	if b.Pending() != 0 {
		t.Fatalf("pending=%d, want 0", b.Pending())
	}
}
