package engine_test

import (
	"testing"

	"github.com/vtrack/vtrack/engine"
)

func TestHistoryStackEviction(t *testing.T) {
	var h engine.HistoryStack
	snaps := make([]*engine.Snapshot, 17)
	for i := range snaps {
		snaps[i] = engine.NewSnapshot([]float32{float32(i + 1)})
	}
	var v engine.Voice
	for i, s := range snaps {
		if i == 1 {
			v.Arm(snaps[0], 1)
		}
		evicted := h.Push(s)
		if i < 16 && evicted != nil {
			t.Fatalf("push %d evicted an entry from a stack that was not full", i)
		}
		if i == 16 && evicted != snaps[0] {
			t.Fatalf("push 16 should evict the oldest snapshot")
		}
	}
	if h.Len() != 16 {
		t.Fatalf("stack length: got %d, want 16", h.Len())
	}
	for depth := 0; depth < 16; depth++ {
		s, ok := h.At(depth)
		if !ok || s != snaps[16-depth] {
			t.Fatalf("depth %d: got %v, want snapshot %d", depth, s, 16-depth)
		}
	}
	if _, ok := h.At(16); ok {
		t.Fatalf("depth 16 should be empty")
	}
	// the evicted snapshot is still playable by the voice that holds it
	dst := make([]float32, 1)
	if v.Fill(dst, 1); dst[0] != 1 || v.Source() != snaps[0] {
		t.Fatalf("voice should still play the evicted snapshot")
	}
}

func TestNewSnapshotCopies(t *testing.T) {
	data := []float32{1, 2}
	s := engine.NewSnapshot(data)
	data[0] = 5
	if s.At(0) != 1 {
		t.Fatalf("snapshot should not alias its source")
	}
}
