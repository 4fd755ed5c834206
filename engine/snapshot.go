package engine

import "github.com/vtrack/vtrack"

// Snapshot is an immutable copy of a capture buffer in chronological order.
// Snapshots are shared by pointer between history stacks, voices and the
// sample bank; one stays valid for as long as anything refers to it.
type Snapshot struct {
	samples []float32
}

// HistoryStack holds the most recent snapshots of an input channel, most
// recent first. Pushing onto a full stack drops the oldest entry.
type HistoryStack struct {
	entries [vtrack.MaxStackSize]*Snapshot
	head    int
	size    int
}

// NewSnapshot copies samples into a new snapshot.
func NewSnapshot(samples []float32) *Snapshot {
	return &Snapshot{samples: append([]float32(nil), samples...)}
}

func (s *Snapshot) Len() int { return len(s.samples) }

// At returns the sample at the truncated position pos, or 0 outside the
// snapshot.
func (s *Snapshot) At(pos float64) float32 {
	if !(pos >= 0 && pos < float64(len(s.samples))) {
		return 0
	}
	return s.samples[int(pos)]
}

// Push puts s on top of the stack and returns the entry that fell off the
// bottom, if any.
func (h *HistoryStack) Push(s *Snapshot) (evicted *Snapshot) {
	h.head = (h.head + len(h.entries) - 1) % len(h.entries)
	if h.size == len(h.entries) {
		evicted = h.entries[h.head]
	} else {
		h.size++
	}
	h.entries[h.head] = s
	return evicted
}

// At returns the snapshot depth entries below the top; 0 is the most recent.
func (h *HistoryStack) At(depth int) (*Snapshot, bool) {
	if depth < 0 || depth >= h.size {
		return nil, false
	}
	return h.entries[(h.head+depth)%len(h.entries)], true
}

func (h *HistoryStack) Len() int { return h.size }
