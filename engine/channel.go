package engine

import "github.com/vtrack/vtrack"

type (
	// InputChannel is the state of one mono input: what it records, what it
	// has latched, and how it is mixed to the outputs.
	InputChannel struct {
		Capture CaptureBuffer
		Stack   HistoryStack
		Armed   bool
		Direct  [vtrack.NumOutputs]float32
		Latches [vtrack.PatternLength]vtrack.LatchTrig
	}

	// Track is one sequencer lane with its playback voice.
	Track struct {
		Level float64
		Steps [vtrack.PatternLength]vtrack.Step
		Voice Voice
	}

	// Bank holds the samples addressed by direct-mode sample trigs.
	Bank [vtrack.MaxSampleIndex + 1]*Snapshot
)

// Latch freezes the capture buffer onto the history stack.
func (c *InputChannel) Latch() *Snapshot {
	s := c.Capture.Latch()
	c.Stack.Push(s)
	return s
}

// fireLatch evaluates the latch trig of step, consuming the arm state of
// one-shot latches. It returns the new snapshot or nil if nothing fired.
func (c *InputChannel) fireLatch(step int) *Snapshot {
	l := c.Latches[step]
	if !l.Enabled {
		return nil
	}
	if l.OneShot {
		if !c.Armed {
			return nil
		}
		c.Armed = false
	}
	return c.Latch()
}

// Get returns the bank entry i, or nil if it is empty or out of range.
func (b *Bank) Get(i int) *Snapshot {
	if b == nil || i < 0 || i >= len(b) {
		return nil
	}
	return b[i]
}

// NewBank builds a bank from sample data; nil entries stay empty.
func NewBank(samples [][]float32) *Bank {
	b := new(Bank)
	for i, s := range samples {
		if i >= len(b) {
			break
		}
		if s != nil {
			b[i] = NewSnapshot(s)
		}
	}
	return b
}
