package engine

import (
	"errors"
	"fmt"
)

// CaptureBuffer continuously records one input channel, keeping exactly the
// most recent pattern's worth of samples.
type CaptureBuffer struct {
	RingBuffer[float32]
}

var ErrInvalidLength = errors.New("capture buffer length must be positive")

func (c *CaptureBuffer) Len() int { return len(c.Buffer) }

// Write records samples; only the newest Len() of them are kept.
func (c *CaptureBuffer) Write(samples []float32) {
	c.WriteWrap(samples)
}

// Resize allocates new storage of length n and moves the contents into it.
// It allocates, so the engine only calls it outside the audio path.
func (c *CaptureBuffer) Resize(n int) error {
	if n <= 0 {
		return fmt.Errorf("resize to %d: %w", n, ErrInvalidLength)
	}
	c.ResizeInto(make([]float32, n))
	return nil
}

// ResizeInto is Resize with storage supplied by the caller. buf must be
// zeroed; it is owned by the buffer afterwards.
func (c *CaptureBuffer) ResizeInto(buf []float32) {
	c.RingBuffer.Resize(buf)
}

// Latch returns a snapshot of the buffer, oldest sample first.
func (c *CaptureBuffer) Latch() *Snapshot {
	s := &Snapshot{samples: make([]float32, len(c.Buffer))}
	c.ReadTail(s.samples)
	return s
}
