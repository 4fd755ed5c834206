package engine_test

import (
	"errors"
	"testing"

	"github.com/vtrack/vtrack/engine"
)

func TestCaptureLatchIsChronological(t *testing.T) {
	var c engine.CaptureBuffer
	if err := c.Resize(4); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	c.Write([]float32{1, 2, 3})
	c.Write([]float32{4, 5, 6})
	s := c.Latch()
	c.Write([]float32{7, 8})
	if s.Len() != 4 {
		t.Fatalf("snapshot length: got %d, want 4", s.Len())
	}
	for i, want := range []float32{3, 4, 5, 6} {
		if got := s.At(float64(i)); got != want {
			t.Fatalf("snapshot[%d]: got %v, want %v", i, got, want)
		}
	}
	for _, pos := range []float64{-1, 4, 1e12} {
		if got := s.At(pos); got != 0 {
			t.Fatalf("snapshot.At(%v): got %v, want 0", pos, got)
		}
	}
	if got := s.At(2.9); got != 5 {
		t.Fatalf("snapshot.At(2.9) should truncate: got %v, want 5", got)
	}
}

func TestCaptureResizeKeepsNewestSamples(t *testing.T) {
	var c engine.CaptureBuffer
	c.Resize(5)
	c.Write([]float32{1, 2, 3, 4, 5, 6, 7})
	if err := c.Resize(8); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if c.Cursor != 5 {
		t.Fatalf("cursor after grow: got %d, want 5", c.Cursor)
	}
	for i, want := range []float32{3, 4, 5, 6, 7, 0, 0, 0} {
		if c.Buffer[i] != want {
			t.Fatalf("buffer[%d] after grow: got %v, want %v", i, c.Buffer[i], want)
		}
	}
	c.Resize(2)
	if c.Cursor != 0 || c.Buffer[0] != 6 || c.Buffer[1] != 7 {
		t.Fatalf("after shrink: got %v cursor %d, want [6 7] cursor 0", c.Buffer, c.Cursor)
	}
}

func TestCaptureResizeInvalid(t *testing.T) {
	var c engine.CaptureBuffer
	c.Resize(3)
	c.Write([]float32{1, 2, 3})
	if err := c.Resize(0); !errors.Is(err, engine.ErrInvalidLength) {
		t.Fatalf("Resize(0): got %v, want ErrInvalidLength", err)
	}
	if c.Len() != 3 || c.Buffer[2] != 3 {
		t.Fatalf("failed resize should keep the buffer, got %v", c.Buffer)
	}
}
