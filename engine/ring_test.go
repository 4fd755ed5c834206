package engine_test

import (
	"slices"
	"testing"

	"github.com/vtrack/vtrack/engine"
)

func TestRingBufferWriteWrap(t *testing.T) {
	r := engine.RingBuffer[int]{Buffer: make([]int, 4)}
	r.WriteWrap([]int{1, 2, 3})
	r.WriteWrap([]int{4, 5})
	if want := []int{5, 2, 3, 4}; !slices.Equal(r.Buffer, want) {
		t.Fatalf("buffer: got %v, want %v", r.Buffer, want)
	}
	if r.Cursor != 1 {
		t.Fatalf("cursor: got %d, want 1", r.Cursor)
	}
	got := make([]int, 4)
	r.ReadTail(got)
	if want := []int{2, 3, 4, 5}; !slices.Equal(got, want) {
		t.Fatalf("chronological: got %v, want %v", got, want)
	}
	got = got[:2]
	r.ReadTail(got)
	if want := []int{4, 5}; !slices.Equal(got, want) {
		t.Fatalf("tail: got %v, want %v", got, want)
	}
}

func TestRingBufferWriteMoreThanCapacity(t *testing.T) {
	r := engine.RingBuffer[int]{Buffer: make([]int, 3)}
	r.WriteWrap([]int{1, 2, 3, 4, 5})
	got := make([]int, 3)
	r.ReadTail(got)
	if want := []int{3, 4, 5}; !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestRingBufferResize(t *testing.T) {
	tests := []struct {
		name       string
		length     int
		wantBuffer []int
		wantCursor int
	}{
		{"grow", 6, []int{2, 3, 4, 5, 0, 0}, 4},
		{"shrink", 3, []int{3, 4, 5}, 0},
		{"same", 4, []int{5, 2, 3, 4}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := engine.RingBuffer[int]{Buffer: []int{5, 2, 3, 4}, Cursor: 1}
			r.Resize(make([]int, tt.length))
			if !slices.Equal(r.Buffer, tt.wantBuffer) {
				t.Fatalf("buffer: got %v, want %v", r.Buffer, tt.wantBuffer)
			}
			if r.Cursor != tt.wantCursor {
				t.Fatalf("cursor: got %d, want %d", r.Cursor, tt.wantCursor)
			}
		})
	}
}
