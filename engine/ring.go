package engine

// RingBuffer is a generic ring buffer with buffer and a cursor. Cursor is the
// next index to be written, so the oldest value sits at Cursor and the newest
// just before it.
type RingBuffer[T any] struct {
	Buffer []T
	Cursor int
}

// WriteWrap writes values, overwriting the oldest ones. If there are more
// values than fit, only the last len(Buffer) are kept.
func (r *RingBuffer[T]) WriteWrap(values []T) {
	if len(r.Buffer) == 0 {
		return
	}
	r.Cursor = (r.Cursor + len(values)) % len(r.Buffer)
	a := min(len(values), r.Cursor)                 // how many values to copy before the cursor
	b := min(len(values)-a, len(r.Buffer)-r.Cursor) // how many values to copy to the end of the buffer
	copy(r.Buffer[r.Cursor-a:r.Cursor], values[len(values)-a:])
	copy(r.Buffer[len(r.Buffer)-b:], values[len(values)-a-b:])
}

// ReadTail copies the newest min(len(dst), len(Buffer)) values into dst,
// oldest first, and returns how many were copied.
func (r *RingBuffer[T]) ReadTail(dst []T) int {
	n := min(len(dst), len(r.Buffer))
	start := r.Cursor - n
	if start >= 0 {
		return copy(dst, r.Buffer[start:r.Cursor])
	}
	k := copy(dst, r.Buffer[len(r.Buffer)+start:])
	return k + copy(dst[k:n], r.Buffer[:r.Cursor])
}

// Resize moves the contents into buf, which becomes the new storage. buf must
// be zeroed. Growing keeps everything, oldest value at index 0, with the new
// space after it; shrinking keeps the newest len(buf) values, oldest first.
func (r *RingBuffer[T]) Resize(buf []T) {
	if len(buf) == len(r.Buffer) {
		return
	}
	if len(buf) > len(r.Buffer) {
		n := r.ReadTail(buf)
		r.Cursor = n
	} else {
		r.ReadTail(buf)
		r.Cursor = 0
	}
	r.Buffer = buf
}
