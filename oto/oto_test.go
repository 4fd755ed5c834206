package oto

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/vtrack/vtrack"
)

type counter struct {
	next float32
	fail bool
}

func (c *counter) ReadAudio(buf vtrack.AudioBuffer) error {
	if c.fail {
		return errors.New("broken")
	}
	for i := range buf {
		buf[i] = [2]float32{c.next, -c.next}
		c.next++
	}
	return nil
}

func TestSourceReaderIsContinuous(t *testing.T) {
	r := &sourceReader{source: &counter{}}
	var out []byte
	for _, size := range []int{3, 8, 13, 100, 4} {
		p := make([]byte, size)
		n, err := r.Read(p)
		if err != nil || n != size {
			t.Fatalf("Read(%d): got %d, %v", size, n, err)
		}
		out = append(out, p...)
	}
	frames := make([][2]float32, len(out)/8)
	if err := binary.Read(bytes.NewReader(out[:len(frames)*8]), binary.LittleEndian, frames); err != nil {
		t.Fatalf("decoding failed: %v", err)
	}
	for i, f := range frames {
		if f[0] != float32(i) || f[1] != -float32(i) {
			t.Fatalf("frame %d: got %v", i, f)
		}
	}
}

func TestSourceReaderError(t *testing.T) {
	r := &sourceReader{source: &counter{fail: true}}
	p := make([]byte, 16)
	if n, err := r.Read(p); n != 16 || err != nil {
		t.Fatalf("Read should keep playing silence, got %d, %v", n, err)
	}
	if r.err == nil {
		t.Fatalf("source error was not recorded")
	}
}

func TestFloatBufferToLE(t *testing.T) {
	got := FloatBufferToLE(vtrack.AudioBuffer{{1, -1}}, nil)
	want := []byte{0, 0, 0x80, 0x3f, 0, 0, 0x80, 0xbf}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % x, want % x", got, want)
	}
}
