// Package oto plays audio rendered on demand through the sound card.
package oto

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/vtrack/vtrack"
)

type (
	OtoContext struct {
		context *oto.Context
	}

	OtoOutput struct {
		player *oto.Player
		reader *sourceReader
	}

	// sourceReader adapts an AudioSource to the io.Reader that oto pulls
	// float32 little-endian bytes from. The source is called from the sound
	// card's goroutine.
	sourceReader struct {
		source    vtrack.AudioSource
		floatBuf  vtrack.AudioBuffer
		remainder []byte
		mu        sync.Mutex
		err       error
	}
)

const otoBufferSize = 8192 // bytes, i.e. 1024 stereo float32 frames

// NewContext opens the sound card for stereo float32 output at
// vtrack.SampleRate and waits until it is ready.
func NewContext() (*OtoContext, error) {
	context, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   vtrack.SampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   0,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &OtoContext{context: context}, nil
}

// Play starts pulling audio from source.
func (c *OtoContext) Play(source vtrack.AudioSource) vtrack.AudioOutput {
	r := &sourceReader{source: source}
	p := c.context.NewPlayer(r)
	p.SetBufferSize(otoBufferSize)
	p.Play()
	return &OtoOutput{player: p, reader: r}
}

// Suspend pauses the sound card.
func (c *OtoContext) Suspend() error {
	if err := c.context.Suspend(); err != nil {
		return fmt.Errorf("cannot suspend oto context: %w", err)
	}
	return nil
}

// Err returns the first error of the source or the player, if any.
func (o *OtoOutput) Err() error {
	o.reader.mu.Lock()
	err := o.reader.err
	o.reader.mu.Unlock()
	if err != nil {
		return err
	}
	return o.player.Err()
}

// Close stops playback.
func (o *OtoOutput) Close() error {
	if err := o.player.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	return nil
}

func (r *sourceReader) Read(p []byte) (int, error) {
	n := copy(p, r.remainder)
	r.remainder = r.remainder[n:]
	if n == len(p) {
		return n, nil
	}
	frames := (len(p) - n + 7) / 8
	if cap(r.floatBuf) < frames {
		r.floatBuf = make(vtrack.AudioBuffer, frames)
	}
	r.floatBuf = r.floatBuf[:frames]
	if err := r.source.ReadAudio(r.floatBuf); err != nil {
		r.mu.Lock()
		r.err = err
		r.mu.Unlock()
		clear(r.floatBuf)
	}
	data := FloatBufferToLE(r.floatBuf, r.remainder[:0])
	m := copy(p[n:], data)
	r.remainder = data[m:]
	return n + m, nil
}
