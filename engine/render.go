package engine

import (
	"fmt"

	"github.com/vtrack/vtrack"
)

// Renderer drives an Engine from mono input signals, which are looped, and
// implements vtrack.AudioSource over the main output bus. It is used for
// offline rendering and for playing through a sound card.
type Renderer struct {
	Engine *Engine
	// OnEvent, if set, receives every event the engine emits, with Frame
	// counted from the start of rendering. It is called on the rendering
	// goroutine and must not block.
	OnEvent func(vtrack.Event)

	inputs    [][]float32
	cursors   []int
	blockSize int
	frame     int
	in, out   []Bus
	inStore   [][]float32
	outStore  [][]float32
	block     vtrack.AudioBuffer
	ctx       BufferContext
}

// NewRenderer prepares rendering in blocks of at most blockSize frames.
// Inputs beyond vtrack.NumInputs are ignored; missing ones are silent.
func NewRenderer(e *Engine, inputs [][]float32, blockSize int) *Renderer {
	blockSize = max(blockSize, 1)
	r := &Renderer{
		Engine:    e,
		inputs:    inputs[:min(len(inputs), vtrack.NumInputs)],
		cursors:   make([]int, vtrack.NumInputs),
		blockSize: blockSize,
		in:        make([]Bus, vtrack.NumInputs/2),
		out:       make([]Bus, vtrack.NumOutputs/2),
		inStore:   make([][]float32, vtrack.NumInputs),
		outStore:  make([][]float32, vtrack.NumOutputs),
	}
	for i := range r.inStore {
		r.inStore[i] = make([]float32, blockSize)
	}
	for i := range r.outStore {
		r.outStore[i] = make([]float32, blockSize)
	}
	for b := range r.in {
		r.in[b].Channels = make([][]float32, 2)
	}
	for b := range r.out {
		r.out[b].Channels = make([][]float32, 2)
	}
	return r
}

// Frame is the number of frames rendered so far.
func (r *Renderer) Frame() int { return r.frame }

// ReadAudio renders len(buf) frames of the main bus into buf.
func (r *Renderer) ReadAudio(buf vtrack.AudioBuffer) error {
	return r.ReadAudioCue(buf, nil)
}

// ReadAudioCue renders len(main) frames, writing the main bus into main and,
// unless cue is nil, the cue bus into cue, which must be at least as long.
func (r *Renderer) ReadAudioCue(main, cue vtrack.AudioBuffer) error {
	if cue != nil && len(cue) < len(main) {
		return fmt.Errorf("cue buffer has %d frames, need %d", len(cue), len(main))
	}
	for done := 0; done < len(main); {
		n := min(len(main)-done, r.blockSize)
		r.prepare(n)
		r.ctx.Reset()
		r.Engine.Process(r.in, r.out, &r.ctx)
		if r.OnEvent != nil {
			for _, ev := range r.ctx.Output {
				ev.Frame += r.frame
				r.OnEvent(ev)
			}
		}
		r.block = r.block.Interleave(r.out[0].Channels[0], r.out[0].Channels[1])
		copy(main[done:done+n], r.block)
		if cue != nil {
			r.block = r.block.Interleave(r.out[1].Channels[0], r.out[1].Channels[1])
			copy(cue[done:done+n], r.block)
		}
		done += n
		r.frame += n
	}
	return nil
}

func (r *Renderer) prepare(n int) {
	for ch := range r.inStore {
		dst := r.inStore[ch][:n]
		b, c := &r.in[ch/2], ch%2
		b.Channels[c] = dst
		if ch >= len(r.inputs) || len(r.inputs[ch]) == 0 {
			clear(dst)
			b.Silence |= 1 << c
			continue
		}
		b.Silence &^= 1 << c
		src := r.inputs[ch]
		for k := 0; k < n; {
			m := copy(dst[k:], src[r.cursors[ch]:])
			k += m
			r.cursors[ch] = (r.cursors[ch] + m) % len(src)
		}
	}
	for ch := range r.outStore {
		r.out[ch/2].Channels[ch%2] = r.outStore[ch][:n]
	}
}

// Render runs e over the inputs for frames samples and returns the main bus,
// the cue bus and every emitted event.
func Render(e *Engine, inputs [][]float32, frames, blockSize int) (main, cue vtrack.AudioBuffer, events []vtrack.Event) {
	r := NewRenderer(e, inputs, blockSize)
	r.OnEvent = func(ev vtrack.Event) { events = append(events, ev) }
	main = make(vtrack.AudioBuffer, frames)
	cue = make(vtrack.AudioBuffer, frames)
	r.ReadAudioCue(main, cue)
	return main, cue, events
}
