// Package engine is the real-time part of VTrack: it records the inputs into
// capture buffers, fires the trigs of a vtrack.Matrix at step boundaries,
// plays latched snapshots back through per-track voices and mixes everything
// to the output buses.
//
// Engine.Process runs on the audio thread. It never blocks, and apart from
// latching a snapshot it does not allocate on its own; capture buffers for a
// new tempo come from an Allocator through the Broker.
package engine

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/viterin/vek/vek32"
	"github.com/vtrack/vtrack"
)

type (
	Engine struct {
		broker   *Broker
		timeBase TimeBase
		inputs   [vtrack.NumInputs]InputChannel
		tracks   [vtrack.NumTracks]Track
		bank     *Bank
		meter    Meter
		scratch  []float32
		noteOffs []pendingNoteOff

		// captureLength is the capture buffer length the current tempo calls
		// for; the buffers have it once the allocation has been applied.
		captureLength int
	}

	pendingNoteOff struct {
		frame int // relative to the start of the next block
		event vtrack.Event
	}
)

// MaxCaptureSeconds bounds the capture buffer length, and so the slowest
// usable tempo.
const MaxCaptureSeconds = 60

// one note-off per track per step for the longest note
const maxPendingNoteOffs = vtrack.NumTracks * vtrack.PatternLength * vtrack.MaxNoteLength / vtrack.PatternLengthQN

var ErrCaptureTooLong = errors.New("capture buffer would exceed the maximum length")

// New returns an engine playing vtrack.DefaultMatrix at vtrack.DefaultTempo.
// broker may be nil, in which case tempo changes allocate in place and
// alerts are dropped.
func New(broker *Broker) *Engine {
	e := &Engine{
		broker:   broker,
		timeBase: NewTimeBase(vtrack.SampleRate, vtrack.DefaultTempo),
		noteOffs: make([]pendingNoteOff, 0, maxPendingNoteOffs),
	}
	e.captureLength = e.timeBase.PatternSamples()
	for i := range e.inputs {
		e.inputs[i].Capture.ResizeInto(make([]float32, e.captureLength))
	}
	e.LoadMatrix(vtrack.DefaultMatrix())
	return e
}

// LoadMatrix replaces the trigger grid. Voices, stacks and captured audio are
// kept.
func (e *Engine) LoadMatrix(m vtrack.Matrix) {
	for i := range e.tracks {
		e.tracks[i].Level = m.Tracks[i].Level
		e.tracks[i].Steps = m.Tracks[i].Steps
	}
	for i := range e.inputs {
		e.inputs[i].Direct = m.Inputs[i].Direct
		e.inputs[i].Latches = m.Inputs[i].Latches
	}
}

// Matrix returns a copy of the current trigger grid.
func (e *Engine) Matrix() vtrack.Matrix {
	var m vtrack.Matrix
	for i := range e.tracks {
		m.Tracks[i].Level = e.tracks[i].Level
		m.Tracks[i].Steps = e.tracks[i].Steps
	}
	for i := range e.inputs {
		m.Inputs[i].Direct = e.inputs[i].Direct
		m.Inputs[i].Latches = e.inputs[i].Latches
	}
	return m
}

// SetBank replaces the direct sample bank.
func (e *Engine) SetBank(b *Bank) { e.bank = b }

func (e *Engine) Input(i int) *InputChannel { return &e.inputs[i] }
func (e *Engine) Track(i int) *Track        { return &e.tracks[i] }
func (e *Engine) Tempo() float64            { return e.timeBase.Tempo() }

// Position is the pattern position in quarter notes.
func (e *Engine) Position() float64 { return e.timeBase.Position() }

// Step is the step at or before the pattern position.
func (e *Engine) Step() int { return vtrack.StepIndex(e.timeBase.Position()) }

// CaptureLength is the capture buffer length of the current tempo. Buffers
// may still have the previous length while an allocation is pending.
func (e *Engine) CaptureLength() int { return e.captureLength }

// Arm arms or disarms the one-shot latches of an input channel.
func (e *Engine) Arm(input int, armed bool) error {
	if input < 0 || input >= len(e.inputs) {
		return fmt.Errorf("arm input %d: %w", input, vtrack.ErrInputOutOfRange)
	}
	e.inputs[input].Armed = armed
	return nil
}

// SetTempo changes the tempo and resizes the capture buffers to one pattern.
// With a broker the new buffers are requested from the Allocator and swapped
// in by a later Process call; without one they are allocated right away. On
// error, the tempo and the buffers stay as they were.
func (e *Engine) SetTempo(bpm float64) error {
	tb := e.timeBase
	changed, err := tb.SetTempo(bpm)
	if err != nil || !changed {
		return err
	}
	n := tb.PatternSamples()
	if n > MaxCaptureSeconds*vtrack.SampleRate {
		return fmt.Errorf("%v bpm needs %d samples: %w", bpm, n, ErrCaptureTooLong)
	}
	e.timeBase = tb
	e.captureLength = n
	if e.inputs[0].Capture.Len() == n {
		return nil
	}
	if e.broker != nil && TrySend(e.broker.ToAllocator, AllocRequest{Length: n, Count: len(e.inputs)}) {
		return nil
	}
	for i := range e.inputs {
		if err := e.inputs[i].Capture.Resize(n); err != nil {
			return err
		}
	}
	return nil
}

// SendAlert sends a diagnostic to the monitor, if there is one. It never
// blocks; alerts are dropped when the queue is full.
func (e *Engine) SendAlert(name, message string, priority AlertPriority) {
	if e.broker == nil {
		return
	}
	TrySend(e.broker.ToModel, MsgToModel{Data: Alert{Name: name, Priority: priority, Message: message, Duration: defaultAlertDuration}})
}

// Process renders one block. Inputs are read from in (channels are numbered
// across buses: bus 0 holds inputs 0 and 1, and so on) and the result is
// mixed into out (outputs 0 and 1 are the main bus, 2 and 3 the cue bus).
// The block length is the shortest channel of all buses.
func (e *Engine) Process(in, out []Bus, ctx ProcessContext) {
	e.processMessages()
	for _, c := range ctx.ParamChanges() {
		e.SetParam(c.ID, c.Value)
	}
	e.syncTransport(ctx.Transport())
	frames := blockFrames(in, out)
	events := ctx.Events()
	for _, ev := range events {
		ctx.Emit(ev)
	}
	e.flushNoteOffs(frames, ctx)
	for i := range out {
		out[i].clear(frames)
	}
	if cap(e.scratch) < frames {
		e.scratch = make([]float32, frames)
	}
	t := e.timeBase.Position()
	for pos := 0; pos < frames; {
		next, step := e.timeBase.NextTriggerBoundary(t, pos)
		if next == pos {
			e.fireStep(step, t, pos, frames, ctx)
			next, _ = e.timeBase.boundaryAfter(t, pos)
			next = max(next, pos+1)
		}
		end := min(next, frames)
		if f, ok := nextEventFrame(events, pos, frames); ok {
			end = min(end, f)
		}
		e.render(in, out, pos, end-pos)
		t = e.timeBase.Advance(t, end-pos)
		pos = end
	}
	e.timeBase.position = t
	peak, changed := e.meter.Update(out, frames)
	if changed {
		ctx.PublishMeter(peak)
	}
	if e.broker != nil {
		TrySend(e.broker.ToModel, MsgToModel{HasMeter: true, Peak: peak, Position: t})
	}
}

func (e *Engine) processMessages() {
	if e.broker == nil {
		return
	}
	for {
		select {
		case msg := <-e.broker.ToEngine:
			e.handleMessage(msg)
		default:
			return
		}
	}
}

func (e *Engine) handleMessage(msg any) {
	switch m := msg.(type) {
	case Allocation:
		e.applyAllocation(m)
	case vtrack.Matrix:
		e.LoadMatrix(m)
	case *Bank:
		e.bank = m
	}
}

// Sync waits until a pending capture buffer allocation has been applied. Call
// it only while nothing else runs Process, e.g. before starting playback.
func (e *Engine) Sync(timeout time.Duration) error {
	if e.broker == nil {
		return nil
	}
	deadline := time.After(timeout)
	for e.inputs[0].Capture.Len() != e.captureLength {
		select {
		case msg := <-e.broker.ToEngine:
			if a, ok := msg.(Allocation); ok && a.Err != nil {
				return a.Err
			}
			e.handleMessage(msg)
		case <-deadline:
			return fmt.Errorf("no capture buffers of %d samples after %v", e.captureLength, timeout)
		}
	}
	return nil
}

// applyAllocation swaps in new capture buffers, unless they are for a tempo
// that has been superseded.
func (e *Engine) applyAllocation(a Allocation) {
	if a.Err != nil || a.Length != e.captureLength || len(a.Buffers) < len(e.inputs) {
		return
	}
	for i := range e.inputs {
		if e.inputs[i].Capture.Len() != a.Length {
			e.inputs[i].Capture.ResizeInto(a.Buffers[i])
		}
	}
}

func (e *Engine) syncTransport(t vtrack.Transport) {
	if t.Has(vtrack.TempoValid) {
		if err := e.SetTempo(t.Tempo); err != nil {
			e.SendAlert("TempoChange", err.Error(), Warning)
		}
	}
	if t.Has(vtrack.ProjectTimeMusicValid) {
		e.timeBase.SetPosition(t.BarPosition, t.ProjectTime)
	}
}

// blockFrames is the shortest channel length over all buses.
func blockFrames(in, out []Bus) int {
	frames := -1
	for _, buses := range [2][]Bus{in, out} {
		for i := range buses {
			if len(buses[i].Channels) == 0 {
				continue
			}
			if f := buses[i].Frames(); frames < 0 || f < frames {
				frames = f
			}
		}
	}
	return max(frames, 0)
}

// nextEventFrame returns the earliest event frame after pos. Events with a
// frame outside the block are ignored.
func nextEventFrame(events []vtrack.Event, pos, frames int) (int, bool) {
	ret, ok := frames, false
	for i := range events {
		f := events[i].Frame
		if f < 0 || f >= frames || f <= pos {
			continue
		}
		if f < ret {
			ret, ok = f, true
		}
	}
	return ret, ok
}

// fireStep evaluates all trigs of step, at sample frame of a block of length
// frames, t being the musical position of frame. Tracks go first, so a
// sample trig and a latch on the same step play the previous snapshot.
func (e *Engine) fireStep(step int, t float64, frame, frames int, ctx ProcessContext) {
	for i := range e.tracks {
		s := &e.tracks[i].Steps[step]
		if s.Midi.Enabled {
			e.emitMidi(i, s.Midi, t, frame, frames, ctx)
		}
		if s.Sample.Enabled {
			e.triggerSample(i, step, s.Sample)
		}
	}
	for i := range e.inputs {
		if snap := e.inputs[i].fireLatch(step); snap != nil && e.broker != nil {
			TrySend(e.broker.ToModel, MsgToModel{Data: Latched{Input: i, Depth: e.inputs[i].Stack.Len()}})
		}
	}
}

func (e *Engine) emitMidi(track int, trig vtrack.MidiTrig, t float64, frame, frames int, ctx ProcessContext) {
	if cc, value, ok := trig.CC(); ok {
		ctx.Emit(vtrack.Event{Kind: vtrack.ControlChangeEvent, Frame: frame, PPQ: t, Channel: track, Pitch: int(cc), Value: int(value), NoteID: vtrack.GeneratedNoteID})
		return
	}
	note, _ := trig.Note()
	length := max(int(trig.Length*e.timeBase.SamplesPerQuarterNote()), 0)
	ctx.Emit(vtrack.Event{Kind: vtrack.NoteOnEvent, Frame: frame, PPQ: t, Channel: track, Pitch: int(note), Velocity: 1, Length: length, NoteID: vtrack.GeneratedNoteID})
	off := vtrack.Event{Kind: vtrack.NoteOffEvent, Frame: frame + length, PPQ: t + trig.Length, Channel: track, Pitch: int(note), Velocity: 1, NoteID: vtrack.GeneratedNoteID}
	if off.Frame < frames {
		ctx.Emit(off)
		return
	}
	if len(e.noteOffs) == cap(e.noteOffs) {
		e.SendAlert("NoteOff", fmt.Sprintf("too many pending note offs, note %d on track %d sent early", note, track), Warning)
		off.Frame = frames - 1
		ctx.Emit(off)
		return
	}
	e.noteOffs = append(e.noteOffs, pendingNoteOff{frame: off.Frame - frames, event: off})
}

// flushNoteOffs emits the pending note offs that fall into a block of
// length frames and moves the rest one block closer.
func (e *Engine) flushNoteOffs(frames int, ctx ProcessContext) {
	kept := e.noteOffs[:0]
	for _, p := range e.noteOffs {
		if p.frame < frames {
			p.event.Frame = p.frame
			ctx.Emit(p.event)
			continue
		}
		p.frame -= frames
		kept = append(kept, p)
	}
	e.noteOffs = kept
}

func (e *Engine) triggerSample(track, step int, trig vtrack.SampleTrig) {
	v := &e.tracks[track].Voice
	if input, depth, ok := trig.StackAddress(); ok {
		if input >= len(e.inputs) {
			e.SendAlert("InvalidAddress", fmt.Sprintf("track %d step %d: input %d does not exist", track, step, input), Warning)
			return
		}
		snap, ok := e.inputs[input].Stack.At(depth)
		if !ok {
			e.SendAlert("InvalidAddress", fmt.Sprintf("track %d step %d: input %d has %d snapshots, wanted depth %d", track, step, input, e.inputs[input].Stack.Len(), depth), Warning)
			return
		}
		v.Arm(snap, trig.Rate)
		return
	}
	index, _ := trig.DirectIndex()
	if snap := e.bank.Get(index); snap != nil {
		v.Arm(snap, trig.Rate)
		return
	}
	if src := v.Source(); src != nil {
		v.Arm(src, trig.Rate)
		return
	}
	e.SendAlert("DirectSample", fmt.Sprintf("track %d step %d: no sample %d and nothing to restart", track, step, index), Warning)
}

// render records and mixes n frames starting at offset.
func (e *Engine) render(in, out []Bus, offset, n int) {
	if n <= 0 {
		return
	}
	scratch := e.scratch[:n]
	ch := 0
	for b := range in {
		for c, src := range in[b].Channels {
			if ch >= len(e.inputs) {
				break
			}
			input := &e.inputs[ch]
			seg := src[offset : offset+n]
			input.Capture.Write(seg)
			if !in[b].Silent(c) {
				for o, gain := range input.Direct {
					if gain != 0 {
						vek32.MulNumber_Into(scratch, seg, gain)
						mixInto(out, o, offset, scratch)
					}
				}
			}
			ch++
		}
	}
	for i := range e.tracks {
		tr := &e.tracks[i]
		if tr.Voice.Idle() {
			continue
		}
		if tr.Voice.Fill(scratch, float32(tr.Level)) {
			mixInto(out, 0, offset, scratch)
			mixInto(out, 1, offset, scratch)
		}
		tr.Voice.Advance(n)
	}
}

// mixInto adds src to output channel o at offset. Output channels are
// numbered across buses like the inputs.
func mixInto(out []Bus, o, offset int, src []float32) {
	for b := range out {
		if o >= len(out[b].Channels) {
			o -= len(out[b].Channels)
			continue
		}
		if !isSilent(src) {
			vek32.Add_Inplace(out[b].Channels[o][offset:offset+len(src)], src)
			out[b].Silence &^= 1 << o
		}
		return
	}
}

func isSilent(x []float32) bool {
	for _, v := range x {
		if v != 0 {
			return false
		}
	}
	return true
}

// finite reports whether v is a usable number, for values coming from hosts.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
