package vtrack

import "errors"

type (
	// Step is one slot of a track: a MIDI trig and a sample trig that fire
	// together.
	Step struct {
		Midi   MidiTrig
		Sample SampleTrig
	}

	// TrackPattern is the part of the Matrix belonging to one track. Level is
	// the linear gain of the track's playback voice.
	TrackPattern struct {
		Level float64
		Steps [PatternLength]Step
	}

	// InputPattern is the part of the Matrix belonging to one input channel:
	// its direct-mix gain per output channel and its latch trigs.
	InputPattern struct {
		Direct  [NumOutputs]float32
		Latches [PatternLength]LatchTrig
	}

	// Matrix is the complete trigger grid of the sequencer.
	Matrix struct {
		Tracks [NumTracks]TrackPattern
		Inputs [NumInputs]InputPattern
	}
)

var (
	ErrTrackOutOfRange = errors.New("track index out of range")
	ErrInputOutOfRange = errors.New("input channel index out of range")
	ErrStepOutOfRange  = errors.New("step index out of range")
	ErrNoteLength      = errors.New("note length must not be negative")
)

// NewMatrix returns a matrix with no trigs enabled, unity track levels and
// sample rates, and inputs mixed directly to the main output.
func NewMatrix() Matrix {
	var m Matrix
	for i := range m.Tracks {
		m.Tracks[i].Level = 1
		for s := range m.Tracks[i].Steps {
			m.Tracks[i].Steps[s].Sample.Rate = 1
		}
	}
	for i := range m.Inputs {
		for o := range m.Inputs[i].Direct {
			if o < 2 {
				m.Inputs[i].Direct[o] = 1
			}
		}
	}
	return m
}

// DefaultMatrix is the power-on pattern: a one-shot latch of input 0 on the
// first step, played back by track 0 from the top of input 0's stack.
func DefaultMatrix() Matrix {
	m := NewMatrix()
	m.Inputs[0].Latches[0] = LatchTrig{Enabled: true, OneShot: true}
	m.Tracks[0].Steps[0].Sample = SampleTrig{Enabled: true, Mode: SampleStack, Index: StackIndex(0, 0), Rate: 1}
	return m
}

// StepIndex returns the step that starts at or before the musical position
// pos, given in quarter notes.
func StepIndex(pos float64) int {
	s := int(pos*StepsPerQuarterNote) % PatternLength
	if s < 0 {
		s += PatternLength
	}
	return s
}
