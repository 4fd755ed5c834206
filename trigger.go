package vtrack

import (
	"fmt"
	"math"
)

type (
	// MidiKind tells how the payload byte of a MidiTrig is interpreted.
	MidiKind uint8

	// MidiTrig is the MIDI half of a step: either a note with a length, or a
	// control change. Value holds the note number or the controller number
	// depending on Kind; use Note and CC to read it.
	MidiTrig struct {
		Enabled bool
		Kind    MidiKind
		Value   uint8
		CCValue uint8
		Length  float64 // in quarter notes
	}

	// SampleMode tells how the Index of a SampleTrig is interpreted.
	SampleMode uint8

	// SampleTrig is the audio half of a step. In SampleStack mode Index is a
	// composite of input channel and stack depth (see StackIndex); in
	// SampleDirect mode it addresses the direct sample bank. Rate is relative
	// to the original pitch; there is no interpolation.
	SampleTrig struct {
		Enabled bool
		Mode    SampleMode
		Index   uint8
		Rate    float64
	}

	// LatchTrig freezes the capture buffer of an input channel onto its
	// history stack. A one-shot latch fires only while the channel is armed,
	// and disarms it.
	LatchTrig struct {
		Enabled bool
		OneShot bool
	}
)

const (
	MidiNote MidiKind = iota
	MidiCC
)

const (
	SampleDirect SampleMode = iota
	SampleStack
)

// StackIndex builds a composite stack index addressing depth on input.
func StackIndex(input, depth int) uint8 {
	return uint8(input*MaxStackSize + depth)
}

// Note returns the note number, ok is false for CC trigs.
func (t MidiTrig) Note() (note uint8, ok bool) {
	return t.Value, t.Kind == MidiNote
}

// CC returns the controller number and value, ok is false for note trigs.
func (t MidiTrig) CC() (cc, value uint8, ok bool) {
	return t.Value, t.CCValue, t.Kind == MidiCC
}

// SetParam updates the trig from a normalized parameter value and reports if
// the parameter type belongs to MIDI trigs.
func (t *MidiTrig) SetParam(typ ParamType, value float64) bool {
	switch typ {
	case ParamMidiTrigEnable:
		t.Enabled = value > 0.5
	case ParamMidiTrigNote:
		t.Value = uint8(IntParam(value, 255))
	case ParamMidiTrigLength:
		t.Length = IntParam(value, MaxNoteLength)
	case ParamMidiTrigCC:
		t.Kind = MidiNote
		if value > 0.5 {
			t.Kind = MidiCC
		}
	case ParamMidiTrigCCValue:
		t.CCValue = uint8(IntParam(value, 127))
	default:
		return false
	}
	return true
}

// StackAddress decodes the composite index of a stack-mode trig.
func (t SampleTrig) StackAddress() (input, depth int, ok bool) {
	if t.Mode != SampleStack {
		return 0, 0, false
	}
	return int(t.Index) / MaxStackSize, int(t.Index) % MaxStackSize, true
}

// DirectIndex returns the bank index of a direct-mode trig.
func (t SampleTrig) DirectIndex() (int, bool) {
	return int(t.Index), t.Mode == SampleDirect
}

// SetParam updates the trig from a normalized parameter value and reports if
// the parameter type belongs to sample trigs. The sample number sets Index in
// either mode; the rate is clamped to [0, MaxRate].
func (t *SampleTrig) SetParam(typ ParamType, value float64) bool {
	switch typ {
	case ParamSampleTrigEnable:
		t.Enabled = value > 0.5
	case ParamSampleTrigStack:
		t.Mode = SampleDirect
		if value > 0.5 {
			t.Mode = SampleStack
		}
	case ParamSampleTrigSampleNumber:
		t.Index = uint8(IntParam(value, MaxSampleIndex))
	case ParamSampleTrigRate:
		t.Rate = math.Max(0, math.Min(MaxRate, value*MaxRate))
	default:
		return false
	}
	return true
}

func (t SampleTrig) String() string {
	if !t.Enabled {
		return "off"
	}
	if input, depth, ok := t.StackAddress(); ok {
		return fmt.Sprintf("stack %d/%d x%.2f", input, depth, t.Rate)
	}
	return fmt.Sprintf("sample %d x%.2f", t.Index, t.Rate)
}

// SetParam updates the latch trig and reports if the parameter type belongs
// to latch trigs.
func (t *LatchTrig) SetParam(typ ParamType, value float64) bool {
	switch typ {
	case ParamLatchTrigEnable:
		t.Enabled = value > 0.5
	case ParamLatchTrigOneShot:
		t.OneShot = value > 0.5
	default:
		return false
	}
	return true
}
