package vtrack

import "math"

type (
	// ParamType identifies what a host parameter controls.
	ParamType uint8

	// ParamID addresses a host parameter. Trig related parameters are
	// addressed by track (or input channel, for latch trigs) and step; either
	// can be Wildcard. Packed into 24 bits of a host parameter id as
	// type<<16 | track<<8 | step.
	ParamID struct {
		Type  ParamType
		Track uint8
		Step  uint8
	}

	// ParamChange is one decoded parameter change. Value is normalized to
	// [0, 1] as hosts send it.
	ParamChange struct {
		ID    ParamID
		Frame int
		Value float64
	}
)

// Wildcard in ParamID.Track or ParamID.Step means "all".
const Wildcard = 0xff

const (
	ParamArm ParamType = iota
	ParamLatchTrigEnable
	ParamLatchTrigOneShot
	ParamMidiTrigEnable
	ParamMidiTrigNote
	ParamMidiTrigLength
	ParamMidiTrigCC
	ParamMidiTrigCCValue
	ParamSampleTrigEnable
	ParamSampleTrigStack
	ParamSampleTrigSampleNumber
	ParamSampleTrigRate
	ParamTrackLevel
	ParamVuPPM
	NumParamTypes
)

var paramTypeNames = [NumParamTypes]string{
	"arm", "latch.enable", "latch.oneshot",
	"midi.enable", "midi.note", "midi.length", "midi.cc", "midi.ccvalue",
	"sample.enable", "sample.stack", "sample.number", "sample.rate",
	"track.level", "vu",
}

func (t ParamType) String() string {
	if t < NumParamTypes {
		return paramTypeNames[t]
	}
	return "unknown"
}

// DecodeParamID unpacks a raw host parameter id.
func DecodeParamID(raw uint32) ParamID {
	return ParamID{Type: ParamType(raw >> 16), Track: uint8(raw >> 8), Step: uint8(raw)}
}

func (id ParamID) Raw() uint32 {
	return uint32(id.Type)<<16 | uint32(id.Track)<<8 | uint32(id.Step)
}

func (id ParamID) LatchTrigRelated() bool {
	return id.Type == ParamLatchTrigEnable || id.Type == ParamLatchTrigOneShot
}

func (id ParamID) MidiTrigRelated() bool {
	return id.Type >= ParamMidiTrigEnable && id.Type <= ParamMidiTrigCCValue
}

func (id ParamID) SampleTrigRelated() bool {
	return id.Type >= ParamSampleTrigEnable && id.Type <= ParamSampleTrigRate
}

// TrigRelated reports whether the parameter addresses a single step slot.
func (id ParamID) TrigRelated() bool {
	return id.LatchTrigRelated() || id.MidiTrigRelated() || id.SampleTrigRelated()
}

// IntParam maps a normalized parameter value onto [0, max] the way the step
// editor expects: min(max, value*(max+1)). Negative values clamp to 0.
func IntParam(value, max float64) float64 {
	return math.Max(0, math.Min(max, value*(max+1)))
}
