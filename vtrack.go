// Package vtrack holds the data model of the VTrack step sequencer: the trigger
// matrix, the pattern documents it is stored in, the parameter identifiers used
// by hosts to edit it, and the events it exchanges with the host.
//
// The real-time engine that plays a Matrix lives in the engine package.
package vtrack

const (
	// SampleRate is the only supported sample rate.
	SampleRate = 44100

	NumInputs  = 4 // mono input channels (two stereo input buses)
	NumOutputs = 4 // output channels: main out L/R, cue out L/R
	NumTracks  = 8

	// PatternScale is the note value of one step: 16 = 16th notes.
	PatternScale        = 16
	StepsPerQuarterNote = PatternScale / 4
	PatternLengthQN     = 4
	PatternLength       = PatternLengthQN * StepsPerQuarterNote

	// MaxStackSize is the depth of the per-input history stack. A composite
	// stack index has room for 256 entries, i.e. 16 inputs of 16 slots.
	MaxStackSize = 16

	// MaxNoteLength is the longest note trigger, in quarter notes.
	MaxNoteLength = 16

	MaxSampleIndex = 255
	MaxRate        = 4.0

	// DefaultTempo is used until the host reports one.
	DefaultTempo = 120.0
)
