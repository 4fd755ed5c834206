//go:build !cgo

package cmd

func NewMidiOutput() MidiOutput {
	// with no cgo, we cannot use MIDI, so return a null output
	return NullMidiOutput{}
}
