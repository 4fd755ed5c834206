//go:build cgo

package cmd

import "github.com/vtrack/vtrack/gomidi"

func NewMidiOutput() MidiOutput {
	return gomidi.NewOutput()
}
