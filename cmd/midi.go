package cmd

import (
	"errors"

	"github.com/vtrack/vtrack"
)

type (
	// MidiOutput sends the notes generated by the sequencer to a MIDI port.
	MidiOutput interface {
		Ports() []string
		OpenBy(namePrefix string, takeFirst bool) error
		Send(ev vtrack.Event) error
		Close()
	}

	NullMidiOutput struct{}
)

var ErrNoMidi = errors.New("MIDI output is not available in builds without cgo")

func (NullMidiOutput) Ports() []string           { return nil }
func (NullMidiOutput) OpenBy(string, bool) error { return ErrNoMidi }
func (NullMidiOutput) Send(vtrack.Event) error   { return nil }
func (NullMidiOutput) Close()                    {}

// ForwardMidi sends events from c to out until c is closed. Send errors are
// passed to onError.
func ForwardMidi(c <-chan vtrack.Event, out MidiOutput, onError func(error)) {
	for ev := range c {
		if err := out.Send(ev); err != nil && onError != nil {
			onError(err)
		}
	}
}
