package gomidi_test

import (
	"testing"

	"github.com/vtrack/vtrack"
	"github.com/vtrack/vtrack/gomidi"
	"gitlab.com/gomidi/midi/v2"
)

func TestToMessage(t *testing.T) {
	tests := []struct {
		name  string
		event vtrack.Event
		want  midi.Message
	}{
		{"note on", vtrack.Event{Kind: vtrack.NoteOnEvent, Channel: 2, Pitch: 60, Velocity: 1}, midi.NoteOn(2, 60, 127)},
		{"note off", vtrack.Event{Kind: vtrack.NoteOffEvent, Channel: 2, Pitch: 60}, midi.NoteOff(2, 60)},
		{"control change", vtrack.Event{Kind: vtrack.ControlChangeEvent, Channel: 7, Pitch: 7, Value: 100}, midi.ControlChange(7, 7, 100)},
		{"channel wraps", vtrack.Event{Kind: vtrack.NoteOnEvent, Channel: 17, Pitch: 1, Velocity: 0.5}, midi.NoteOn(1, 1, 64)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := gomidi.ToMessage(tt.event)
			if !ok {
				t.Fatalf("event was not converted")
			}
			if string(got) != string(tt.want) {
				t.Fatalf("got % x, want % x", got, tt.want)
			}
		})
	}
}

func TestToMessageRejects(t *testing.T) {
	for _, ev := range []vtrack.Event{
		{Kind: vtrack.NoteOnEvent, Pitch: 128},
		{Kind: vtrack.ControlChangeEvent, Pitch: 1, Value: 300},
		{Kind: vtrack.DataEvent},
	} {
		if _, ok := gomidi.ToMessage(ev); ok {
			t.Fatalf("%+v should not convert", ev)
		}
	}
}

func TestFromBytes(t *testing.T) {
	ev := gomidi.FromBytes(midi.NoteOn(3, 64, 127), 12)
	if ev.Kind != vtrack.NoteOnEvent || ev.Frame != 12 || ev.Channel != 3 || ev.Pitch != 64 || ev.Velocity != 1 {
		t.Fatalf("note on: got %+v", ev)
	}
	ev = gomidi.FromBytes(midi.NoteOn(3, 64, 0), 0)
	if ev.Kind != vtrack.NoteOffEvent {
		t.Fatalf("zero velocity note on should be a note off, got %v", ev.Kind)
	}
	ev = gomidi.FromBytes(midi.ControlChange(0, 10, 20), 5)
	if ev.Kind != vtrack.ControlChangeEvent || ev.Pitch != 10 || ev.Value != 20 {
		t.Fatalf("control change: got %+v", ev)
	}
	ev = gomidi.FromBytes([]byte{0xf8}, 1)
	if ev.Kind != vtrack.DataEvent || len(ev.Data) != 1 {
		t.Fatalf("clock should be a data event, got %+v", ev)
	}
}
