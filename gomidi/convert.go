// Package gomidi converts between vtrack events and MIDI messages, and sends
// the notes generated by the sequencer to a MIDI output port.
package gomidi

import (
	"github.com/vtrack/vtrack"
	"gitlab.com/gomidi/midi/v2"
)

// ToMessage converts a note or control change event to a MIDI message. The
// event channel is the track number, wrapped into the 16 MIDI channels.
// Other events, and events with out of range values, are not converted.
func ToMessage(ev vtrack.Event) (midi.Message, bool) {
	if ev.Pitch < 0 || ev.Pitch > 127 {
		return nil, false
	}
	channel := uint8(ev.Channel & 15)
	switch ev.Kind {
	case vtrack.NoteOnEvent:
		return midi.NoteOn(channel, uint8(ev.Pitch), velocity(ev.Velocity)), true
	case vtrack.NoteOffEvent:
		return midi.NoteOff(channel, uint8(ev.Pitch)), true
	case vtrack.ControlChangeEvent:
		if ev.Value < 0 || ev.Value > 127 {
			return nil, false
		}
		return midi.ControlChange(channel, uint8(ev.Pitch), uint8(ev.Value)), true
	}
	return nil, false
}

// FromMessage converts a MIDI message received at frame into an event. A note
// on with zero velocity is a note off.
func FromMessage(msg midi.Message, frame int) (vtrack.Event, bool) {
	var channel, key, vel uint8
	switch {
	case msg.GetNoteOn(&channel, &key, &vel) && vel > 0:
		return vtrack.Event{Kind: vtrack.NoteOnEvent, Frame: frame, Channel: int(channel), Pitch: int(key), Velocity: float32(vel) / 127, NoteID: -1}, true
	case msg.GetNoteOn(&channel, &key, &vel), msg.GetNoteOff(&channel, &key, &vel):
		return vtrack.Event{Kind: vtrack.NoteOffEvent, Frame: frame, Channel: int(channel), Pitch: int(key), Velocity: float32(vel) / 127, NoteID: -1}, true
	}
	var cc, value uint8
	if msg.GetControlChange(&channel, &cc, &value) {
		return vtrack.Event{Kind: vtrack.ControlChangeEvent, Frame: frame, Channel: int(channel), Pitch: int(cc), Value: int(value)}, true
	}
	return vtrack.Event{}, false
}

// FromBytes converts raw MIDI bytes, as hosts deliver them, into an event.
// Messages other than notes and control changes become data events.
func FromBytes(data []byte, frame int) vtrack.Event {
	if ev, ok := FromMessage(midi.Message(data), frame); ok {
		return ev
	}
	return vtrack.Event{Kind: vtrack.DataEvent, Frame: frame, Data: data}
}

func velocity(v float32) uint8 {
	return uint8(max(0, min(127, v*127+0.5)))
}
