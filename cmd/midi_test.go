package cmd_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vtrack/vtrack"
	"github.com/vtrack/vtrack/cmd"
)

type recordingOutput struct {
	cmd.NullMidiOutput
	sent []vtrack.Event
}

func (r *recordingOutput) Send(ev vtrack.Event) error {
	r.sent = append(r.sent, ev)
	if ev.Pitch < 0 {
		return errors.New("bad pitch")
	}
	return nil
}

func TestForwardMidiStopsWhenClosed(t *testing.T) {
	c := make(chan vtrack.Event, 4)
	out := &recordingOutput{}
	var errs []error
	done := make(chan struct{})
	go func() {
		cmd.ForwardMidi(c, out, func(err error) { errs = append(errs, err) })
		close(done)
	}()
	c <- vtrack.Event{Kind: vtrack.NoteOnEvent, Pitch: 60}
	c <- vtrack.Event{Kind: vtrack.NoteOffEvent, Pitch: -1}
	close(c)
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatalf("ForwardMidi did not return after its channel was closed")
	}
	if len(out.sent) != 2 || len(errs) != 1 {
		t.Fatalf("got %d sent and %d errors, want 2 and 1", len(out.sent), len(errs))
	}
}
