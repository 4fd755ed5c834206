package engine_test

import (
	"testing"

	"github.com/vtrack/vtrack"
	"github.com/vtrack/vtrack/engine"
)

func TestRenderLoopsInput(t *testing.T) {
	e := engine.New(nil)
	e.LoadMatrix(vtrack.NewMatrix())
	buf, _, events := engine.Render(e, [][]float32{{1, 2, 3}}, 10, 4)
	if len(events) != 0 {
		t.Fatalf("an empty matrix emitted %d events", len(events))
	}
	for i, f := range buf {
		want := float32(i%3 + 1)
		if f[0] != want || f[1] != want {
			t.Fatalf("frame %d: got %v, want %v on both channels", i, f, want)
		}
	}
}

func TestRenderEventsHaveAbsoluteFrames(t *testing.T) {
	e := engine.New(nil)
	m := vtrack.NewMatrix()
	m.Tracks[0].Steps[1].Midi = vtrack.MidiTrig{Enabled: true, Value: 36}
	e.LoadMatrix(m)
	_, _, events := engine.Render(e, nil, 6000, 512)
	if len(events) != 2 || events[0].Kind != vtrack.NoteOnEvent || events[0].Frame != 5512 {
		t.Fatalf("got %+v, want a note on at frame 5512 and its note off", events)
	}
}

func TestRenderCueBus(t *testing.T) {
	e := engine.New(nil)
	m := vtrack.NewMatrix()
	m.Inputs[1].Direct = [vtrack.NumOutputs]float32{0, 0, 0.5, 0.25}
	e.LoadMatrix(m)
	main, cue, _ := engine.Render(e, [][]float32{nil, {2}}, 9, 4)
	for i := range main {
		if main[i] != [2]float32{} {
			t.Fatalf("frame %d: main bus got %v, want silence", i, main[i])
		}
		if cue[i] != [2]float32{1, 0.5} {
			t.Fatalf("frame %d: cue bus got %v, want [1 0.5]", i, cue[i])
		}
	}
}

func TestReadAudioCueRejectsShortCue(t *testing.T) {
	r := engine.NewRenderer(engine.New(nil), nil, 16)
	if err := r.ReadAudioCue(make(vtrack.AudioBuffer, 8), make(vtrack.AudioBuffer, 4)); err == nil {
		t.Fatalf("expected an error for a cue buffer shorter than the main one")
	}
}
