package vtrack_test

import (
	"strings"
	"testing"

	"github.com/vtrack/vtrack"
)

func TestDescribe(t *testing.T) {
	m := vtrack.DefaultMatrix()
	m.Tracks[1].Steps[4].Midi = vtrack.MidiTrig{Enabled: true}
	m.Tracks[1].Steps[5].Midi = vtrack.MidiTrig{Enabled: true, Kind: vtrack.MidiCC}
	m.Tracks[1].Steps[6].Sample = vtrack.SampleTrig{Enabled: true, Index: 3, Rate: 1}
	m.Inputs[1].Latches[15] = vtrack.LatchTrig{Enabled: true}
	var b strings.Builder
	if err := vtrack.Describe(&b, m); err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	out := b.String()
	for _, want := range []string{
		"|0123|4567|89ab|cdef",
		"T0 M |....|....|....|....  level 1.00",
		"   S |0...|....|....|....",
		"T1 M |....|nc..|....|....",
		"   S |....|..d.|....|....",
		"I0 L |1...|....|....|....  direct 1 1 0 0",
		"I1 L |....|....|....|...L",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
}
