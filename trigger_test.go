package vtrack_test

import (
	"math"
	"testing"

	"github.com/vtrack/vtrack"
)

func TestStackIndex(t *testing.T) {
	for input := 0; input < vtrack.NumInputs; input++ {
		for depth := 0; depth < vtrack.MaxStackSize; depth++ {
			trig := vtrack.SampleTrig{Mode: vtrack.SampleStack, Index: vtrack.StackIndex(input, depth)}
			i, d, ok := trig.StackAddress()
			if !ok || i != input || d != depth {
				t.Fatalf("StackAddress of (%d, %d): got (%d, %d, %v)", input, depth, i, d, ok)
			}
			if _, ok := trig.DirectIndex(); ok {
				t.Fatalf("stack trig reported a direct index")
			}
		}
	}
}

func TestMidiTrigSetParam(t *testing.T) {
	var trig vtrack.MidiTrig
	trig.SetParam(vtrack.ParamMidiTrigEnable, 1)
	trig.SetParam(vtrack.ParamMidiTrigNote, 60.0/256)
	trig.SetParam(vtrack.ParamMidiTrigLength, 1.0/17)
	if note, ok := trig.Note(); !trig.Enabled || !ok || note != 60 || math.Abs(trig.Length-1) > 1e-9 {
		t.Fatalf("note trig: got %+v", trig)
	}
	trig.SetParam(vtrack.ParamMidiTrigCC, 1)
	trig.SetParam(vtrack.ParamMidiTrigCCValue, 1)
	if cc, value, ok := trig.CC(); !ok || cc != 60 || value != 127 {
		t.Fatalf("cc trig: got %+v", trig)
	}
	if _, ok := trig.Note(); ok {
		t.Fatalf("cc trig reported a note")
	}
	if trig.SetParam(vtrack.ParamSampleTrigRate, 1) {
		t.Fatalf("MidiTrig accepted a sample parameter")
	}
}

func TestSampleTrigSetParam(t *testing.T) {
	var trig vtrack.SampleTrig
	trig.SetParam(vtrack.ParamSampleTrigEnable, 1)
	trig.SetParam(vtrack.ParamSampleTrigStack, 1)
	trig.SetParam(vtrack.ParamSampleTrigSampleNumber, 17.0/256)
	trig.SetParam(vtrack.ParamSampleTrigRate, 0.5)
	input, depth, ok := trig.StackAddress()
	if !trig.Enabled || !ok || input != 1 || depth != 1 || trig.Rate != 2 {
		t.Fatalf("got %+v", trig)
	}
	if s := trig.String(); s != "stack 1/1 x2.00" {
		t.Fatalf("String: got %q", s)
	}
	trig.SetParam(vtrack.ParamSampleTrigStack, 0)
	if i, ok := trig.DirectIndex(); !ok || i != 17 {
		t.Fatalf("DirectIndex: got %d, %v", i, ok)
	}
	if trig.SetParam(vtrack.ParamLatchTrigEnable, 1) {
		t.Fatalf("SampleTrig accepted a latch parameter")
	}
}

func TestLatchTrigSetParam(t *testing.T) {
	var trig vtrack.LatchTrig
	if !trig.SetParam(vtrack.ParamLatchTrigOneShot, 0.75) || !trig.OneShot {
		t.Fatalf("one-shot not set")
	}
	if trig.SetParam(vtrack.ParamMidiTrigNote, 1) {
		t.Fatalf("LatchTrig accepted a MIDI parameter")
	}
}

func TestStepIndex(t *testing.T) {
	tests := []struct {
		pos  float64
		want int
	}{
		{0, 0},
		{0.24, 0},
		{0.25, 1},
		{3.99, 15},
		{4, 0},
		{-0.25, 15},
	}
	for _, tt := range tests {
		if got := vtrack.StepIndex(tt.pos); got != tt.want {
			t.Errorf("StepIndex(%v) = %d, want %d", tt.pos, got, tt.want)
		}
	}
}

func TestSampleTrigRateClamps(t *testing.T) {
	tests := []struct {
		value, want float64
	}{
		{-0.5, 0},
		{0.25, 1},
		{1.5, vtrack.MaxRate},
	}
	for _, tt := range tests {
		var trig vtrack.SampleTrig
		trig.SetParam(vtrack.ParamSampleTrigRate, tt.value)
		if trig.Rate != tt.want {
			t.Errorf("rate for %v: got %v, want %v", tt.value, trig.Rate, tt.want)
		}
	}
}
