package vtrack_test

import (
	"testing"

	"github.com/vtrack/vtrack"
)

func TestParamIDRaw(t *testing.T) {
	id := vtrack.ParamID{Type: vtrack.ParamSampleTrigRate, Track: 3, Step: vtrack.Wildcard}
	if got := vtrack.DecodeParamID(id.Raw()); got != id {
		t.Fatalf("DecodeParamID(Raw()): got %+v, want %+v", got, id)
	}
	if raw := id.Raw(); raw != uint32(vtrack.ParamSampleTrigRate)<<16|3<<8|0xff {
		t.Fatalf("Raw: got %#x", raw)
	}
}

func TestParamRelated(t *testing.T) {
	for typ := vtrack.ParamType(0); typ < vtrack.NumParamTypes; typ++ {
		id := vtrack.ParamID{Type: typ}
		n := 0
		for _, related := range []bool{id.LatchTrigRelated(), id.MidiTrigRelated(), id.SampleTrigRelated()} {
			if related {
				n++
			}
		}
		if n > 1 {
			t.Errorf("%v belongs to %d trig kinds", typ, n)
		}
		if id.TrigRelated() != (n == 1) {
			t.Errorf("%v: TrigRelated() = %v", typ, id.TrigRelated())
		}
	}
	if (vtrack.ParamID{Type: vtrack.ParamArm}).TrigRelated() {
		t.Errorf("arm is not a trig parameter")
	}
	if (vtrack.ParamID{Type: vtrack.ParamTrackLevel}).TrigRelated() {
		t.Errorf("track level is not a trig parameter")
	}
}

func TestIntParam(t *testing.T) {
	tests := []struct {
		value, max, want float64
	}{
		{0, 255, 0},
		{1, 255, 255},
		{0.5, 255, 128},
		{-1, 16, 0},
		{2, 16, 16},
	}
	for _, tt := range tests {
		if got := vtrack.IntParam(tt.value, tt.max); got != tt.want {
			t.Errorf("IntParam(%v, %v) = %v, want %v", tt.value, tt.max, got, tt.want)
		}
	}
}

func TestParamTypeString(t *testing.T) {
	if s := vtrack.ParamVuPPM.String(); s != "vu" {
		t.Errorf("got %q, want vu", s)
	}
	if s := vtrack.NumParamTypes.String(); s != "unknown" {
		t.Errorf("got %q, want unknown", s)
	}
}
