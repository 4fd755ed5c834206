package vtrack

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

type (
	// Pattern is the file representation of a Matrix. Only enabled trigs are
	// listed, each with its step number. Tracks and Inputs are indexed by
	// their position in the list; missing entries are empty.
	Pattern struct {
		Tempo  float64    `yaml:",omitempty"`
		Tracks []TrackDoc `yaml:",omitempty"`
		Inputs []InputDoc `yaml:",omitempty"`
		Bank   []string   `yaml:",omitempty"` // raw float32 files for direct sample trigs
	}

	TrackDoc struct {
		Level   *float64    `yaml:",omitempty"` // nil means unity gain
		Midi    []MidiDoc   `yaml:",omitempty"`
		Samples []SampleDoc `yaml:",omitempty"`
	}

	InputDoc struct {
		Direct  []float32  `yaml:",flow,omitempty"`
		Latches []LatchDoc `yaml:",omitempty"`
	}

	MidiDoc struct {
		Step    int
		CC      bool    `yaml:",omitempty"`
		Value   uint8   // note or controller number
		CCValue uint8   `yaml:",omitempty"`
		Length  float64 `yaml:",omitempty"`
	}

	// SampleDoc describes a sample trig. Stack trigs name the input channel
	// and stack depth; direct trigs name the bank index in Sample.
	SampleDoc struct {
		Step   int
		Stack  bool    `yaml:",omitempty"`
		Input  int     `yaml:",omitempty"`
		Depth  int     `yaml:",omitempty"`
		Sample int     `yaml:",omitempty"`
		Rate   float64 `yaml:",omitempty"` // 0 means 1
	}

	LatchDoc struct {
		Step    int
		OneShot bool `yaml:",omitempty"`
	}
)

// ReadPattern parses a pattern document, trying JSON first and YAML second.
func ReadPattern(data []byte) (Pattern, error) {
	var p Pattern
	if errJSON := json.Unmarshal(data, &p); errJSON != nil {
		p = Pattern{}
		if errYaml := yaml.Unmarshal(data, &p); errYaml != nil {
			return Pattern{}, fmt.Errorf("the pattern could not be parsed as .json (%v) or .yml (%v)", errJSON, errYaml)
		}
	}
	return p, nil
}

// Marshal encodes the pattern as YAML.
func (p *Pattern) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal pattern: %w", err)
	}
	return data, nil
}

// Matrix expands the pattern into a dense trigger grid, validating all
// indices. Stack trigs may address any of the 16 inputs a composite index can
// hold; out of range inputs are skipped at play time, not here.
func (p *Pattern) Matrix() (Matrix, error) {
	m := NewMatrix()
	if len(p.Tracks) > NumTracks {
		return Matrix{}, fmt.Errorf("%d tracks: %w", len(p.Tracks), ErrTrackOutOfRange)
	}
	if len(p.Inputs) > NumInputs {
		return Matrix{}, fmt.Errorf("%d inputs: %w", len(p.Inputs), ErrInputOutOfRange)
	}
	for i, t := range p.Tracks {
		tp := &m.Tracks[i]
		if t.Level != nil {
			tp.Level = *t.Level
		}
		for _, d := range t.Midi {
			if err := checkStep(d.Step); err != nil {
				return Matrix{}, fmt.Errorf("track %d midi trig: %w", i, err)
			}
			if !(d.Length >= 0) {
				return Matrix{}, fmt.Errorf("track %d step %d: note length %v: %w", i, d.Step, d.Length, ErrNoteLength)
			}
			trig := MidiTrig{Enabled: true, Value: d.Value, Length: min(d.Length, MaxNoteLength)}
			if d.CC {
				trig.Kind = MidiCC
				trig.CCValue = d.CCValue
			}
			tp.Steps[d.Step].Midi = trig
		}
		for _, d := range t.Samples {
			if err := checkStep(d.Step); err != nil {
				return Matrix{}, fmt.Errorf("track %d sample trig: %w", i, err)
			}
			trig := SampleTrig{Enabled: true, Rate: d.Rate}
			if trig.Rate == 0 {
				trig.Rate = 1
			}
			if d.Stack {
				if d.Input < 0 || d.Input >= (MaxSampleIndex+1)/MaxStackSize {
					return Matrix{}, fmt.Errorf("track %d step %d: input %d: %w", i, d.Step, d.Input, ErrInputOutOfRange)
				}
				if d.Depth < 0 || d.Depth >= MaxStackSize {
					return Matrix{}, fmt.Errorf("track %d step %d: stack depth %d out of range", i, d.Step, d.Depth)
				}
				trig.Mode = SampleStack
				trig.Index = StackIndex(d.Input, d.Depth)
			} else {
				if d.Sample < 0 || d.Sample > MaxSampleIndex {
					return Matrix{}, fmt.Errorf("track %d step %d: sample %d out of range", i, d.Step, d.Sample)
				}
				trig.Index = uint8(d.Sample)
			}
			tp.Steps[d.Step].Sample = trig
		}
	}
	for i, in := range p.Inputs {
		ip := &m.Inputs[i]
		if in.Direct != nil {
			ip.Direct = [NumOutputs]float32{}
			copy(ip.Direct[:], in.Direct)
		}
		for _, d := range in.Latches {
			if err := checkStep(d.Step); err != nil {
				return Matrix{}, fmt.Errorf("input %d latch trig: %w", i, err)
			}
			ip.Latches[d.Step] = LatchTrig{Enabled: true, OneShot: d.OneShot}
		}
	}
	return m, nil
}

// PatternOf is the inverse of Pattern.Matrix: it lists the enabled trigs of m.
func PatternOf(m Matrix, tempo float64) Pattern {
	p := Pattern{Tempo: tempo}
	for _, tp := range m.Tracks {
		level := tp.Level
		t := TrackDoc{Level: &level}
		for s, step := range tp.Steps {
			if step.Midi.Enabled {
				t.Midi = append(t.Midi, MidiDoc{Step: s, CC: step.Midi.Kind == MidiCC, Value: step.Midi.Value, CCValue: step.Midi.CCValue, Length: step.Midi.Length})
			}
			if step.Sample.Enabled {
				d := SampleDoc{Step: s, Rate: step.Sample.Rate}
				if input, depth, ok := step.Sample.StackAddress(); ok {
					d.Stack, d.Input, d.Depth = true, input, depth
				} else {
					d.Sample = int(step.Sample.Index)
				}
				t.Samples = append(t.Samples, d)
			}
		}
		p.Tracks = append(p.Tracks, t)
	}
	for _, ip := range m.Inputs {
		in := InputDoc{Direct: append([]float32(nil), ip.Direct[:]...)}
		for s, l := range ip.Latches {
			if l.Enabled {
				in.Latches = append(in.Latches, LatchDoc{Step: s, OneShot: l.OneShot})
			}
		}
		p.Inputs = append(p.Inputs, in)
	}
	return p
}

func checkStep(step int) error {
	if step < 0 || step >= PatternLength {
		return fmt.Errorf("step %d: %w", step, ErrStepOutOfRange)
	}
	return nil
}
