package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/vtrack/vtrack"
)

// TimeBase converts between samples and musical time. The pattern position
// is kept in quarter notes and always lies in [0, vtrack.PatternLengthQN).
type TimeBase struct {
	sampleRate float64
	tempo      float64
	position   float64
}

var ErrInvalidTempo = errors.New("tempo must be a positive, finite number of beats per minute")

func NewTimeBase(sampleRate, tempo float64) TimeBase {
	return TimeBase{sampleRate: sampleRate, tempo: tempo}
}

func (t *TimeBase) Tempo() float64 { return t.tempo }

// SetTempo changes the tempo and reports whether it actually changed.
func (t *TimeBase) SetTempo(bpm float64) (changed bool, err error) {
	if !(bpm > 0) || math.IsInf(bpm, 0) {
		return false, fmt.Errorf("%v: %w", bpm, ErrInvalidTempo)
	}
	if bpm == t.tempo {
		return false, nil
	}
	t.tempo = bpm
	return true, nil
}

func (t *TimeBase) SamplesPerQuarterNote() float64 {
	return 60 * t.sampleRate / t.tempo
}

func (t *TimeBase) SamplesPerStep() float64 {
	return t.SamplesPerQuarterNote() / vtrack.StepsPerQuarterNote
}

// PatternSamples is the length of one pattern in samples, rounded up. It is
// the capacity of every capture buffer.
func (t *TimeBase) PatternSamples() int {
	return int(math.Ceil(t.SamplesPerQuarterNote() * vtrack.PatternLengthQN))
}

func (t *TimeBase) Position() float64 { return t.position }

// SetPosition moves the pattern cursor to the project time, in quarter notes,
// modulo the pattern length. The start of the last bar is not needed, as one
// pattern is exactly one bar long; the parameter mirrors what hosts report.
func (t *TimeBase) SetPosition(barPosition, projectTime float64) {
	p := math.Mod(projectTime, vtrack.PatternLengthQN)
	if p < 0 {
		p += vtrack.PatternLengthQN
	}
	t.position = p
}

// Advance returns the musical position samples later than position, wrapped
// into the pattern.
func (t *TimeBase) Advance(position float64, samples int) float64 {
	position += float64(samples) / t.SamplesPerQuarterNote()
	for position >= vtrack.PatternLengthQN {
		position -= vtrack.PatternLengthQN
	}
	return position
}

// NextTriggerBoundary returns the sample offset of the first step boundary
// at or after the musical position, where sampleOffset is the sample at which
// the block reaches position, and the step that starts there. The result is
// in [sampleOffset, sampleOffset+SamplesPerStep()).
//
// A step boundary rarely falls on a whole sample, so each step owns the one
// sample within half a sample of its exact position: [-0.5, 0.5) samples,
// shifted by boundaryEpsilon to absorb rounding in position. The returned
// offset is always such a sample, so every step fires exactly once no matter
// where blocks are split.
func (t *TimeBase) NextTriggerBoundary(position float64, sampleOffset int) (boundary, step int) {
	return t.boundary(position, sampleOffset, false)
}

// boundaryAfter is NextTriggerBoundary excluding a boundary at position.
func (t *TimeBase) boundaryAfter(position float64, sampleOffset int) (boundary, step int) {
	return t.boundary(position, sampleOffset, true)
}

const boundaryEpsilon = 1e-6 // in samples

func (t *TimeBase) boundary(position float64, sampleOffset int, after bool) (int, int) {
	sps := t.SamplesPerStep()
	s := position * vtrack.StepsPerQuarterNote
	k := math.Floor(s + (0.5+boundaryEpsilon)/sps)
	if (s-k)*sps < 0.5-boundaryEpsilon && !after {
		return sampleOffset, wrapStep(k)
	}
	n := math.Ceil((k+1-s)*sps - 0.5 - boundaryEpsilon)
	return sampleOffset + int(n), wrapStep(k + 1)
}

func wrapStep(s float64) int {
	return int(s) % vtrack.PatternLength
}
