package engine

import (
	"fmt"

	"github.com/vtrack/vtrack"
)

// SetParam applies a normalized host parameter change. Trig parameters
// address a single step of a single track or input; wildcards are not
// supported for them and such changes are ignored. Out of range addresses
// are reported as alerts.
func (e *Engine) SetParam(id vtrack.ParamID, value float64) {
	if !finite(value) {
		e.SendAlert("ParamChange", fmt.Sprintf("%v: value %v", id.Type, value), Warning)
		return
	}
	if id.TrigRelated() {
		e.setTrigParam(id, value)
		return
	}
	switch id.Type {
	case vtrack.ParamArm:
		armed := value > 0.5
		if id.Track == vtrack.Wildcard {
			for i := range e.inputs {
				e.inputs[i].Armed = armed
			}
			return
		}
		if err := e.Arm(int(id.Track), armed); err != nil {
			e.SendAlert("ParamChange", err.Error(), Warning)
		}
	case vtrack.ParamTrackLevel:
		level := min(max(value, 0), 1)
		if id.Track == vtrack.Wildcard {
			for i := range e.tracks {
				e.tracks[i].Level = level
			}
			return
		}
		if int(id.Track) >= len(e.tracks) {
			e.SendAlert("ParamChange", fmt.Sprintf("level of track %d: %v", id.Track, vtrack.ErrTrackOutOfRange), Warning)
			return
		}
		e.tracks[id.Track].Level = level
	case vtrack.ParamVuPPM:
		// output only
	default:
		e.SendAlert("ParamChange", fmt.Sprintf("unknown parameter type %d", id.Type), Warning)
	}
}

func (e *Engine) setTrigParam(id vtrack.ParamID, value float64) {
	if id.Track == vtrack.Wildcard || id.Step == vtrack.Wildcard {
		return
	}
	if int(id.Step) >= vtrack.PatternLength {
		e.SendAlert("ParamChange", fmt.Sprintf("%v step %d: %v", id.Type, id.Step, vtrack.ErrStepOutOfRange), Warning)
		return
	}
	if id.LatchTrigRelated() {
		if int(id.Track) >= len(e.inputs) {
			e.SendAlert("ParamChange", fmt.Sprintf("%v input %d: %v", id.Type, id.Track, vtrack.ErrInputOutOfRange), Warning)
			return
		}
		e.inputs[id.Track].Latches[id.Step].SetParam(id.Type, value)
		return
	}
	if int(id.Track) >= len(e.tracks) {
		e.SendAlert("ParamChange", fmt.Sprintf("%v track %d: %v", id.Type, id.Track, vtrack.ErrTrackOutOfRange), Warning)
		return
	}
	s := &e.tracks[id.Track].Steps[id.Step]
	if !s.Midi.SetParam(id.Type, value) {
		s.Sample.SetParam(id.Type, value)
	}
}
