package vtrack

type (
	EventKind int

	// Event is a timestamped event in the host event stream. Frame is the
	// sample offset relative to the start of the current block. Pitch is the
	// note number for note events and the controller number for control
	// changes, in which case Value carries the controller value.
	Event struct {
		Kind     EventKind
		Bus      int
		Frame    int
		PPQ      float64 // musical position in quarter notes, if known
		Channel  int
		Pitch    int
		Velocity float32
		Value    int
		Length   int // note length in samples, note on only
		NoteID   int
		Data     []byte
	}

	TransportFlags uint32

	// Transport is the host's view of musical time for the current block.
	Transport struct {
		Flags       TransportFlags
		Tempo       float64 // beats per minute
		BarPosition float64 // quarter notes, start of the last bar
		ProjectTime float64 // quarter notes
	}
)

const (
	NoteOnEvent EventKind = iota
	NoteOffEvent
	ControlChangeEvent
	DataEvent
)

const (
	TempoValid TransportFlags = 1 << iota
	BarPositionValid
	ProjectTimeMusicValid
)

// GeneratedNoteID is the note id of notes generated by trigs.
const GeneratedNoteID = -1

func (k EventKind) String() string {
	switch k {
	case NoteOnEvent:
		return "note on"
	case NoteOffEvent:
		return "note off"
	case ControlChangeEvent:
		return "control change"
	case DataEvent:
		return "data"
	}
	return "unknown"
}

// Has reports whether all of flags are set.
func (t Transport) Has(flags TransportFlags) bool {
	return t.Flags&flags == flags
}
