package vtrack

import (
	"fmt"
	"io"
	"text/template"

	"github.com/Masterminds/sprig"
)

const describeTemplate = `{{- $bar := "|" -}}
     {{ range $i, $_ := until 16 }}{{ if eq (mod $i 4) 0 }}{{ $bar }}{{ end }}{{ printf "%x" $i }}{{ end }}
{{ range $t, $track := .Tracks -}}
T{{ $t }} M {{ range $i, $s := $track.Steps }}{{ if eq (mod $i 4) 0 }}{{ $bar }}{{ end }}{{ midi $s.Midi }}{{ end }}  level {{ printf "%.2f" $track.Level }}
   S {{ range $i, $s := $track.Steps }}{{ if eq (mod $i 4) 0 }}{{ $bar }}{{ end }}{{ sample $s.Sample }}{{ end }}
{{ end -}}
{{ range $c, $in := .Inputs -}}
I{{ $c }} L {{ range $i, $l := $in.Latches }}{{ if eq (mod $i 4) 0 }}{{ $bar }}{{ end }}{{ latch $l }}{{ end }}  direct {{ $in.Direct | toStrings | join " " }}
{{ end -}}
`

var describe = template.Must(template.New("describe").Funcs(sprig.TxtFuncMap()).Funcs(template.FuncMap{
	"midi": func(t MidiTrig) string {
		switch {
		case !t.Enabled:
			return "."
		case t.Kind == MidiCC:
			return "c"
		}
		return "n"
	},
	"sample": func(t SampleTrig) string {
		if !t.Enabled {
			return "."
		}
		if _, depth, ok := t.StackAddress(); ok {
			return fmt.Sprintf("%x", depth)
		}
		return "d"
	},
	"latch": func(t LatchTrig) string {
		switch {
		case !t.Enabled:
			return "."
		case t.OneShot:
			return "1"
		}
		return "L"
	},
}).Parse(describeTemplate))

// Describe writes a compact text grid of the matrix: one row of MIDI trigs
// (n = note, c = CC) and one row of sample trigs (stack depth in hex, d =
// direct) per track, and one row of latch trigs (L, 1 = one-shot) per input.
func Describe(w io.Writer, m Matrix) error {
	if err := describe.Execute(w, m); err != nil {
		return fmt.Errorf("could not describe matrix: %w", err)
	}
	return nil
}
