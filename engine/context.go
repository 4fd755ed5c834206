package engine

import "github.com/vtrack/vtrack"

type (
	// ProcessContext is what the host provides to, and receives from, one
	// Engine.Process call. Parameter changes, events and transport describe
	// the current block; Emit and PublishMeter are the engine's outputs.
	ProcessContext interface {
		ParamChanges() []vtrack.ParamChange
		Events() []vtrack.Event
		Transport() vtrack.Transport
		Emit(ev vtrack.Event)
		PublishMeter(peak float32)
	}

	// NullProcessContext is a ProcessContext with nothing in it, which drops
	// everything it is given.
	NullProcessContext struct{}

	// BufferContext is a ProcessContext backed by plain slices. Reset it
	// between blocks.
	BufferContext struct {
		Params []vtrack.ParamChange
		Input  []vtrack.Event
		Host   vtrack.Transport
		Output []vtrack.Event

		Peak          float32
		PeakPublished bool
	}
)

func (NullProcessContext) ParamChanges() []vtrack.ParamChange { return nil }
func (NullProcessContext) Events() []vtrack.Event             { return nil }
func (NullProcessContext) Transport() vtrack.Transport        { return vtrack.Transport{} }
func (NullProcessContext) Emit(vtrack.Event)                  {}
func (NullProcessContext) PublishMeter(float32)               {}

func (c *BufferContext) ParamChanges() []vtrack.ParamChange { return c.Params }
func (c *BufferContext) Events() []vtrack.Event             { return c.Input }
func (c *BufferContext) Transport() vtrack.Transport        { return c.Host }
func (c *BufferContext) Emit(ev vtrack.Event)               { c.Output = append(c.Output, ev) }

func (c *BufferContext) PublishMeter(peak float32) {
	c.Peak = peak
	c.PeakPublished = true
}

// Reset clears the per-block inputs and outputs, keeping capacity.
func (c *BufferContext) Reset() {
	c.Params = c.Params[:0]
	c.Input = c.Input[:0]
	c.Output = c.Output[:0]
	c.PeakPublished = false
}
