//go:build plugin

package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vtrack/vtrack"
	"github.com/vtrack/vtrack/cmd"
	"github.com/vtrack/vtrack/engine"
	"github.com/vtrack/vtrack/gomidi"
	"pipelined.dev/audio/vst2"
)

// VSTIProcessContext adapts the host callbacks of one block to
// engine.ProcessContext.
type VSTIProcessContext struct {
	events []vtrack.Event
	passed int
	host   vst2.Host
	midi   chan vtrack.Event
}

func (c *VSTIProcessContext) ParamChanges() []vtrack.ParamChange { return nil }
func (c *VSTIProcessContext) Events() []vtrack.Event             { return c.events }

func (c *VSTIProcessContext) Transport() vtrack.Transport {
	timeInfo := c.host.GetTimeInfo(vst2.TempoValid | vst2.PpqPosValid | vst2.BarsValid)
	if timeInfo == nil {
		return vtrack.Transport{}
	}
	var t vtrack.Transport
	if timeInfo.Flags&vst2.TempoValid != 0 && timeInfo.Tempo > 0 {
		t.Flags |= vtrack.TempoValid
		t.Tempo = timeInfo.Tempo
	}
	if timeInfo.Flags&vst2.PpqPosValid != 0 {
		t.Flags |= vtrack.ProjectTimeMusicValid
		t.ProjectTime = timeInfo.PpqPos
	}
	if timeInfo.Flags&vst2.BarsValid != 0 {
		t.Flags |= vtrack.BarPositionValid
		t.BarPosition = timeInfo.BarStartPos
	}
	return t
}

// Emit hands generated events to the MIDI forwarding goroutine, which sends
// them to the port named by VTRACK_MIDI_OUT. The engine passes the host
// events through before anything else; those are dropped, as the host
// already has them.
func (c *VSTIProcessContext) Emit(ev vtrack.Event) {
	if c.passed < len(c.events) {
		c.passed++
		return
	}
	engine.TrySend(c.midi, ev)
}

// PublishMeter does nothing; the meter reaches the log through the broker.
func (c *VSTIProcessContext) PublishMeter(float32) {}

func init() {
	var (
		version = int32(100)
	)
	vst2.PluginAllocator = func(h vst2.Host) (vst2.Plugin, vst2.Dispatcher) {
		logger := log.New(io.Discard, "", log.LstdFlags)
		if configDir, err := os.UserConfigDir(); err == nil {
			dir := filepath.Join(configDir, "VTrack")
			if err := os.MkdirAll(dir, os.ModePerm); err == nil {
				if f, err := os.OpenFile(filepath.Join(dir, "vtrack-vsti.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err == nil {
					logger.SetOutput(f)
				}
			}
		}
		broker := engine.NewBroker()
		go engine.NewAllocator(broker).Run()
		go engine.NewMonitor(broker, logger).Run()
		e := engine.New(broker)
		midiOut := cmd.NewMidiOutput()
		if port := os.Getenv("VTRACK_MIDI_OUT"); port != "" {
			if err := midiOut.OpenBy(port, false); err != nil {
				logger.Printf("could not open MIDI output %q: %v", port, err)
			}
		}
		context := VSTIProcessContext{host: h, midi: make(chan vtrack.Event, 1024)}
		forwarded := make(chan struct{})
		go func() {
			cmd.ForwardMidi(context.midi, midiOut, func(err error) { logger.Printf("MIDI: %v", err) })
			close(forwarded)
		}()
		// the engine owns its matrix on the audio thread; this copy serves
		// GetChunk and is replaced together with what is sent in SetChunk
		var mu sync.Mutex
		pattern := vtrack.PatternOf(vtrack.DefaultMatrix(), 0)
		in := make([]engine.Bus, vtrack.NumInputs/2)
		out := make([]engine.Bus, vtrack.NumOutputs/2)
		for i := range in {
			in[i].Channels = make([][]float32, 2)
		}
		for i := range out {
			out[i].Channels = make([][]float32, 2)
		}
		return vst2.Plugin{
				UniqueID:       PLUGIN_ID,
				Version:        version,
				InputChannels:  vtrack.NumInputs,
				OutputChannels: vtrack.NumOutputs,
				Name:           PLUGIN_NAME,
				Vendor:         "vtrack",
				Category:       vst2.PluginCategoryEffect,
				ProcessFloatFunc: func(inBuf, outBuf vst2.FloatBuffer) {
					for c := 0; c < vtrack.NumInputs; c++ {
						in[c/2].Channels[c%2] = inBuf.Channel(c)[:outBuf.Frames]
					}
					for c := 0; c < vtrack.NumOutputs; c++ {
						out[c/2].Channels[c%2] = outBuf.Channel(c)[:outBuf.Frames]
					}
					e.Process(in, out, &context)
					context.events = context.events[:0] // reset buffer, but keep the allocated memory
					context.passed = 0
				},
			}, vst2.Dispatcher{
				CanDoFunc: func(pcds vst2.PluginCanDoString) vst2.CanDoResponse {
					switch pcds {
					case vst2.PluginCanReceiveEvents, vst2.PluginCanReceiveMIDIEvent, vst2.PluginCanReceiveTimeInfo:
						return vst2.YesCanDo
					}
					return vst2.NoCanDo
				},
				ProcessEventsFunc: func(ev *vst2.EventsPtr) {
					for i := 0; i < ev.NumEvents(); i++ {
						a := ev.Event(i)
						switch v := a.(type) {
						case *vst2.MIDIEvent:
							context.events = append(context.events, gomidi.FromBytes(v.Data[:], int(v.DeltaFrames)))
						}
					}
				},
				CloseFunc: func() {
					// the host no longer calls ProcessFloatFunc once it closes the plugin
					close(context.midi)
					engine.TimeoutReceive(forwarded, 3*time.Second)
					broker.Close(3 * time.Second)
					midiOut.Close()
				},
				GetChunkFunc: func(isPreset bool) []byte {
					mu.Lock()
					defer mu.Unlock()
					data, err := pattern.Marshal()
					if err != nil {
						logger.Printf("GetChunk: %v", err)
						return nil
					}
					return data
				},
				SetChunkFunc: func(data []byte, isPreset bool) {
					p, err := vtrack.ReadPattern(data)
					if err != nil {
						logger.Printf("SetChunk: %v", err)
						return
					}
					m, err := p.Matrix()
					if err != nil {
						logger.Printf("SetChunk: %v", err)
						return
					}
					bank, err := cmd.LoadBank("", p.Bank)
					if err != nil {
						logger.Printf("SetChunk: %v", err)
						return
					}
					mu.Lock()
					pattern = p
					mu.Unlock()
					if !engine.TrySend(broker.ToEngine, any(m)) || !engine.TrySend(broker.ToEngine, any(bank)) {
						logger.Printf("SetChunk: engine queue full, pattern dropped")
					}
				},
			}
	}
}

func main() {}
