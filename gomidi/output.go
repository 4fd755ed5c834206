package gomidi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vtrack/vtrack"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// Output sends generated notes to an RtMidi output port. Use it outside the
// audio thread: Send may block on the driver.
type Output struct {
	driver *rtmididrv.Driver
	out    drivers.Out
	send   func(midi.Message) error
}

var ErrNoDriver = errors.New("no MIDI driver available")

// NewOutput opens the RtMidi driver. If that fails, the output has no ports
// and Send does nothing.
func NewOutput() *Output {
	o := &Output{}
	// there's not much we can do if this fails, so just use o.driver = nil to
	// indicate no driver available
	o.driver, _ = rtmididrv.New()
	return o
}

// Ports lists the names of the available output ports.
func (o *Output) Ports() []string {
	if o.driver == nil {
		return nil
	}
	outs, err := o.driver.Outs()
	if err != nil {
		return nil
	}
	ret := make([]string, len(outs))
	for i, out := range outs {
		ret[i] = out.String()
	}
	return ret
}

// OpenBy opens the first port whose name starts with namePrefix, or the
// first port of all if takeFirst is set, closing the current one.
func (o *Output) OpenBy(namePrefix string, takeFirst bool) error {
	if o.driver == nil {
		return ErrNoDriver
	}
	outs, err := o.driver.Outs()
	if err != nil {
		return fmt.Errorf("listing MIDI outputs failed: %w", err)
	}
	for _, out := range outs {
		if !takeFirst && !strings.HasPrefix(out.String(), namePrefix) {
			continue
		}
		o.closePort()
		send, err := midi.SendTo(out)
		if err != nil {
			return fmt.Errorf("opening MIDI output %q failed: %w", out.String(), err)
		}
		o.out, o.send = out, send
		return nil
	}
	if takeFirst {
		return errors.New("could not find any MIDI output")
	}
	return fmt.Errorf("could not find any MIDI output starting with %q", namePrefix)
}

// Send writes the event to the open port. Events that have no MIDI message
// are skipped.
func (o *Output) Send(ev vtrack.Event) error {
	if o.send == nil {
		return nil
	}
	msg, ok := ToMessage(ev)
	if !ok {
		return nil
	}
	if err := o.send(msg); err != nil {
		return fmt.Errorf("sending %v failed: %w", msg, err)
	}
	return nil
}

func (o *Output) closePort() {
	if o.out != nil && o.out.IsOpen() {
		o.out.Close()
	}
	o.out, o.send = nil, nil
}

func (o *Output) Close() {
	if o.driver == nil {
		return
	}
	o.closePort()
	o.driver.Close()
}
