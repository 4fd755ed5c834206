package engine

import (
	"log"
	"math"
	"sync/atomic"
)

// Monitor drains Broker.ToModel, logging alerts and latches and keeping the
// latest meter reading for whoever wants to display it.
type Monitor struct {
	broker   *Broker
	logger   *log.Logger
	peak     atomic.Uint32
	position atomic.Uint64
}

func NewMonitor(broker *Broker, logger *log.Logger) *Monitor {
	return &Monitor{broker: broker, logger: logger}
}

// Run handles messages until CloseMonitor is signalled.
func (m *Monitor) Run() {
	for {
		select {
		case msg := <-m.broker.ToModel:
			m.handle(msg)
		case <-m.broker.CloseMonitor:
			for {
				select {
				case msg := <-m.broker.ToModel:
					m.handle(msg)
				default:
					close(m.broker.FinishedMonitor)
					return
				}
			}
		}
	}
}

func (m *Monitor) handle(msg MsgToModel) {
	if msg.HasMeter {
		m.peak.Store(math.Float32bits(msg.Peak))
		m.position.Store(math.Float64bits(msg.Position))
	}
	switch d := msg.Data.(type) {
	case Alert:
		m.logger.Printf("%s: %s: %s", d.Priority, d.Name, d.Message)
	case Latched:
		m.logger.Printf("input %d latched, %d snapshots on stack", d.Input, d.Depth)
	}
}

// Peak is the most recent output peak, linear.
func (m *Monitor) Peak() float32 {
	return math.Float32frombits(m.peak.Load())
}

// Position is the pattern position of the most recent meter reading.
func (m *Monitor) Position() float64 {
	return math.Float64frombits(m.position.Load())
}
