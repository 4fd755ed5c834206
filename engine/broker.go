package engine

import "time"

type (
	// Broker connects the engine, which runs on the audio thread and must
	// never block or allocate, to the goroutines that do that work for it:
	// the Allocator, which sizes capture buffers, and the Monitor, which
	// reports what the engine tells it. Each recipient has one channel.
	//
	// For closing goroutines, the broker has two channels for each goroutine:
	// CloseXXX and FinishedXXX. The CloseXXX channel has a capacity of 1, so
	// you can always send an empty message (struct{}{}) to it without
	// blocking. If the channel is already full, someone else has already
	// requested the closure. FinishedXXX is only ever closed, signalling that
	// the goroutine has cleaned up:
	//    select {
	//      case <-FinishedXXX:
	//      case <-time.After(3 * time.Second):
	//    }
	Broker struct {
		ToModel     chan MsgToModel
		ToEngine    chan any // Allocation, vtrack.Matrix or *Bank
		ToAllocator chan AllocRequest

		CloseAllocator chan struct{}
		CloseMonitor   chan struct{}

		FinishedAllocator chan struct{}
		FinishedMonitor   chan struct{}
	}

	// MsgToModel is a message from the engine. The meter reading is sent
	// every block and is not boxed, to avoid allocations; the rare messages
	// (Alert, Latched) travel in Data.
	MsgToModel struct {
		HasMeter bool
		Peak     float32
		Position float64 // in quarter notes

		Data any
	}

	// Latched tells that an input channel froze its capture buffer.
	Latched struct {
		Input int
		Depth int // number of snapshots now on the stack
	}
)

func NewBroker() *Broker {
	return &Broker{
		ToModel:           make(chan MsgToModel, 1024),
		ToEngine:          make(chan any, 64),
		ToAllocator:       make(chan AllocRequest, 16),
		CloseAllocator:    make(chan struct{}, 1),
		CloseMonitor:      make(chan struct{}, 1),
		FinishedAllocator: make(chan struct{}),
		FinishedMonitor:   make(chan struct{}),
	}
}

// Close asks the allocator and the monitor to quit and waits for them, at
// most timeout each.
func (b *Broker) Close(timeout time.Duration) {
	TrySend(b.CloseAllocator, struct{}{})
	TrySend(b.CloseMonitor, struct{}{})
	TimeoutReceive(b.FinishedAllocator, timeout)
	TimeoutReceive(b.FinishedMonitor, timeout)
}

// TrySend is a helper function to send a value to a channel if it is not full.
// It is guaranteed to be non-blocking. Return true if the value was sent, false
// otherwise.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}

// TimeoutReceive is a helper function to block until a value is received from a
// channel, or timing out after t. ok will be false if the timeout occurred or
// if the channel is closed.
func TimeoutReceive[T any](c <-chan T, t time.Duration) (v T, ok bool) {
	select {
	case v, ok = <-c:
		return v, ok
	case <-time.After(t):
		return v, false
	}
}
