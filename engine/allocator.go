package engine

import "fmt"

type (
	// Allocator allocates capture buffers for the engine, so that a tempo
	// change never allocates on the audio thread. It runs in its own
	// goroutine; requests come in through Broker.ToAllocator and replies go
	// out through Broker.ToEngine.
	Allocator struct {
		broker *Broker
	}

	// AllocRequest asks for Count zeroed buffers of Length samples.
	AllocRequest struct {
		Length int
		Count  int
	}

	// Allocation answers an AllocRequest. Err is set if the buffers could not
	// be allocated, in which case Buffers is nil.
	Allocation struct {
		Length  int
		Buffers [][]float32
		Err     error
	}
)

func NewAllocator(broker *Broker) *Allocator {
	return &Allocator{broker: broker}
}

// Run serves allocation requests until CloseAllocator is signalled.
func (a *Allocator) Run() {
	for {
		select {
		case req := <-a.broker.ToAllocator:
			reply := a.allocate(req)
			if reply.Err != nil {
				TrySend(a.broker.ToModel, MsgToModel{Data: Alert{Name: "CaptureResize", Priority: Error, Message: reply.Err.Error(), Duration: defaultAlertDuration}})
			}
			select {
			case a.broker.ToEngine <- reply:
			case <-a.broker.CloseAllocator:
				close(a.broker.FinishedAllocator)
				return
			}
		case <-a.broker.CloseAllocator:
			close(a.broker.FinishedAllocator)
			return
		}
	}
}

func (a *Allocator) allocate(req AllocRequest) (ret Allocation) {
	ret.Length = req.Length
	defer func() {
		if r := recover(); r != nil {
			ret.Buffers = nil
			ret.Err = fmt.Errorf("allocating %d capture buffers of %d samples: %v", req.Count, req.Length, r)
		}
	}()
	if req.Length <= 0 {
		return Allocation{Length: req.Length, Err: fmt.Errorf("allocate %d: %w", req.Length, ErrInvalidLength)}
	}
	ret.Buffers = make([][]float32, req.Count)
	for i := range ret.Buffers {
		ret.Buffers[i] = make([]float32, req.Length)
	}
	return ret
}
