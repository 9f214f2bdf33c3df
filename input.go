package frp

import (
	"log"
	"sync"
)

// receiver is the minimal capability an Input needs from its external
// producer: a blocking read that reports false once the producer is
// gone. *laneQueue[A] and a plain Go channel (via chanReceiver) both
// satisfy it.
type receiver[A any] interface {
	Recv() (A, bool)
}

type chanReceiver[A any] struct {
	ch <-chan A
}

func (r chanReceiver[A]) Recv() (A, bool) {
	v, ok := <-r.ch
	return v, ok
}

// inputHandle is the non-generic face of an Input lane that the
// Topology driver spawns and coordinates; it erases the payload type so
// Inputs of different A can share one ordered slice.
type inputHandle interface {
	name() string
	asNoOp() noOp
	// start runs the Input's worker loop. mu is the single
	// per-topology broadcast mutex (§5's "locking discipline"):
	// every Input shares the same *sync.Mutex, locked once per
	// external arrival and held for the whole ordered broadcast to
	// peers, so two concurrent arrivals on different lanes can never
	// interleave their deposits into the same tick round.
	start(idx int, peers []noOp, mu *sync.Mutex, logger *log.Logger, onDone func(error))
	// abort unblocks the Input's own worker if its receiver supports
	// it (e.g. a laneQueue created by ListenQueue), used by
	// TopologyHandle.Shutdown. Receivers over a caller-supplied raw
	// channel can only be unblocked by the caller closing that channel.
	abort()
}

// abortable is implemented by receivers the engine itself owns, such as
// *laneQueue, so Shutdown can unblock a worker parked in Recv.
type abortable interface{ Abort() }

// channelInput runs the broadcast-loop protocol of §4.8 against an
// external receiver: each raw arrival pushes Changed on its own lane and
// Unchanged on every peer's lane, in a fixed order, so all lanes stay
// tick-aligned.
type channelInput[A any] struct {
	nm      string
	initial A
	out     *eventLane[A]
	src     receiver[A]
}

func newChannelInput[A any](nm string, initial A, src receiver[A], internalCap int) *channelInput[A] {
	return &channelInput[A]{nm: nm, initial: initial, out: newEventLaneWithCapacity[A](internalCap), src: src}
}

func (in *channelInput[A]) name() string        { return in.nm }
func (in *channelInput[A]) asNoOp() noOp        { return noOpHandle[A]{lane: in.out} }
func (in *channelInput[A]) lane() *eventLane[A] { return in.out }

func (in *channelInput[A]) abort() {
	if a, ok := in.src.(abortable); ok {
		a.Abort()
	}
}

func (in *channelInput[A]) start(idx int, peers []noOp, mu *sync.Mutex, logger *log.Logger, onDone func(error)) {
	runProtected(logger, in.nm, onDone, func() {
		in.out.send(ChangedEvent(in.initial))
		if logger != nil {
			logger.Printf("D! lane %s emitted initial Changed", in.nm)
		}

		for {
			v, ok := in.src.Recv()
			if !ok {
				mu.Lock()
				for i, peer := range peers {
					if i == idx {
						continue
					}
					peer.sendExit()
				}
				in.out.send(ExitEvent[A]())
				mu.Unlock()
				if logger != nil {
					logger.Printf("I! lane %s lost its source, broadcasting Exit", in.nm)
				}
				return
			}

			terminated := false
			mu.Lock()
			for i, peer := range peers {
				if i == idx {
					if !in.out.send(ChangedEvent(v)) {
						terminated = true
						break
					}
				} else if peer.sendNoChange() {
					terminated = true
					break
				}
			}
			mu.Unlock()
			if terminated {
				if logger != nil {
					logger.Printf("I! lane %s terminating, a peer lane is gone", in.nm)
				}
				return
			}
		}
	})
}

// valueInput realizes a constant source as an Input per §4.3/§9: it
// pushes Changed(v) once and then does nothing further. Every
// subsequent Unchanged or Exit on its lane is written by peers calling
// its NoOp handle directly; no goroutine work is needed to sustain that.
type valueInput[A any] struct {
	nm  string
	v   A
	out *eventLane[A]
}

func newValueInput[A any](nm string, v A, internalCap int) *valueInput[A] {
	return &valueInput[A]{nm: nm, v: v, out: newEventLaneWithCapacity[A](internalCap)}
}

func (in *valueInput[A]) name() string        { return in.nm }
func (in *valueInput[A]) asNoOp() noOp        { return noOpHandle[A]{lane: in.out} }
func (in *valueInput[A]) lane() *eventLane[A] { return in.out }
func (in *valueInput[A]) abort()              {}

func (in *valueInput[A]) start(idx int, peers []noOp, mu *sync.Mutex, logger *log.Logger, onDone func(error)) {
	runProtected(logger, in.nm, onDone, func() {
		in.out.send(ChangedEvent(in.v))
		if logger != nil {
			logger.Printf("D! lane %s (value) emitted initial Changed", in.nm)
		}
	})
}
