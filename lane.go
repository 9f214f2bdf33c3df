package frp

import (
	"github.com/arborflow/frp/internal/queue"
	"github.com/arborflow/frp/internal/stats"
)

// laneBacking is the minimal FIFO contract an eventLane needs; both
// queue.Unbounded and queue.Bounded satisfy it.
type laneBacking[A any] interface {
	Push(Event[A]) bool
	Pop() (Event[A], bool)
	Close()
}

// eventLane is an Input's or Branch's outbound queue. Per §5 this is
// internal fan-out rather than external input, so it defaults to
// unbounded; a positive Config.InternalQueueCapacity makes every Input
// and Branch lane a bounded, backpressuring queue instead. Exactly one event
// is pushed per tick by either the lane's own worker (Changed) or a
// peer's NoOp handle (Unchanged, Exit).
type eventLane[A any] struct {
	q    laneBacking[A]
	name string
	reg  *stats.Registry
}

// newEventLane returns an unbounded lane, the default per §5.
func newEventLane[A any]() *eventLane[A] {
	return &eventLane[A]{q: queue.New[Event[A]]()}
}

// newEventLaneWithCapacity returns a bounded lane when capacity > 0, or
// an unbounded lane otherwise.
func newEventLaneWithCapacity[A any](capacity int) *eventLane[A] {
	if capacity <= 0 {
		return newEventLane[A]()
	}
	return &eventLane[A]{q: queue.NewBounded[Event[A]](capacity)}
}

// attachStats wires the per-lane collected/emitted counters the
// SUPPLEMENTED FEATURES ambient stack adds on top of the core protocol;
// a lane never stats-tracked (combine/async internal plumbing) simply
// keeps reg nil and send stays a plain no-op counter call.
func (l *eventLane[A]) attachStats(name string, reg *stats.Registry) {
	l.name, l.reg = name, reg
}

func (l *eventLane[A]) send(e Event[A]) bool {
	ok := l.q.Push(e)
	if ok && l.reg != nil {
		l.reg.CountEmitted(l.name)
	}
	return ok
}

func (l *eventLane[A]) recv() (Event[A], bool) {
	return l.q.Pop()
}

func (l *eventLane[A]) close() {
	l.q.Close()
}

// drainLane forwards every event read off lane to sink, emitting Exit
// downstream on lane closure, until Exit is observed. If sink is nil the
// lane is still drained so its producer is never blocked, per §4.1's
// "if sink is absent the signal must still drain its inputs" rule.
func drainLane[A any](lane *eventLane[A], sink Sink[A]) {
	for {
		e, ok := lane.recv()
		if !ok {
			if sink != nil {
				sink.Push(ExitEvent[A]())
			}
			return
		}
		if sink != nil {
			sink.Push(e)
		}
		if e.IsExit() {
			return
		}
	}
}
