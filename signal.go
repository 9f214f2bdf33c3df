package frp

// Sink accepts Event[A] by push. Each sink is owned by exactly one
// upstream signal's PushTo driver; sinks compose (see liftSink, forkSink).
type Sink[A any] interface {
	Push(Event[A])
}

// Signal is a node in the data-flow graph: a producer of Event[A]. A
// Signal is consumed exactly once, by the single downstream that attaches
// to it (or by the topology driver, for root signals added via
// Add).
type Signal[A any] interface {
	// Initial returns the signal's compile-time declared initial value.
	Initial() SignalType[A]

	// Init is an idempotent, no-argument hook invoked once at build time
	// when a downstream consumer attaches. Nodes that must materialize
	// lazy state (e.g. wrapping a Value into an internal Input) do it here.
	Init()

	// PushTo consumes the signal and runs until Exit, forwarding every
	// output event to sink. If sink is nil the signal must still drain its
	// inputs so that upstream producers never block.
	PushTo(sink Sink[A])
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc[A any] func(Event[A])

// Push implements Sink.
func (f SinkFunc[A]) Push(e Event[A]) { f(e) }
