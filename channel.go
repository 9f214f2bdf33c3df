package frp

// Channel is the leaf signal produced by Listen: it reads events
// off the Input lane an external producer feeds and forwards them
// unchanged, per §4.2.
type Channel[A any] struct {
	initial A
	in      *channelInput[A]
}

func (c *Channel[A]) Initial() SignalType[A] { return Dynamic(c.initial) }

func (c *Channel[A]) Init() {}

func (c *Channel[A]) PushTo(sink Sink[A]) {
	drainLane(c.in.lane(), sink)
}
