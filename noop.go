package frp

// noOp is the type-erased capability one Input uses to push Unchanged or
// Exit into a peer Input's outbound lane without owning that lane.
type noOp interface {
	// sendNoChange enqueues Unchanged on the peer's lane and reports
	// whether the peer's lane has already been torn down (true means
	// gone; the caller should terminate its own loop).
	sendNoChange() bool
	// sendExit enqueues Exit on the peer's lane.
	sendExit()
}

// noOpHandle adapts an eventLane to noOp. It never owns the lane; it is
// cloned freely across every other Input's NoOp snapshot.
type noOpHandle[A any] struct {
	lane *eventLane[A]
}

func (h noOpHandle[A]) sendNoChange() bool {
	return !h.lane.send(UnchangedEvent[A]())
}

func (h noOpHandle[A]) sendExit() {
	h.lane.send(ExitEvent[A]())
}
