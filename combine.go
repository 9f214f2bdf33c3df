package frp

import "sync"

// laneSink adapts an eventLane to Sink so a parent's push_to driver can
// feed it directly.
type laneSink[A any] struct{ lane *eventLane[A] }

func (s laneSink[A]) Push(e Event[A]) { s.lane.send(e) }

// feedParent runs parent.PushTo on its own goroutine, recovering any
// panic the same way Fork and Async do, and force-pushing Exit onto lane
// if the parent's chain dies abnormally so the combine loop waiting on
// lane still observes a terminal event. The combine loop does not wait
// for its feeders: once it has emitted Exit it returns, and a feeder
// whose parent has not exited keeps draining that parent.
func feedParent[A any](parent Signal[A], lane *eventLane[A], wg *sync.WaitGroup) {
	defer wg.Done()
	runProtected(nil, "combine-parent", func(err error) {
		if err != nil {
			lane.send(ExitEvent[A]())
		}
	}, func() {
		parent.PushTo(laneSink[A]{lane: lane})
	})
}

// Combine2 is LiftN specialized to two parents, per §4.5: each tick it
// pulls exactly one event from each parent's dedicated lane (in a fixed
// order), updates its per-parent cache on Changed, and emits Changed
// only if at least one parent changed this tick.
func Combine2[A, B, C any](pa Signal[A], pb Signal[B], f func(A, B) C) Signal[C] {
	return &combine2Node[A, B, C]{pa: pa, pb: pb, f: f}
}

type combine2Node[A, B, C any] struct {
	pa Signal[A]
	pb Signal[B]
	f  func(A, B) C
}

func (c *combine2Node[A, B, C]) Initial() SignalType[C] {
	ia, ib := c.pa.Initial(), c.pb.Initial()
	kind := ConstantKind
	if ia.Kind == DynamicKind || ib.Kind == DynamicKind {
		kind = DynamicKind
	}
	return SignalType[C]{Kind: kind, Value: c.f(ia.Value, ib.Value)}
}

func (c *combine2Node[A, B, C]) Init() {
	c.pa.Init()
	c.pb.Init()
}

func (c *combine2Node[A, B, C]) PushTo(sink Sink[C]) {
	la, lb := newEventLane[A](), newEventLane[B]()
	var wg sync.WaitGroup
	wg.Add(2)
	go feedParent[A](c.pa, la, &wg)
	go feedParent[B](c.pb, lb, &wg)

	cachedA := c.pa.Initial().Value
	cachedB := c.pb.Initial().Value

	for {
		ea, okA := la.recv()
		eb, okB := lb.recv()
		if !okA || !okB || ea.IsExit() || eb.IsExit() {
			if sink != nil {
				sink.Push(ExitEvent[C]())
			}
			break
		}
		changed := false
		if ea.IsChanged() {
			cachedA, _ = ea.Value()
			changed = true
		}
		if eb.IsChanged() {
			cachedB, _ = eb.Value()
			changed = true
		}
		if sink != nil {
			if changed {
				sink.Push(ChangedEvent(c.f(cachedA, cachedB)))
			} else {
				sink.Push(UnchangedEvent[C]())
			}
		}
	}
}

// Combine3 is LiftN specialized to three parents; see Combine2 for the
// per-tick discipline.
func Combine3[A, B, C, D any](pa Signal[A], pb Signal[B], pc Signal[C], f func(A, B, C) D) Signal[D] {
	return &combine3Node[A, B, C, D]{pa: pa, pb: pb, pc: pc, f: f}
}

type combine3Node[A, B, C, D any] struct {
	pa Signal[A]
	pb Signal[B]
	pc Signal[C]
	f  func(A, B, C) D
}

func (c *combine3Node[A, B, C, D]) Initial() SignalType[D] {
	ia, ib, ic := c.pa.Initial(), c.pb.Initial(), c.pc.Initial()
	kind := ConstantKind
	if ia.Kind == DynamicKind || ib.Kind == DynamicKind || ic.Kind == DynamicKind {
		kind = DynamicKind
	}
	return SignalType[D]{Kind: kind, Value: c.f(ia.Value, ib.Value, ic.Value)}
}

func (c *combine3Node[A, B, C, D]) Init() {
	c.pa.Init()
	c.pb.Init()
	c.pc.Init()
}

func (c *combine3Node[A, B, C, D]) PushTo(sink Sink[D]) {
	la, lb, lc := newEventLane[A](), newEventLane[B](), newEventLane[C]()
	var wg sync.WaitGroup
	wg.Add(3)
	go feedParent[A](c.pa, la, &wg)
	go feedParent[B](c.pb, lb, &wg)
	go feedParent[C](c.pc, lc, &wg)

	cachedA := c.pa.Initial().Value
	cachedB := c.pb.Initial().Value
	cachedC := c.pc.Initial().Value

	for {
		ea, okA := la.recv()
		eb, okB := lb.recv()
		ec, okC := lc.recv()
		if !okA || !okB || !okC || ea.IsExit() || eb.IsExit() || ec.IsExit() {
			if sink != nil {
				sink.Push(ExitEvent[D]())
			}
			break
		}
		changed := false
		if ea.IsChanged() {
			cachedA, _ = ea.Value()
			changed = true
		}
		if eb.IsChanged() {
			cachedB, _ = eb.Value()
			changed = true
		}
		if ec.IsChanged() {
			cachedC, _ = ec.Value()
			changed = true
		}
		if sink != nil {
			if changed {
				sink.Push(ChangedEvent(c.f(cachedA, cachedB, cachedC)))
			} else {
				sink.Push(UnchangedEvent[D]())
			}
		}
	}
}
