package frp

import (
	"fmt"
	"log"
	"sync"

	"github.com/arborflow/frp/internal/stats"
)

// forkState is the shared, lock-protected vector of outbound lanes a
// Fork fans events out to, per §4.7/Fork state in §3. It is mutated only
// at build time (a new Branch registering its lane); at run time the
// vector is snapshot-copied before each fan-out so no lock is held
// while sending.
type forkState[A any] struct {
	mu    sync.Mutex
	lanes []*eventLane[A]
}

func (s *forkState[A]) addLane(l *eventLane[A]) {
	s.mu.Lock()
	s.lanes = append(s.lanes, l)
	s.mu.Unlock()
}

func (s *forkState[A]) snapshot() []*eventLane[A] {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*eventLane[A], len(s.lanes))
	copy(out, s.lanes)
	return out
}

// fork owns the parent signal added to the topology via Add; it is
// driven by exactly one goroutine spawned by the Topology as a Runner.
type fork[A any] struct {
	nm      string
	parent  Signal[A]
	state   *forkState[A]
	builder *Builder

	branchSeq int
}

func newFork[A any](b *Builder, name string, parent Signal[A]) *fork[A] {
	return &fork[A]{nm: name, parent: parent, state: &forkState[A]{}, builder: b}
}

func (f *fork[A]) name() string { return f.nm }

func (f *fork[A]) nextBranchName() string {
	f.state.mu.Lock()
	defer f.state.mu.Unlock()
	f.branchSeq++
	return fmt.Sprintf("%s:branch-%d", f.nm, f.branchSeq)
}

func (f *fork[A]) start(logger *log.Logger, onDone func(error)) {
	runProtected(logger, f.nm, onDone, func() {
		f.parent.PushTo(forkSink[A]{nm: f.nm, reg: f.builder.stats, state: f.state})
	})
}

type forkSink[A any] struct {
	nm    string
	reg   *stats.Registry
	state *forkState[A]
}

func (s forkSink[A]) Push(e Event[A]) {
	if s.reg != nil {
		s.reg.CountCollected(s.nm)
	}
	for _, lane := range s.state.snapshot() {
		lane.send(e)
	}
}

// Branch is the build-time handle returned by Add, Listen's continuations
// and Async: a cloneable reference to a Fork's shared lane vector that
// registers a new outbound lane only when it is itself attached
// downstream (its Init is called), per §4.7/§9.
type Branch[A any] struct {
	fork *fork[A]

	mu      sync.Mutex
	started bool
	lane    *eventLane[A]
}

func newBranch[A any](f *fork[A]) *Branch[A] {
	return &Branch[A]{fork: f}
}

func (b *Branch[A]) Initial() SignalType[A] { return b.fork.parent.Initial() }

func (b *Branch[A]) Init() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.started {
		return
	}
	b.started = true
	b.lane = newEventLaneWithCapacity[A](b.fork.builder.cfg.InternalQueueCapacity)
	b.lane.attachStats(b.fork.nextBranchName(), b.fork.builder.stats)
	b.fork.state.addLane(b.lane)
	b.fork.parent.Init()
}

func (b *Branch[A]) PushTo(sink Sink[A]) {
	b.Init()
	drainLane(b.lane, sink)
}

// Clone returns a new handle over the same Fork. Cloning never
// registers a lane; only a subsequent attach (PushTo, or passing the
// clone to Add/Lift/Fold/Combine and running the topology) does.
func (b *Branch[A]) Clone() *Branch[A] {
	return newBranch(b.fork)
}
