package frp

import (
	"strconv"
	"testing"
)

// tickSignal is a scriptedSignal variant whose PushTo blocks between
// events until told to advance, letting a test drive two parents
// lockstep to exercise Combine2/Combine3's one-event-per-parent-per-tick
// discipline.
type tickSignal[A any] struct {
	initial SignalType[A]
	ticks   chan Event[A]
	inited  bool
}

func newTickSignal[A any](initial A) *tickSignal[A] {
	return &tickSignal[A]{initial: Dynamic(initial), ticks: make(chan Event[A])}
}

func (s *tickSignal[A]) Initial() SignalType[A] { return s.initial }
func (s *tickSignal[A]) Init()                  { s.inited = true }
func (s *tickSignal[A]) PushTo(sink Sink[A]) {
	for e := range s.ticks {
		if sink != nil {
			sink.Push(e)
		}
		if e.IsExit() {
			return
		}
	}
}

func TestCombine2EmitsChangedWhenEitherParentChanges(t *testing.T) {
	pa := newTickSignal[int](1)
	pb := newTickSignal[string]("x")
	combined := Combine2[int, string, string](pa, pb, func(a int, b string) string {
		return b + strconv.Itoa(a)
	})

	sink := &recordingSink[string]{}
	done := make(chan struct{})
	go func() {
		combined.PushTo(sink)
		close(done)
	}()

	// Tick 1: a changes, b doesn't.
	pa.ticks <- ChangedEvent(2)
	pb.ticks <- UnchangedEvent[string]()
	waitForLen(t, func() int { return len(sink.events) }, 1)
	if v, _ := sink.events[0].Value(); !sink.events[0].IsChanged() || v != "x2" {
		t.Fatalf("tick 1 = %v, want Changed(\"x2\")", sink.events[0])
	}

	// Tick 2: neither changes.
	pa.ticks <- UnchangedEvent[int]()
	pb.ticks <- UnchangedEvent[string]()
	waitForLen(t, func() int { return len(sink.events) }, 2)
	if !sink.events[1].IsUnchanged() {
		t.Fatalf("tick 2 = %v, want Unchanged", sink.events[1])
	}

	// Tick 3: only b changes; a's cached value from tick 1 must be reused.
	pa.ticks <- UnchangedEvent[int]()
	pb.ticks <- ChangedEvent("y")
	waitForLen(t, func() int { return len(sink.events) }, 3)
	if v, _ := sink.events[2].Value(); !sink.events[2].IsChanged() || v != "y2" {
		t.Fatalf("tick 3 = %v, want Changed(\"y2\")", sink.events[2])
	}

	pa.ticks <- ExitEvent[int]()
	pb.ticks <- ExitEvent[string]()
	<-done

	if !sink.events[3].IsExit() {
		t.Fatalf("tick 4 = %v, want Exit", sink.events[3])
	}
}

func TestCombine2InitialCombinesBothParents(t *testing.T) {
	pa := newTickSignal[int](3)
	pb := newTickSignal[int](4)
	combined := Combine2[int, int, int](pa, pb, func(a, b int) int { return a + b })
	if got := combined.Initial(); got.Value != 7 || got.Kind != DynamicKind {
		t.Fatalf("Initial = %+v, want Dynamic(7)", got)
	}
}

func TestCombine2InitCascadesToBothParents(t *testing.T) {
	pa := newTickSignal[int](0)
	pb := newTickSignal[int](0)
	combined := Combine2[int, int, int](pa, pb, func(a, b int) int { return a + b })
	combined.Init()
	if !pa.inited || !pb.inited {
		t.Fatal("Combine2.Init did not cascade to both parents")
	}
}

func TestCombine3EmitsExitWhenAnyParentExits(t *testing.T) {
	pa := newTickSignal[int](0)
	pb := newTickSignal[int](0)
	pc := newTickSignal[int](0)
	combined := Combine3[int, int, int, int](pa, pb, pc, func(a, b, c int) int { return a + b + c })

	sink := &recordingSink[int]{}
	done := make(chan struct{})
	go func() {
		combined.PushTo(sink)
		close(done)
	}()

	pa.ticks <- ExitEvent[int]()
	pb.ticks <- ChangedEvent(1)
	pc.ticks <- ChangedEvent(1)
	<-done

	if len(sink.events) == 0 || !sink.events[len(sink.events)-1].IsExit() {
		t.Fatalf("last event = %v, want Exit", sink.events[len(sink.events)-1])
	}
}
