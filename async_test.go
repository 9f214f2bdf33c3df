package frp

import "testing"

func TestAsyncDecouplesFromInnerSignal(t *testing.T) {
	inner := newTickSignal[int](9)
	b := newBuilder(testConfig(), nopWriter{})
	branch := Async[int](b, inner)

	if got := branch.Initial(); got.Value != 9 {
		t.Fatalf("Initial = %+v, want 9", got)
	}
	branch.Init()
	startInline(b)

	sink := &recordingSink[int]{}
	done := make(chan struct{})
	go func() {
		branch.PushTo(sink)
		close(done)
	}()

	// The async re-input is an ordinary channelInput: it unconditionally
	// emits Changed(initial) as events[0] before any inner tick reaches
	// it, so the inner Changed(10) lands at events[1].
	waitForLen(t, func() int { return len(sink.events) }, 1)
	if v, _ := sink.events[0].Value(); !sink.events[0].IsChanged() || v != 9 {
		t.Fatalf("event 0 = %v, want Changed(9) (the initial tick)", sink.events[0])
	}

	inner.ticks <- ChangedEvent(10)
	waitForLen(t, func() int { return len(sink.events) }, 2)
	if v, _ := sink.events[1].Value(); !sink.events[1].IsChanged() || v != 10 {
		t.Fatalf("event 1 = %v, want Changed(10)", sink.events[1])
	}

	inner.ticks <- ExitEvent[int]()
	<-done

	last := sink.events[len(sink.events)-1]
	if !last.IsExit() {
		t.Fatalf("last event = %v, want Exit", last)
	}
}

func TestAsyncDropsUnchangedFromInner(t *testing.T) {
	inner := newTickSignal[int](0)
	b := newBuilder(testConfig(), nopWriter{})
	branch := Async[int](b, inner)
	branch.Init()
	startInline(b)

	sink := &recordingSink[int]{}
	done := make(chan struct{})
	go func() {
		branch.PushTo(sink)
		close(done)
	}()

	// events[0] is the re-input's own initial Changed(0), emitted before
	// any inner tick arrives; drain it first the way drainInitial does.
	waitForLen(t, func() int { return len(sink.events) }, 1)
	if v, _ := sink.events[0].Value(); !sink.events[0].IsChanged() || v != 0 {
		t.Fatalf("event 0 = %v, want Changed(0) (the initial tick)", sink.events[0])
	}

	inner.ticks <- UnchangedEvent[int]()
	inner.ticks <- ChangedEvent(1)
	waitForLen(t, func() int { return len(sink.events) }, 2)
	if v, _ := sink.events[1].Value(); !sink.events[1].IsChanged() || v != 1 {
		t.Fatalf("event 1 = %v, want Changed(1) (Unchanged must be dropped)", sink.events[1])
	}

	inner.ticks <- ExitEvent[int]()
	<-done
}
