package frp

import (
	"log"

	"github.com/arborflow/frp/internal/queue"
)

// asyncSink translates an inner signal's Event stream into the raw
// values a fresh Input expects, per §4.9: Changed unwraps to its
// payload, Unchanged is dropped, Exit closes the queue.
type asyncSink[A any] struct{ q *queue.Unbounded[A] }

func (s asyncSink[A]) Push(e Event[A]) {
	switch e.Kind() {
	case Changed:
		a, _ := e.Value()
		s.q.Push(a)
	case Exit:
		s.q.Close()
	}
}

// unboundedReceiver adapts a raw-value queue.Unbounded to the receiver
// interface channelInput expects.
type unboundedReceiver[A any] struct{ q *queue.Unbounded[A] }

func (r unboundedReceiver[A]) Recv() (A, bool) { return r.q.Pop() }

// asyncPush is the Runner that drives inner.PushTo into q on its own
// goroutine, registered the same way a Fork is so TopologyHandle.Shutdown's
// errgroup.Wait() actually joins it instead of leaking an untracked
// goroutine outside the topology's convergence wait.
type asyncPush[A any] struct {
	nm    string
	inner Signal[A]
	q     *queue.Unbounded[A]
}

func (a *asyncPush[A]) name() string { return a.nm }

func (a *asyncPush[A]) start(logger *log.Logger, onDone func(error)) {
	runProtected(logger, a.nm, func(err error) {
		a.q.Close()
		onDone(err)
	}, func() {
		a.inner.PushTo(asyncSink[A]{q: a.q})
	})
}

// Async decouples inner onto its own input lane, per §4.9/§9: inner's
// push runs as a Runner on its own goroutine (so slow work never blocks
// the synchronized tick), feeding a fresh queue that's then exposed to
// the topology as an ordinary Input via Listen's machinery. A free
// function, not a method, for the same reason as Lift/Fold/CombineN.
func Async[A any](b *Builder, inner Signal[A]) *Branch[A] {
	inner.Init()
	initial := inner.Initial().Value

	q := queue.New[A]()
	name := b.nextName("async")
	b.registerRunner(&asyncPush[A]{nm: name, inner: inner, q: q})

	return listenWith[A](b, initial, unboundedReceiver[A]{q: q})
}
