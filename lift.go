package frp

// Lift returns the pure map of parent through f, per §4.4: it calls f
// only on Changed, forwarding Unchanged and Exit untouched. Go forbids
// type parameters on methods, so this is a free function rather than a
// method on Signal — the same reason Fold and the CombineN family below
// are also free functions.
func Lift[A, B any](parent Signal[A], f func(A) B) Signal[B] {
	return &liftNode[A, B]{parent: parent, f: f}
}

type liftNode[A, B any] struct {
	parent Signal[A]
	f      func(A) B
}

func (l *liftNode[A, B]) Initial() SignalType[B] {
	pi := l.parent.Initial()
	return SignalType[B]{Kind: pi.Kind, Value: l.f(pi.Value)}
}

func (l *liftNode[A, B]) Init() { l.parent.Init() }

func (l *liftNode[A, B]) PushTo(sink Sink[B]) {
	l.parent.PushTo(liftSink[A, B]{f: l.f, sink: sink})
}

type liftSink[A, B any] struct {
	f    func(A) B
	sink Sink[B]
}

func (s liftSink[A, B]) Push(e Event[A]) {
	switch e.Kind() {
	case Changed:
		a, _ := e.Value()
		if s.sink != nil {
			s.sink.Push(ChangedEvent(s.f(a)))
		}
	case Unchanged:
		if s.sink != nil {
			s.sink.Push(UnchangedEvent[B]())
		}
	case Exit:
		if s.sink != nil {
			s.sink.Push(ExitEvent[B]())
		}
	}
}
