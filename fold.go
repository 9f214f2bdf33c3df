package frp

// Fold returns a stateful reduction over parent. Per §4.6 (resolving the
// source's Open Question explicitly in favor of the core spec's chosen
// contract) f fires only on Changed; Unchanged and Exit pass through
// without invoking f.
func Fold[A, B any](parent Signal[A], seed B, f func(B, A) B) Signal[B] {
	return &foldNode[A, B]{parent: parent, seed: seed, f: f}
}

type foldNode[A, B any] struct {
	parent Signal[A]
	seed   B
	f      func(B, A) B
}

func (fd *foldNode[A, B]) Initial() SignalType[B] { return Dynamic(fd.seed) }

func (fd *foldNode[A, B]) Init() { fd.parent.Init() }

func (fd *foldNode[A, B]) PushTo(sink Sink[B]) {
	fd.parent.PushTo(&foldSink[A, B]{f: fd.f, acc: fd.seed, sink: sink})
}

// foldSink owns the accumulator; it is exclusively driven by its
// parent's single push_to goroutine so no locking is needed.
type foldSink[A, B any] struct {
	f    func(B, A) B
	acc  B
	sink Sink[B]
}

func (s *foldSink[A, B]) Push(e Event[A]) {
	switch e.Kind() {
	case Changed:
		a, _ := e.Value()
		s.acc = s.f(s.acc, a)
		if s.sink != nil {
			s.sink.Push(ChangedEvent(s.acc))
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
