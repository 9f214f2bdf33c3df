package frp

import "sync"

// Value is the leaf signal produced by the Value function: a single constant.
// Per §4.3/§9, a Value only needs to participate in the tick protocol
// once something downstream actually attaches to it, so it materializes
// its backing Input lazily, the first time Init is called.
type Value[A any] struct {
	b     *Builder
	name  string
	value A

	mu   sync.Mutex
	init bool
	in   *valueInput[A]
}

func newValue[A any](b *Builder, name string, v A) *Value[A] {
	return &Value[A]{b: b, name: name, value: v}
}

func (v *Value[A]) Initial() SignalType[A] { return Constant(v.value) }

func (v *Value[A]) Init() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.init {
		return
	}
	v.init = true
	v.in = newValueInput[A](v.name, v.value, v.b.cfg.InternalQueueCapacity)
	v.b.registerInput(v.in)
}

func (v *Value[A]) PushTo(sink Sink[A]) {
	v.Init()
	drainLane(v.in.lane(), sink)
}
