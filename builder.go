package frp

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/arborflow/frp/config"
	"github.com/arborflow/frp/internal/levellog"
	"github.com/arborflow/frp/internal/stats"
	"github.com/google/uuid"
)

// Builder accumulates the two append-only collections Topology needs at
// run time: Inputs (for the NoOp coordination protocol) and Runners
// (root Forks to be driven), per §4.10. It is only valid during the
// build callback passed to Spawn; registering a node after Spawn has
// moved on to running the topology panics with ErrBuildAfterRun.
type Builder struct {
	id    string
	cfg   *config.Config
	out   io.Writer
	level levellog.Level
	stats *stats.Registry

	mu      sync.Mutex
	started bool
	inputs  []inputHandle
	runners []runnerHandle
	seq     map[string]int
}

func newBuilder(cfg *config.Config, out io.Writer) *Builder {
	level, err := levellog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = levellog.INFO
	}
	return &Builder{
		id:    uuid.NewString(),
		cfg:   cfg,
		out:   out,
		level: level,
		stats: stats.NewRegistry(cfg.StatsNamespace),
		seq:   make(map[string]int),
	}
}

// nextName returns an incrementing "kind-N" name, per the SUPPLEMENTED
// FEATURES naming convention (named lanes default to input-N/fork-N).
func (b *Builder) nextName(kind string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq[kind]++
	return fmt.Sprintf("%s-%d", kind, b.seq[kind])
}

// laneLogger returns a *log.Logger prefixed "[lane:<name>] ", filtered
// through internal/levellog at the Builder's configured level.
func (b *Builder) laneLogger(name string) *log.Logger {
	return levellog.New(b.out, b.level, fmt.Sprintf("[lane:%s] ", name), log.LstdFlags)
}

func (b *Builder) registerInput(in inputHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.started {
		panic(ErrBuildAfterRun)
	}
	b.inputs = append(b.inputs, in)
}

func (b *Builder) registerRunner(r runnerHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.started {
		panic(ErrBuildAfterRun)
	}
	b.runners = append(b.runners, r)
}

// snapshot freezes the build phase and hands the accumulated Inputs and
// Runners to the caller (Spawn); it is an error to register anything
// afterward.
func (b *Builder) snapshot() ([]inputHandle, []runnerHandle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.started = true
	ins := make([]inputHandle, len(b.inputs))
	copy(ins, b.inputs)
	runs := make([]runnerHandle, len(b.runners))
	copy(runs, b.runners)
	return ins, runs
}

// Value returns a constant source, per §4.3. A free function rather than
// a Builder method because Go disallows type parameters on methods.
func Value[A any](b *Builder, v A) *Value[A] {
	return newValue(b, b.nextName("value"), v)
}

// Listen wraps rx into an Input adapter and returns a Branch over a
// Channel consuming that Input's outbound lane, per §4.10.
func Listen[A any](b *Builder, initial A, rx <-chan A) *Branch[A] {
	return listenWith[A](b, initial, chanReceiver[A]{ch: rx})
}

// ListenQueue is a convenience over Listen that also creates and owns
// the bounded external queue, sized by Config.InboundQueueCapacity, and
// returns it so callers can Send into the topology instead of supplying
// their own channel.
func ListenQueue[A any](b *Builder, initial A) (*Branch[A], *laneQueue[A]) {
	q := newLaneQueue[A](b.cfg.InboundQueueCapacity)
	return listenWith[A](b, initial, q), q
}

func listenWith[A any](b *Builder, initial A, src receiver[A]) *Branch[A] {
	name := b.nextName("input")
	in := newChannelInput[A](name, initial, src, b.cfg.InternalQueueCapacity)
	in.lane().attachStats(name, b.stats)
	b.registerInput(in)
	return Add[A](b, &Channel[A]{initial: initial, in: in})
}

// Add wraps signal in a Fork, registers the Fork as a Runner, and
// returns a Branch handle over it, per §4.10. signal.Init() runs
// synchronously here, during the build callback, so every Branch in the
// chain has registered its lane in its own upstream Fork before Spawn
// transfers any node onto its running goroutine.
func Add[A any](b *Builder, signal Signal[A]) *Branch[A] {
	signal.Init()
	name := b.nextName("fork")
	f := newFork[A](b, name, signal)
	b.registerRunner(f)
	return newBranch(f)
}

// defaultOutput is where lane loggers write when Spawn is not given an
// explicit io.Writer.
func defaultOutput() io.Writer { return os.Stderr }
