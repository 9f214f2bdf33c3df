package frp

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/arborflow/frp/config"
	"github.com/arborflow/frp/internal/levellog"
	"github.com/arborflow/frp/internal/stats"
	"golang.org/x/sync/errgroup"
)

// runnerHandle is the non-generic face of a Runner the Topology drives
// (a root Fork, or Async's inner push), per §4.10 step 2.
type runnerHandle interface {
	name() string
	start(logger *log.Logger, onDone func(error))
}

// Spawn builds a topology by invoking build once with a fresh Builder,
// then transfers every registered Input and Runner onto its own
// goroutine, per §4.10/§6's spawn_topology entry point. cfg may be nil,
// in which case config.Default() is used.
func Spawn(cfg *config.Config, build func(*Builder)) (*TopologyHandle, error) {
	return SpawnTo(cfg, defaultOutput(), build)
}

// SpawnTo is Spawn with an explicit io.Writer for lane and topology
// logging, used by tests to redirect output.
func SpawnTo(cfg *config.Config, out io.Writer, build func(*Builder)) (*TopologyHandle, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := newBuilder(cfg, out)
	build(b)
	inputs, runners := b.snapshot()

	noops := make([]noOp, len(inputs))
	for i, in := range inputs {
		noops[i] = in.asNoOp()
	}
	// broadcastMu is the single per-topology lock §5's locking discipline
	// requires: every Input's ordered broadcast to its peers holds this
	// same mutex for the whole loop, so two external arrivals on
	// different lanes can never interleave their deposits into the same
	// tick round.
	var broadcastMu sync.Mutex

	grp, _ := errgroup.WithContext(context.Background())

	h := &TopologyHandle{
		id:      b.id,
		cfg:     cfg,
		Stats:   b.stats,
		logger:  levellog.New(out, b.level, fmt.Sprintf("[topology:%s] ", b.id), log.LstdFlags),
		inputs:  inputs,
		runners: runners,
		grp:     grp,
	}

	for _, r := range runners {
		r := r
		logger := b.laneLogger(r.name())
		grp.Go(func() error {
			var result error
			r.start(logger, func(err error) { result = err })
			return result
		})
	}
	for idx, in := range inputs {
		idx, in := idx, in
		logger := b.laneLogger(in.name())
		grp.Go(func() error {
			var result error
			in.start(idx, noops, &broadcastMu, logger, func(err error) { result = err })
			return result
		})
	}

	h.logger.Printf("I! topology started with %d input(s), %d runner(s)", len(inputs), len(runners))
	return h, nil
}

// TopologyHandle is the run-time-only handle Spawn returns. It retains
// only what's needed to request shutdown and read stats/graph
// information; per §4.10 it does not expose the internal graph.
type TopologyHandle struct {
	id     string
	cfg    *config.Config
	Stats  *stats.Registry
	logger *log.Logger

	inputs  []inputHandle
	runners []runnerHandle
	grp     *errgroup.Group

	shutdownOnce sync.Once
}

// Shutdown broadcasts Exit to every Input's outbound lane and unblocks
// any Input whose receiver the engine owns (e.g. a laneQueue from
// ListenQueue), then waits for every lane goroutine to converge,
// honoring ctx's deadline. A caller supplying their own raw channel via
// Listen must also close that channel for its Input to terminate
// cleanly; Shutdown cannot do this on their behalf.
func (h *TopologyHandle) Shutdown(ctx context.Context) error {
	h.shutdownOnce.Do(func() {
		h.logger.Printf("I! shutdown requested, broadcasting Exit to %d input(s)", len(h.inputs))
		for _, in := range h.inputs {
			in.asNoOp().sendExit()
			in.abort()
		}
	})

	done := make(chan error, 1)
	go func() { done <- h.grp.Wait() }()

	select {
	case err := <-done:
		h.logger.Printf("I! shutdown converged")
		return err
	case <-ctx.Done():
		return fmt.Errorf("frp: topology shutdown did not converge before deadline: %w", ctx.Err())
	}
}

// Dot renders the topology as Graphviz dot text: one node per Input
// lane, annotated with its current collected/emitted counts, and one
// unannotated box per Runner. No edges are drawn.
func (h *TopologyHandle) Dot() string {
	snap := h.Stats.Snapshot()
	out := "digraph arborflow {\n"
	for _, in := range h.inputs {
		s := snap[in.name()]
		out += fmt.Sprintf("  %q [label=%q];\n", in.name(), fmt.Sprintf("%s\\ncollected=%d emitted=%d", in.name(), s.Collected, s.Emitted))
	}
	for _, r := range h.runners {
		out += fmt.Sprintf("  %q [shape=box];\n", r.name())
	}
	out += "}\n"
	return out
}
