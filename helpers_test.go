package frp

import (
	"sync"

	"github.com/arborflow/frp/config"
)

// testConfig returns a valid Config for tests that construct a Builder
// directly rather than going through Spawn.
func testConfig() *config.Config {
	return config.Default()
}

// startInline freezes b's build phase and spawns every registered Input
// and Runner on its own goroutine, the same transfer Spawn performs, for
// tests that need the full Input/Fork wiring without going through
// SpawnTo's config validation and TopologyHandle bookkeeping.
func startInline(b *Builder) {
	inputs, runners := b.snapshot()
	noops := make([]noOp, len(inputs))
	for i, in := range inputs {
		noops[i] = in.asNoOp()
	}
	var mu sync.Mutex
	for _, r := range runners {
		r := r
		go r.start(nil, func(error) {})
	}
	for idx, in := range inputs {
		idx, in := idx, in
		go in.start(idx, noops, &mu, nil, func(error) {})
	}
}
