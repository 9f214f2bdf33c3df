package frp

import "github.com/pkg/errors"

// ErrLaneClosed is returned by a ListenQueue queue's Send once that queue
// has been closed or aborted.
var ErrLaneClosed = errors.New("frp: lane closed")

// ErrBuildAfterRun is the value a Builder panics with when a node is
// registered after the build phase has ended; no node may be added once
// Spawn has taken the builder's snapshot.
var ErrBuildAfterRun = errors.New("frp: cannot add to topology after run")

// wrapPanic converts a recovered panic value into an error attributing it
// to the named lane.
func wrapPanic(lane string, r interface{}) error {
	return errors.Errorf("frp: lane %s panicked: %v", lane, r)
}
