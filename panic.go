package frp

import (
	"log"
	"runtime/debug"
)

// runProtected runs fn on the calling goroutine, recovering any panic:
// stack-trace it, log it at ERROR, wrap it into an error naming the
// lane, and hand that to onDone instead of letting it crash the
// process. onDone(nil) on a clean return. This is the one mechanism
// behind §7's "user-function failure" entry: a panicking Lift/LiftN/Fold
// function terminates its goroutine, which the caller converts into
// Exit on the owning lane.
func runProtected(logger *log.Logger, lane string, onDone func(error), fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if logger != nil {
				logger.Printf("E! lane %s panicked: %v\n%s", lane, r, debug.Stack())
			}
			onDone(wrapPanic(lane, r))
			return
		}
	}()
	fn()
	onDone(nil)
}
