// Package frp implements the execution core of a concurrent functional
// reactive programming runtime: a static, acyclic data-flow graph of pure
// transformations and stateful folds over input signals, executed
// concurrently while keeping every downstream computation's view of its
// ancestor inputs synchronized tick-by-tick.
//
// A topology is built once, on the caller's goroutine, through a Builder,
// and then handed to Spawn which starts one goroutine per Input and per
// Runner and runs them until Exit. See Spawn and Builder for the entry points.
package frp
