package frp

import (
	"sync"

	"github.com/pkg/errors"
)

// laneQueue is a bounded, closeable/abortable external-input queue: a
// buffered channel of raw values plus a separate aborting channel.
// ListenQueue uses one of these when it is asked to create and own
// the inbound channel itself, giving the bounded-external-queue
// discipline §5 requires a concrete, backpressuring implementation
// instead of trusting whatever channel a caller happens to hand in.
type laneState int

const (
	laneOpen laneState = iota
	laneClosed
	laneAborted
)

type laneQueue[A any] struct {
	aborting chan struct{}
	messages chan A

	mu    sync.Mutex
	state laneState
}

func newLaneQueue[A any](capacity int) *laneQueue[A] {
	if capacity <= 0 {
		capacity = 1
	}
	return &laneQueue[A]{
		aborting: make(chan struct{}),
		messages: make(chan A, capacity),
	}
}

// Send blocks until v is accepted or the queue is closed/aborted.
func (q *laneQueue[A]) Send(v A) error {
	q.mu.Lock()
	open := q.state == laneOpen
	q.mu.Unlock()
	if !open {
		return ErrLaneClosed
	}
	select {
	case q.messages <- v:
		return nil
	case <-q.aborting:
		return ErrLaneClosed
	}
}

// Recv blocks until a value is available or the queue is closed/aborted,
// in which case ok is false.
func (q *laneQueue[A]) Recv() (v A, ok bool) {
	select {
	case <-q.aborting:
		return v, false
	default:
	}
	select {
	case v, ok = <-q.messages:
		return v, ok
	case <-q.aborting:
		return v, false
	}
}

// Close stops accepting new values; buffered values are still delivered
// by Recv until drained. Only the queue's single producer may call it.
func (q *laneQueue[A]) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.state != laneOpen {
		return errors.New("frp: laneQueue not open, cannot close")
	}
	close(q.messages)
	q.state = laneClosed
	return nil
}

// Abort immediately unblocks any pending Send/Recv and drops buffered
// values; idempotent, safe to call from outside the producer.
func (q *laneQueue[A]) Abort() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.state != laneOpen {
		return
	}
	close(q.aborting)
	q.state = laneAborted
}
