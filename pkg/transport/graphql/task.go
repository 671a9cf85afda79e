package graphql

import (
	"context"
	"sync/atomic"
)

const (
	taskPending int32 = iota
	taskDelivered
	taskCancelled
)

// CompletionFunc receives the outcome of one send: exactly one of resp and
// err is non-nil. It runs on the task's goroutine.
type CompletionFunc func(resp *Response, err error)

// Task is the handle for one outstanding send.
type Task struct {
	state  atomic.Int32
	cancel context.CancelFunc
	done   chan struct{}
}

func newTask(cancel context.CancelFunc) *Task {
	return &Task{
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Cancel stops delivery of the result. If the completion has not started
// yet it never will. Calling Cancel again, or after completion, does nothing.
// The request may still reach the server.
func (t *Task) Cancel() {
	if t.state.CompareAndSwap(taskPending, taskCancelled) {
		t.cancel()
	}
}

// Cancelled reports whether Cancel won against delivery.
func (t *Task) Cancelled() bool {
	return t.state.Load() == taskCancelled
}

// Done is closed once the task is finished: the completion returned, or the
// cancelled exchange unwound.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until Done is closed.
func (t *Task) Wait() {
	<-t.done
}

// claim moves the task to delivered. It returns false if it was cancelled.
func (t *Task) claim() bool {
	return t.state.CompareAndSwap(taskPending, taskDelivered)
}
