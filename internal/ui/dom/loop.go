// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dom

import (
	"context"
	"errors"
)

// ErrLoopStopped is returned when posting to a loop that is no longer running.
var ErrLoopStopped = errors.New("dom: event loop stopped")

// Loop serializes work on a document: tasks run one at a time, each to
// completion, on the goroutine that called [Loop.Run].
type Loop struct {
	tasks   chan func()
	stopped chan struct{}
}

// NewLoop creates a loop whose queue holds up to capacity pending tasks.
func NewLoop(capacity int) *Loop {
	return &Loop{
		tasks:   make(chan func(), capacity),
		stopped: make(chan struct{}),
	}
}

// Run executes queued tasks until ctx is done. It must be called once.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.stopped)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case task := <-l.tasks:
			task()
		}
	}
}

// Post queues task without waiting for it to run.
func (l *Loop) Post(ctx context.Context, task func()) error {
	select {
	case <-l.stopped:
		return ErrLoopStopped
	default:
	}

	select {
	case l.tasks <- task:
		return nil
	case <-l.stopped:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do queues task and waits until it has run.
func (l *Loop) Do(ctx context.Context, task func()) error {
	done := make(chan struct{})
	if err := l.Post(ctx, func() {
		defer close(done)
		task()
	}); err != nil {
		return err
	}

	select {
	case <-done:
		return nil
	case <-l.stopped:
		select {
		case <-done:
			return nil
		default:
			return ErrLoopStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}
