package scheduler

import (
	"errors"
	"fmt"
)

// Task is a unit of work queued on a Loop.
type Task func() error

// Queue accepts microtasks. Loop is the in-process implementation; hosts
// with their own event loop can supply another.
type Queue interface {
	QueueMicrotask(task Task)
}

var ErrLoopReentrant = errors.New("scheduler: loop drained from inside one of its tasks")

// Loop is a single-threaded FIFO microtask queue. Nothing runs until the
// owner calls Drain, which stands in for the point where the current
// synchronous turn ends.
type Loop struct {
	tasks    []Task
	draining bool
}

func NewLoop() *Loop {
	return &Loop{}
}

func (l *Loop) QueueMicrotask(task Task) {
	l.tasks = append(l.tasks, task)
}

// Len returns the number of tasks waiting to run.
func (l *Loop) Len() int {
	return len(l.tasks)
}

// Drain runs queued tasks, including ones queued while draining, until the
// queue is empty. It stops at the first failing task and returns its error;
// tasks queued behind it stay queued for the next Drain.
func (l *Loop) Drain() error {
	if l.draining {
		return ErrLoopReentrant
	}
	l.draining = true
	defer func() {
		l.draining = false
	}()

	for len(l.tasks) > 0 {
		task := l.tasks[0]
		l.tasks[0] = nil
		l.tasks = l.tasks[1:]
		if err := task(); err != nil {
			return fmt.Errorf("microtask failed: %w", err)
		}
	}
	l.tasks = nil
	return nil
}
