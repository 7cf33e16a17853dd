package scheduler_test

import (
	"errors"
	"testing"
	"time"

	"github.com/delaneyj/treeparty/reactivity"
	"github.com/delaneyj/treeparty/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	name string
	log  *[]string
	err  error
	then func()
}

func (j *countingJob) Run() error {
	*j.log = append(*j.log, j.name)
	if j.then != nil {
		j.then()
	}
	return j.err
}

type flushes struct {
	jobs []int
}

func (f *flushes) ObserveFlush(jobs int, elapsed time.Duration) {
	f.jobs = append(f.jobs, jobs)
}

// should coalesce two writes into one run after the caller returns
func TestSchedulerBatchesEffectRuns(t *testing.T) {
	loop := scheduler.NewLoop()
	s := scheduler.New(loop)
	rs := reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
		assert.FailNow(t, err.Error())
	})
	obj := reactivity.Reactive(rs, reactivity.ObjectOf(map[string]any{"a": 0, "b": 0}))

	runs := 0
	var sum int
	_, err := reactivity.NewEffect(rs, func() error {
		runs++
		sum = obj.Get("a").(int) + obj.Get("b").(int)
		return nil
	}, reactivity.WithScheduler(func(e *reactivity.Effect) {
		s.QueueJob(e)
	}))
	require.NoError(t, err)

	obj.Set("a", 1)
	obj.Set("b", 2)
	assert.Equal(t, 1, runs)
	assert.Equal(t, 1, s.Pending())
	assert.Equal(t, 1, loop.Len())

	require.NoError(t, loop.Drain())
	assert.Equal(t, 2, runs)
	assert.Equal(t, 3, sum)
	assert.Equal(t, 0, s.Pending())
}

// should run jobs in FIFO order and dedupe by identity
func TestSchedulerFIFO(t *testing.T) {
	loop := scheduler.NewLoop()
	s := scheduler.New(loop)

	var log []string
	a := &countingJob{name: "a", log: &log}
	b := &countingJob{name: "b", log: &log}
	s.QueueJob(a)
	s.QueueJob(b)
	s.QueueJob(a)

	require.NoError(t, loop.Drain())
	assert.Equal(t, []string{"a", "b"}, log)
}

// should run jobs queued during a flush in the same flush
func TestSchedulerQueueDuringFlush(t *testing.T) {
	loop := scheduler.NewLoop()
	rec := &flushes{}
	s := scheduler.New(loop, scheduler.WithRecorder(rec))

	var log []string
	c := &countingJob{name: "c", log: &log}
	a := &countingJob{name: "a", log: &log, then: func() { s.QueueJob(c) }}
	s.QueueJob(a)

	require.NoError(t, loop.Drain())
	assert.Equal(t, []string{"a", "c"}, log)
	assert.Equal(t, []int{2}, rec.jobs)
}

// should stop the flush at a failing job and keep the rest queued
func TestSchedulerFlushError(t *testing.T) {
	loop := scheduler.NewLoop()
	s := scheduler.New(loop)

	boom := errors.New("boom")
	var log []string
	s.QueueJob(&countingJob{name: "a", log: &log, err: boom})
	s.QueueJob(&countingJob{name: "b", log: &log})

	err := loop.Drain()
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a"}, log)
	assert.Equal(t, 1, s.Pending())

	require.NoError(t, loop.Drain())
	assert.Equal(t, []string{"a", "b"}, log)
}

// should drop invalidated jobs
func TestSchedulerInvalidate(t *testing.T) {
	loop := scheduler.NewLoop()
	s := scheduler.New(loop)

	var log []string
	a := &countingJob{name: "a", log: &log}
	b := &countingJob{name: "b", log: &log}
	s.QueueJob(a)
	s.QueueJob(b)
	s.Invalidate(a)
	s.Invalidate(a)

	require.NoError(t, loop.Drain())
	assert.Equal(t, []string{"b"}, log)
}

// should run next tick callbacks after the pending flush
func TestNextTick(t *testing.T) {
	loop := scheduler.NewLoop()
	s := scheduler.New(loop)

	var log []string
	s.QueueJob(&countingJob{name: "job", log: &log})
	s.NextTick(func() { log = append(log, "tick") })

	require.NoError(t, loop.Drain())
	assert.Equal(t, []string{"job", "tick"}, log)
}

// should refuse to drain from inside a task
func TestLoopReentrant(t *testing.T) {
	loop := scheduler.NewLoop()
	var inner error
	loop.QueueMicrotask(func() error {
		inner = loop.Drain()
		return nil
	})
	require.NoError(t, loop.Drain())
	assert.ErrorIs(t, inner, scheduler.ErrLoopReentrant)
}
