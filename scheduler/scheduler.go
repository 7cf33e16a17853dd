package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
)

// Job is anything the scheduler can run. Jobs are deduplicated by identity,
// so implementations should be pointers. *reactivity.Effect is a Job.
type Job interface {
	Run() error
}

// FlushRecorder receives one observation per completed flush.
type FlushRecorder interface {
	ObserveFlush(jobs int, elapsed time.Duration)
}

type Option func(*Scheduler)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

func WithRecorder(r FlushRecorder) Option {
	return func(s *Scheduler) {
		s.recorder = r
	}
}

// Scheduler batches jobs into one flush per microtask tick. Queueing a job
// that is already pending is a no-op, so any number of invalidations
// between two ticks cost a single run.
type Scheduler struct {
	queue    Queue
	logger   *slog.Logger
	recorder FlushRecorder

	jobs         []Job
	pending      mapset.Set[Job]
	flushPending bool
	flushing     bool
}

func New(queue Queue, opts ...Option) *Scheduler {
	s := &Scheduler{
		queue:   queue,
		logger:  slog.Default(),
		pending: mapset.NewThreadUnsafeSet[Job](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// QueueJob appends job unless it is already pending and makes sure a flush
// is scheduled.
func (s *Scheduler) QueueJob(job Job) {
	if !s.pending.Contains(job) {
		s.pending.Add(job)
		s.jobs = append(s.jobs, job)
	}
	s.queueFlush()
}

// Invalidate drops job from the queue if it has not run yet.
func (s *Scheduler) Invalidate(job Job) {
	if !s.pending.Contains(job) {
		return
	}
	s.pending.Remove(job)
	for i, queued := range s.jobs {
		if queued == job {
			s.jobs = append(s.jobs[:i], s.jobs[i+1:]...)
			return
		}
	}
}

// Pending returns the number of queued jobs.
func (s *Scheduler) Pending() int {
	return len(s.jobs)
}

// NextTick runs fn on the microtask queue, after the flush if one is
// already scheduled.
func (s *Scheduler) NextTick(fn func()) {
	s.queue.QueueMicrotask(func() error {
		fn()
		return nil
	})
}

func (s *Scheduler) queueFlush() {
	if s.flushing || s.flushPending {
		return
	}
	s.flushPending = true
	s.queue.QueueMicrotask(s.flushJobs)
}

// flushJobs runs jobs in FIFO order until the queue is empty. A failing job
// ends the flush; the jobs behind it get a new flush.
func (s *Scheduler) flushJobs() error {
	s.flushPending = false
	s.flushing = true
	start := time.Now()
	ran := 0
	defer func() {
		s.flushing = false
		elapsed := time.Since(start)
		s.logger.Debug("flushed jobs", "jobs", ran, "elapsed", elapsed)
		if s.recorder != nil {
			s.recorder.ObserveFlush(ran, elapsed)
		}
	}()

	for len(s.jobs) > 0 {
		job := s.jobs[0]
		s.jobs[0] = nil
		s.jobs = s.jobs[1:]
		s.pending.Remove(job)

		ran++
		if err := job.Run(); err != nil {
			if len(s.jobs) > 0 {
				s.flushPending = true
				s.queue.QueueMicrotask(s.flushJobs)
			}
			return fmt.Errorf("job failed: %w", err)
		}
	}
	s.jobs = nil
	return nil
}
