package reactivity

type ErrFn func() error

type effectState uint8

const (
	stateInert effectState = iota
	stateActive
	stateStopped
)

// Effect is a re-runnable computation. Every wrapper read made while it runs
// becomes a subscription; a later write to any of them runs it again, or
// hands it to its scheduler when one is set.
type Effect struct {
	rs        *ReactiveSystem
	id        uint64
	fn        ErrFn
	deps      []dep
	state     effectState
	lazy      bool
	scheduler func(e *Effect)
	onStop    func()
}

type EffectOption func(*Effect)

// WithScheduler routes invalidations to fn instead of re-running the effect.
func WithScheduler(fn func(e *Effect)) EffectOption {
	return func(e *Effect) {
		e.scheduler = fn
	}
}

// Lazy skips the initial run.
func Lazy() EffectOption {
	return func(e *Effect) {
		e.lazy = true
	}
}

// OnStop registers fn to be called once when the effect is stopped.
func OnStop(fn func()) EffectOption {
	return func(e *Effect) {
		e.onStop = fn
	}
}

// NewEffect creates an effect and, unless Lazy is given, runs it once. The
// error of that first run is returned alongside the effect.
func NewEffect(rs *ReactiveSystem, fn ErrFn, opts ...EffectOption) (*Effect, error) {
	rs.nextEffectID++
	e := &Effect{
		rs: rs,
		id: rs.nextEffectID,
		fn: fn,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.lazy {
		return e, nil
	}
	return e, e.Run()
}

// Run executes the callback. On an effect that is not stopped it first drops
// every subscription from the previous run so that only the reads of this
// run are kept. Running an effect that is already on the stack is a no-op.
func (e *Effect) Run() error {
	if e.state == stateStopped {
		return e.fn()
	}
	rs := e.rs
	if rs.onStack(e) {
		return nil
	}

	e.state = stateActive
	e.cleanup()
	rs.EnableTracking()
	rs.pushEffect(e)
	defer func() {
		rs.popEffect()
		rs.ResetTracking()
	}()

	return e.fn()
}

// Stop removes the effect from every dependency set. It is permanent; Run
// still calls the callback afterwards but nothing is tracked. Stop does not
// remove the effect from a scheduler queue it was already handed to.
func (e *Effect) Stop() {
	if e.state == stateStopped {
		return
	}
	e.cleanup()
	if e.onStop != nil {
		e.onStop()
	}
	e.state = stateStopped
}

// Active reports whether the effect has not been stopped.
func (e *Effect) Active() bool {
	return e.state != stateStopped
}

// Deps returns how many dependency sets the effect belongs to.
func (e *Effect) Deps() int {
	return len(e.deps)
}

func (e *Effect) cleanup() {
	for i, d := range e.deps {
		d.Remove(e)
		e.deps[i] = nil
	}
	e.deps = e.deps[:0]
}
