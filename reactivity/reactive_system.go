package reactivity

import (
	"log/slog"
	"sync"
)

type OnErrorFunc func(from *Effect, err error)

type Option func(*ReactiveSystem)

// WithLogger sets the logger used for read-only write warnings and
// unhandled effect errors.
func WithLogger(logger *slog.Logger) Option {
	return func(rs *ReactiveSystem) {
		rs.logger = logger
	}
}

// ReactiveSystem owns the dependency graph, the wrapper registry and the
// active effect stack. It is not safe for concurrent use; every wrapper,
// effect and ref created from it must be driven from one goroutine.
type ReactiveSystem struct {
	logger  *slog.Logger
	onError OnErrorFunc

	activeEffect *Effect
	effectStack  []*Effect
	shouldTrack  bool
	trackStack   []bool
	nextEffectID uint64

	// targets is keyed by weak pointers to raw aggregates and pruned from
	// runtime cleanups, which run on their own goroutine.
	targetsMu sync.Mutex
	targets   map[any]*targetState
}

func CreateReactiveSystem(onError OnErrorFunc, opts ...Option) *ReactiveSystem {
	rs := &ReactiveSystem{
		onError: onError,
		logger:  slog.Default(),
		targets: map[any]*targetState{},
	}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

// PauseTracking disables dependency recording until the matching
// ResetTracking call.
func (rs *ReactiveSystem) PauseTracking() {
	rs.trackStack = append(rs.trackStack, rs.shouldTrack)
	rs.shouldTrack = false
}

// EnableTracking enables dependency recording until the matching
// ResetTracking call.
func (rs *ReactiveSystem) EnableTracking() {
	rs.trackStack = append(rs.trackStack, rs.shouldTrack)
	rs.shouldTrack = true
}

// ResetTracking restores the tracking state saved by the last
// PauseTracking or EnableTracking.
func (rs *ReactiveSystem) ResetTracking() {
	lastIdx := len(rs.trackStack) - 1
	if lastIdx < 0 {
		rs.shouldTrack = true
		return
	}
	rs.shouldTrack = rs.trackStack[lastIdx]
	rs.trackStack = rs.trackStack[:lastIdx]
}

// Untracked runs fn with dependency recording paused.
func (rs *ReactiveSystem) Untracked(fn func()) {
	rs.PauseTracking()
	defer rs.ResetTracking()
	fn()
}

// ActiveEffect returns the innermost running effect, if any.
func (rs *ReactiveSystem) ActiveEffect() *Effect {
	return rs.activeEffect
}

func (rs *ReactiveSystem) isTracking() bool {
	return rs.shouldTrack && rs.activeEffect != nil
}

func (rs *ReactiveSystem) pushEffect(e *Effect) {
	rs.effectStack = append(rs.effectStack, e)
	rs.activeEffect = e
}

func (rs *ReactiveSystem) popEffect() {
	lastIdx := len(rs.effectStack) - 1
	rs.effectStack[lastIdx] = nil
	rs.effectStack = rs.effectStack[:lastIdx]
	if lastIdx > 0 {
		rs.activeEffect = rs.effectStack[lastIdx-1]
	} else {
		rs.activeEffect = nil
	}
}

func (rs *ReactiveSystem) onStack(e *Effect) bool {
	for _, running := range rs.effectStack {
		if running == e {
			return true
		}
	}
	return false
}

func (rs *ReactiveSystem) reportError(from *Effect, err error) {
	if rs.onError != nil {
		rs.onError(from, err)
		return
	}
	rs.logger.Error("effect failed", "effect", from.id, "error", err)
}

func (rs *ReactiveSystem) warnReadonly(op string, key any) {
	rs.logger.Warn("write rejected: target is readonly", "op", op, "key", key)
}
