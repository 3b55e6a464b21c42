package iterate

import (
	"context"
	"sync/atomic"
)

// Operation is the target of a run: one invocation per position, called
// with that position's named arguments. Operations execute concurrently on
// up to the configured number of positions at once; synchronization of any
// shared state they touch is the caller's responsibility.
type Operation[R any] func(Args) (R, error)

// Wrap binds a target operation to a validated plan and returns a
// single-use handle for it.
func Wrap[R any](plan *Plan, op Operation[R]) *Handle[R] {
	return &Handle[R]{plan: plan, op: op}
}

// Handle is a bound, single-use run. Invoke starts the worker pool and
// returns the lazy output sequence; a second Invoke fails.
type Handle[R any] struct {
	plan *Plan
	op   Operation[R]
	used atomic.Bool
}

// Invoke starts the run's worker pool and returns the lazy, in-order
// output sequence. The context is consulted by the rate limiter and passed
// to hooks; it does not cancel already-dispatched invocations. Invoking
// the same handle twice returns a *ConfigError.
func (h *Handle[R]) Invoke(ctx context.Context) (*Seq[R], error) {
	if h.op == nil {
		return nil, configErrorf("nil operation")
	}
	if !h.used.CompareAndSwap(false, true) {
		return nil, configErrorf("handle already invoked")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	hooks := resolveHooks[R](ctx)
	hooks.invokeStart()

	return &Seq[R]{
		completions: startPool(ctx, h.plan, h.op),
		buffer:      make(map[int]outcome[R]),
		total:       len(h.plan.bundles),
		ignore:      h.plan.ignore,
		hooks:       hooks,
	}, nil
}
