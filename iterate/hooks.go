package iterate

import "context"

// Hooks holds typed observation callbacks for a run. All fields are
// optional; nil means no observation for that event. Hooks are invoked
// synchronously from the consumer's pull, so they should be fast.
type Hooks[R any] struct {
	OnStart func()                      // Worker pool started
	OnValue func(position int, v R)     // Value released to the consumer
	OnError func(position int, e error) // Error propagated to the consumer
	OnDrop  func(position int)          // Outcome dropped by the ignore filter
	OnDone  func()                      // Sequence exhausted or failed
}

// hooksKey is unexported to prevent collisions with user context keys.
type hooksKey[R any] struct{}

// hookSet holds hook sets registered on a context, invoked in FIFO order.
type hookSet[R any] struct {
	sets []*Hooks[R]
}

// WithHooks attaches typed hooks to the context. Multiple calls compose:
// hooks from earlier calls fire before hooks from later calls. The context
// must be the one passed to Invoke.
//
// Example:
//
//	ctx := iterate.WithHooks(ctx, iterate.Hooks[int]{
//	    OnDrop: func(pos int) { log.Printf("dropped position %d", pos) },
//	})
func WithHooks[R any](ctx context.Context, hooks Hooks[R]) context.Context {
	if ctx == nil {
		panic("nil context")
	}

	existing := resolveHooks[R](ctx)
	merged := hookSet[R]{sets: make([]*Hooks[R], len(existing.sets)+1)}
	copy(merged.sets, existing.sets)
	merged.sets[len(existing.sets)] = &hooks

	return context.WithValue(ctx, hooksKey[R]{}, merged)
}

// resolveHooks retrieves the hooks registered for result type R. An empty
// set is returned when none are registered, so invocation is always safe.
func resolveHooks[R any](ctx context.Context) hookSet[R] {
	if ctx == nil {
		return hookSet[R]{}
	}
	if h, ok := ctx.Value(hooksKey[R]{}).(hookSet[R]); ok {
		return h
	}
	return hookSet[R]{}
}

func (h hookSet[R]) invokeStart() {
	for _, hooks := range h.sets {
		if hooks.OnStart != nil {
			hooks.OnStart()
		}
	}
}

func (h hookSet[R]) invokeValue(position int, v R) {
	for _, hooks := range h.sets {
		if hooks.OnValue != nil {
			hooks.OnValue(position, v)
		}
	}
}

func (h hookSet[R]) invokeError(position int, err error) {
	for _, hooks := range h.sets {
		if hooks.OnError != nil {
			hooks.OnError(position, err)
		}
	}
}

func (h hookSet[R]) invokeDrop(position int) {
	for _, hooks := range h.sets {
		if hooks.OnDrop != nil {
			hooks.OnDrop(position)
		}
	}
}

func (h hookSet[R]) invokeDone() {
	for _, hooks := range h.sets {
		if hooks.OnDone != nil {
			hooks.OnDone()
		}
	}
}
