package iterate

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// startPool spawns the run's worker pool and returns its completion
// channel. The queue is fully seeded with all K bundles in position order
// before any worker starts, so dequeueing never blocks: a worker's loop
// simply ends when the queue is empty. The completion channel is buffered
// to K so workers can always deliver and exit even if the consumer stops
// pulling; the trade-off is that all K invocations run to completion with
// no way to interrupt them mid-run.
func startPool[R any](ctx context.Context, p *Plan, op Operation[R]) <-chan outcome[R] {
	queue := make(chan Bundle, len(p.bundles))
	for _, b := range p.bundles {
		queue <- b
	}
	close(queue)

	completions := make(chan outcome[R], len(p.bundles))

	var g errgroup.Group
	for i := 0; i < p.workers; i++ {
		g.Go(func() error {
			for b := range queue {
				if p.limiter != nil {
					if err := p.limiter.Wait(ctx); err != nil {
						completions <- outcome[R]{pos: b.Position, err: err}
						continue
					}
				}
				completions <- invoke(op, b)
			}
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(completions)
	}()

	return completions
}

// invoke runs the target operation for one bundle, capturing a returned
// value, a returned error, or a raised panic as a tagged outcome. A failed
// invocation is never retried.
func invoke[R any](op Operation[R], b Bundle) (out outcome[R]) {
	defer func() {
		if r := recover(); r != nil {
			out = outcome[R]{pos: b.Position, err: NewPanicError(r)}
		}
	}()

	v, err := op(b.Args)
	if err != nil {
		return outcome[R]{pos: b.Position, err: err}
	}
	return outcome[R]{pos: b.Position, value: v}
}
