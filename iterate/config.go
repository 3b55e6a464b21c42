package iterate

import (
	"golang.org/x/time/rate"
)

// Option configures a Plan at construction time.
type Option func(*Plan)

// WithIgnoreKinds declares error kinds whose outcomes are silently dropped
// from the output sequence instead of propagated. Matching uses errors.Is,
// so wrapped errors match their kind.
func WithIgnoreKinds(kinds ...error) Option {
	return func(p *Plan) {
		p.ignore.kinds = append(p.ignore.kinds, kinds...)
	}
}

// WithIgnoreValue designates a sentinel value: outcomes equal to it are
// silently dropped instead of emitted. May be given more than once.
func WithIgnoreValue(sentinel any) Option {
	return func(p *Plan) {
		p.ignore.sentinels = append(p.ignore.sentinels, sentinel)
	}
}

// WithRateLimit caps dispatch at perSecond invocations with the given
// burst. Useful when the target operation calls an external service.
// Non-positive arguments disable the limit.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(p *Plan) {
		if perSecond > 0 && burst > 0 {
			p.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

// Plan is a validated, immutable run configuration: the worker count, the
// K argument bundles expanded from the named input sequences, and the
// ignore set. A Plan may be wrapped any number of times; each resulting
// Handle is an independent single-use run.
type Plan struct {
	workers int
	bundles []Bundle
	ignore  ignoreSet
	limiter *rate.Limiter
}

// Configure validates the run parameters and expands the named input
// sequences into position-stamped argument bundles. It fails eagerly with
// a *ConfigError — before any worker starts — if workers < 1 or the named
// sequences have mismatched lengths. Empty inputs are valid and produce an
// immediately-exhausted run.
func Configure(workers int, inputs Inputs, opts ...Option) (*Plan, error) {
	if workers < 1 {
		return nil, configErrorf("worker count must be positive, got %d", workers)
	}

	bundles, err := expand(inputs)
	if err != nil {
		return nil, err
	}

	p := &Plan{
		workers: workers,
		bundles: bundles,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Len returns K, the number of invocations the plan describes.
func (p *Plan) Len() int {
	return len(p.bundles)
}

// Workers returns the configured worker count.
func (p *Plan) Workers() int {
	return p.workers
}
