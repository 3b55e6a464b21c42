package iterate

import "iter"

type seqState int

const (
	seqIdle seqState = iota
	seqRunning
	seqExhausted
	seqFailed
)

// Seq is the lazy, single-pass, in-order view of a run's output. It
// buffers completions that arrive ahead of the next expected position and
// releases them strictly in original input order, applying the run's
// ignore filter at release time. A Seq is for one consumer goroutine; it
// is not safe for concurrent pulls, and a fresh run is required to iterate
// again.
type Seq[R any] struct {
	completions <-chan outcome[R]
	buffer      map[int]outcome[R]
	next        int
	total       int
	ignore      ignoreSet
	state       seqState
	hooks       hookSet[R]
}

// Next returns the next surviving value in original position order,
// blocking until that position's outcome has arrived. Dropped outcomes are
// skipped without returning control. When a worker error is not in the
// ignore set, Next returns it (wrapped in a *WorkerError that preserves
// the original kind and message) and the sequence becomes terminal: every
// later call returns ErrSeqFailed. After normal exhaustion Next returns
// ok == false with a nil error.
func (s *Seq[R]) Next() (R, bool, error) {
	var zero R

	switch s.state {
	case seqFailed:
		return zero, false, ErrSeqFailed
	case seqExhausted:
		return zero, false, nil
	case seqIdle:
		s.state = seqRunning
	}

	for s.next < s.total {
		o := s.take()
		s.next++

		switch decide(s.ignore, o) {
		case dropOutcome:
			s.hooks.invokeDrop(o.pos)
		case emitOutcome:
			s.hooks.invokeValue(o.pos, o.value)
			return o.value, true, nil
		case propagateOutcome:
			s.state = seqFailed
			err := &WorkerError{Position: o.pos, Err: o.err}
			s.hooks.invokeError(o.pos, err)
			s.hooks.invokeDone()
			return zero, false, err
		}
	}

	s.state = seqExhausted
	s.hooks.invokeDone()
	return zero, false, nil
}

// take blocks until the outcome for the next expected position is
// available, parking out-of-order completions in the reorder buffer. The
// buffer can hold at most workers-1 entries: dispatch order bounds how far
// ahead completions may race.
func (s *Seq[R]) take() outcome[R] {
	for {
		if o, ok := s.buffer[s.next]; ok {
			delete(s.buffer, s.next)
			return o
		}
		o := <-s.completions
		s.buffer[o.pos] = o
	}
}

// Collect pulls the sequence to completion, returning every surviving
// value in order. On propagation it returns the values released before the
// failing position along with the error.
func (s *Seq[R]) Collect() ([]R, error) {
	var values []R
	for {
		v, ok, err := s.Next()
		if err != nil {
			return values, err
		}
		if !ok {
			return values, nil
		}
		values = append(values, v)
	}
}

// All returns a Go 1.23 iterator over the sequence. Surviving values are
// yielded with a nil error; on propagation the error is yielded once with
// the zero value and iteration stops.
func (s *Seq[R]) All() iter.Seq2[R, error] {
	return func(yield func(R, error) bool) {
		for {
			v, ok, err := s.Next()
			if err != nil {
				var zero R
				yield(zero, err)
				return
			}
			if !ok {
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}
