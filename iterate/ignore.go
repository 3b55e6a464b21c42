package iterate

import (
	"errors"
	"reflect"
)

// decision is the outcome filter's verdict for one completed outcome.
type decision int

const (
	emitOutcome decision = iota
	dropOutcome
	propagateOutcome
)

// ignoreSet holds the run's ignore discriminators, fixed at configuration.
// Two independent match modes are supported: error-kind equality (via
// errors.Is) for error outcomes, and value equality against a designated
// sentinel for value outcomes. They are evaluated by one pure filter
// function and never combined into a single mechanism.
type ignoreSet struct {
	kinds     []error
	sentinels []any
}

func (s ignoreSet) matchesKind(err error) bool {
	for _, kind := range s.kinds {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

func (s ignoreSet) matchesSentinel(v any) bool {
	for _, sentinel := range s.sentinels {
		if reflect.DeepEqual(v, sentinel) {
			return true
		}
	}
	return false
}

// decide classifies one outcome against the ignore set. It is a pure
// function of the outcome and the immutable set; position and timing play
// no part.
func decide[R any](s ignoreSet, o outcome[R]) decision {
	if o.isError() {
		if s.matchesKind(o.err) {
			return dropOutcome
		}
		return propagateOutcome
	}
	if s.matchesSentinel(o.value) {
		return dropOutcome
	}
	return emitOutcome
}
