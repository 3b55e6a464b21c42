package iterate

import (
	"errors"
	"fmt"
)

// ErrSeqFailed is returned by pulls on a sequence that has already
// propagated an error. The original error is surfaced exactly once, at the
// pull corresponding to its position; later pulls get this instead.
var ErrSeqFailed = errors.New("iterate: sequence already failed")

// ConfigError reports invalid run configuration: a non-positive worker
// count, mismatched input sequence lengths, or reuse of a single-use
// handle. It is always surfaced synchronously, before any worker runs.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "iterate: invalid configuration: " + e.Reason
}

func configErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// WorkerError wraps an error returned (or a panic raised) by the target
// operation, tagged with the position of the invocation that produced it.
// The original error is preserved for errors.Is / errors.As matching.
type WorkerError struct {
	Position int
	Err      error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("iterate: position %d: %v", e.Position, e.Err)
}

func (e *WorkerError) Unwrap() error {
	return e.Err
}
