package iterate

import (
	"fmt"
	"runtime"
	"strings"
)

// outcome is the tagged result of one invocation: either a value or an
// error, always associated with exactly one position. Exactly one outcome
// is produced per position, by exactly one worker.
type outcome[R any] struct {
	pos   int
	value R
	err   error
}

func (o outcome[R]) isError() bool {
	return o.err != nil
}

// ErrPanic wraps a recovered panic value as an error.
// It is produced when the target operation panics during a run and includes
// a cleaned-up stack trace that excludes internal iterate frames.
type ErrPanic struct {
	Value any
	Stack string // Cleaned stack trace
}

func (e ErrPanic) Error() string {
	if e.Stack != "" {
		return fmt.Sprintf("panic: %v\n%s", e.Value, e.Stack)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// NewPanicError creates an ErrPanic from a recovered value with a cleaned
// stack trace, keeping only user code so the panic's origin is visible.
func NewPanicError(recovered any) ErrPanic {
	return ErrPanic{
		Value: recovered,
		Stack: cleanStack(captureStack(4)), // skip: runtime.Callers, captureStack, NewPanicError, defer func
	}
}

// captureStack returns the current stack trace as a string.
func captureStack(skip int) string {
	const maxFrames = 32
	var pcs [maxFrames]uintptr
	n := runtime.Callers(skip, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder

	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}

	return sb.String()
}

// cleanStack removes internal iterate frames from a stack trace, keeping
// user code and standard library frames.
func cleanStack(stack string) string {
	lines := strings.Split(stack, "\n")
	var result []string
	var skipNext bool

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		// Function lines are unindented; the file:line that follows is not.
		if !strings.HasPrefix(line, "\t") {
			if strings.Contains(line, "github.com/cjneely10/go-data-structures/iterate") {
				skipNext = true
				continue
			}
			skipNext = false
		} else if skipNext {
			continue
		}

		result = append(result, line)
	}

	return strings.Join(result, "\n")
}
