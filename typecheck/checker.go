// Package typecheck validates a function's arguments against its declared
// signature at call time. It is aimed at call sites that receive arguments
// as untyped values (configuration tables, parsed records, plugin
// dispatch) and want a clear error instead of a reflect.Call panic.
//
// Validated call shapes are cached, bounded by a configurable maximum, so
// repeated calls with the same argument types skip re-validation.
package typecheck

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// DefaultMaxCacheSize bounds the validated-call-shape cache until
// SetMaxCacheSize changes it.
const DefaultMaxCacheSize = 256

// TypeError reports an argument or arity mismatch discovered before the
// wrapped function was called.
type TypeError struct {
	Arg  int    // argument position, -1 for arity errors
	Want string // expected type, empty for arity errors
	Got  string
}

func (e *TypeError) Error() string {
	if e.Arg < 0 {
		return fmt.Sprintf("typecheck: wrong argument count: %s", e.Got)
	}
	return fmt.Sprintf("typecheck: argument %d must be of type %s, got %s", e.Arg, e.Want, e.Got)
}

// Func is a wrapped function accepting untyped arguments. Results are
// returned in declaration order.
type Func func(args ...any) ([]any, error)

// Checker wraps functions for call-time signature validation, sharing one
// bounded cache of already-validated call shapes. Safe for concurrent use.
type Checker struct {
	mu      sync.Mutex
	cache   map[string]struct{}
	maxSize int
}

// New creates a Checker with the default cache bound.
func New() *Checker {
	return &Checker{
		cache:   make(map[string]struct{}),
		maxSize: DefaultMaxCacheSize,
	}
}

// Wrap returns a Func that validates arguments against fn's signature
// before every call. fn must be a non-variadic function.
func (c *Checker) Wrap(fn any) (Func, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return nil, fmt.Errorf("typecheck: expected a function, got %T", fn)
	}
	t := v.Type()
	if t.IsVariadic() {
		return nil, fmt.Errorf("typecheck: variadic functions are not supported")
	}

	return func(args ...any) ([]any, error) {
		if len(args) != t.NumIn() {
			return nil, &TypeError{Arg: -1, Got: fmt.Sprintf("have %d, want %d", len(args), t.NumIn())}
		}

		key := callKey(v, args)
		if !c.seen(key) {
			for i, arg := range args {
				if err := validateArg(i, t.In(i), arg); err != nil {
					return nil, err
				}
			}
		}

		in := make([]reflect.Value, len(args))
		for i, arg := range args {
			if arg == nil {
				in[i] = reflect.Zero(t.In(i))
			} else {
				in[i] = reflect.ValueOf(arg)
			}
		}

		results := v.Call(in)
		c.remember(key)

		out := make([]any, len(results))
		for i, r := range results {
			out[i] = r.Interface()
		}
		return out, nil
	}, nil
}

// validateArg checks that one argument can be passed for the declared
// parameter type. nil is accepted only for nilable parameter kinds.
func validateArg(i int, want reflect.Type, arg any) error {
	if arg == nil {
		switch want.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
			return nil
		}
		return &TypeError{Arg: i, Want: want.String(), Got: "nil"}
	}
	got := reflect.TypeOf(arg)
	if !got.AssignableTo(want) {
		return &TypeError{Arg: i, Want: want.String(), Got: got.String()}
	}
	return nil
}

// callKey identifies one call shape: the function identity plus the
// concrete argument types.
func callKey(v reflect.Value, args []any) string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(uint64(v.Pointer()), 16))
	for _, arg := range args {
		sb.WriteByte('|')
		if arg == nil {
			sb.WriteString("nil")
		} else {
			sb.WriteString(reflect.TypeOf(arg).String())
		}
	}
	return sb.String()
}

func (c *Checker) seen(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.cache[key]
	return ok
}

func (c *Checker) remember(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.cache) >= c.maxSize {
		c.cache = make(map[string]struct{})
	}
	c.cache[key] = struct{}{}
}

// CacheSize returns the number of call shapes currently cached.
func (c *Checker) CacheSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

// ClearCache discards all cached call shapes.
func (c *Checker) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]struct{})
}

// SetMaxCacheSize changes the cache bound. The cache is cleared when it
// already exceeds the new bound. A non-positive size is rejected.
func (c *Checker) SetMaxCacheSize(size int) error {
	if size < 1 {
		return fmt.Errorf("typecheck: cache size must be positive, got %d", size)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.maxSize = size
	if len(c.cache) > size {
		c.cache = make(map[string]struct{})
	}
	return nil
}
