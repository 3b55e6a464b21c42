package iterate_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cjneely10/go-data-structures/iterate"
)

func mustConfigure(t *testing.T, workers int, inputs iterate.Inputs, opts ...iterate.Option) *iterate.Plan {
	t.Helper()
	plan, err := iterate.Configure(workers, inputs, opts...)
	if err != nil {
		t.Fatalf("unexpected configuration error: %v", err)
	}
	return plan
}

func intRange(n int) []any {
	values := make([]any, n)
	for i := range values {
		values[i] = i
	}
	return values
}

func TestOrderedMapping(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		size    int
	}{
		{name: "single worker", workers: 1, size: 10},
		{name: "two workers", workers: 2, size: 25},
		{name: "more workers than items", workers: 16, size: 5},
		{name: "many items", workers: 4, size: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := mustConfigure(t, tt.workers, iterate.Inputs{"n": intRange(tt.size)})

			seq, err := iterate.Wrap(plan, func(a iterate.Args) (int, error) {
				n := a.Get("n").(int)
				// Jitter so completion order differs from input order.
				time.Sleep(time.Duration(n%3) * time.Millisecond)
				return n * n, nil
			}).Invoke(context.Background())
			if err != nil {
				t.Fatalf("invoke failed: %v", err)
			}

			got, err := seq.Collect()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.size {
				t.Fatalf("got %d values, want %d", len(got), tt.size)
			}
			for i, v := range got {
				if v != i*i {
					t.Errorf("got[%d] = %d, want %d", i, v, i*i)
				}
			}
		})
	}
}

func TestMultipleNamedSequences(t *testing.T) {
	plan := mustConfigure(t, 3, iterate.Inputs{
		"start": {10, 20, 30, 40},
		"end":   {100, 110, 120, 130},
	})

	seq, err := iterate.Wrap(plan, func(a iterate.Args) (int, error) {
		return a.Get("end").(int) - a.Get("start").(int), nil
	}).Invoke(context.Background())
	if err != nil {
		t.Fatalf("invoke failed: %v", err)
	}

	got, err := seq.Collect()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{90, 90, 90, 90}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestIdenticalConfigurationsProduceIdenticalOutput(t *testing.T) {
	inputs := iterate.Inputs{"n": intRange(50)}
	op := func(a iterate.Args) (int, error) {
		return a.Get("n").(int) * 3, nil
	}

	runOnce := func() []int {
		plan := mustConfigure(t, 4, inputs)
		seq, err := iterate.Wrap(plan, op).Invoke(context.Background())
		if err != nil {
			t.Fatalf("invoke failed: %v", err)
		}
		got, err := seq.Collect()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return got
	}

	first, second := runOnce(), runOnce()
	if len(first) != len(second) {
		t.Fatalf("runs disagree on length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("runs disagree at %d: %d vs %d", i, first[i], second[i])
		}
	}
}

func TestIgnoreByValue(t *testing.T) {
	const sentinel = -1

	plan := mustConfigure(t, 2, iterate.Inputs{"n": {0, 1, 2, 3, 4}},
		iterate.WithIgnoreValue(sentinel))

	seq, err := iterate.Wrap(plan, func(a iterate.Args) (int, error) {
		n := a.Get("n").(int)
		if n == 2 {
			return sentinel, nil
		}
		return n, nil
	}).Invoke(context.Background())
	if err != nil {
		t.Fatalf("invoke failed: %v", err)
	}

	got, err := seq.Collect()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{0, 1, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestSentinelNotIgnoredWithoutRule(t *testing.T) {
	plan := mustConfigure(t, 2, iterate.Inputs{"n": {0, 1, 2}})

	seq, err := iterate.Wrap(plan, func(a iterate.Args) (int, error) {
		return -1, nil
	}).Invoke(context.Background())
	if err != nil {
		t.Fatalf("invoke failed: %v", err)
	}

	got, err := seq.Collect()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected all values emitted, got %v", got)
	}
}

var errSkippable = errors.New("skippable failure")

func TestIgnoreByErrorKind(t *testing.T) {
	plan := mustConfigure(t, 3, iterate.Inputs{"n": intRange(6)},
		iterate.WithIgnoreKinds(errSkippable))

	seq, err := iterate.Wrap(plan, func(a iterate.Args) (int, error) {
		n := a.Get("n").(int)
		if n == 2 {
			// Wrapped errors still match their kind.
			return 0, fmt.Errorf("processing %d: %w", n, errSkippable)
		}
		return n, nil
	}).Invoke(context.Background())
	if err != nil {
		t.Fatalf("invoke failed: %v", err)
	}

	got, err := seq.Collect()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{0, 1, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestUnignoredErrorPropagates(t *testing.T) {
	errBoom := errors.New("boom at position 3")

	plan := mustConfigure(t, 2, iterate.Inputs{"n": intRange(6)},
		iterate.WithIgnoreKinds(errSkippable))

	seq, err := iterate.Wrap(plan, func(a iterate.Args) (int, error) {
		n := a.Get("n").(int)
		if n == 3 {
			return 0, errBoom
		}
		return n * 10, nil
	}).Invoke(context.Background())
	if err != nil {
		t.Fatalf("invoke failed: %v", err)
	}

	// Positions before the failure are yielded normally.
	for i := 0; i < 3; i++ {
		v, ok, err := seq.Next()
		if err != nil || !ok {
			t.Fatalf("pull %d: ok=%v err=%v", i, ok, err)
		}
		if v != i*10 {
			t.Errorf("pull %d: got %d, want %d", i, v, i*10)
		}
	}

	// The failing position surfaces the original error kind and message.
	_, ok, err := seq.Next()
	if ok {
		t.Fatal("expected propagation, got a value")
	}
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected errBoom, got %v", err)
	}
	var workerErr *iterate.WorkerError
	if !errors.As(err, &workerErr) {
		t.Fatalf("expected *WorkerError, got %T", err)
	}
	if workerErr.Position != 3 {
		t.Errorf("error position = %d, want 3", workerErr.Position)
	}

	// The sequence is terminal after propagation.
	for i := 0; i < 2; i++ {
		_, _, err := seq.Next()
		if !errors.Is(err, iterate.ErrSeqFailed) {
			t.Fatalf("pull after failure: got %v, want ErrSeqFailed", err)
		}
	}
}

func TestOrderUnderAdversarialTiming(t *testing.T) {
	// Position 0 finishes last; later positions complete almost instantly.
	plan := mustConfigure(t, 4, iterate.Inputs{"n": intRange(4)})

	seq, err := iterate.Wrap(plan, func(a iterate.Args) (int, error) {
		n := a.Get("n").(int)
		if n == 0 {
			time.Sleep(50 * time.Millisecond)
		}
		return n, nil
	}).Invoke(context.Background())
	if err != nil {
		t.Fatalf("invoke failed: %v", err)
	}

	got, err := seq.Collect()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("got %v, want strictly increasing positions", got)
		}
	}
}

func TestPanicCapturedAsError(t *testing.T) {
	plan := mustConfigure(t, 2, iterate.Inputs{"n": intRange(3)})

	seq, err := iterate.Wrap(plan, func(a iterate.Args) (int, error) {
		if a.Get("n").(int) == 1 {
			panic("unexpected state")
		}
		return 0, nil
	}).Invoke(context.Background())
	if err != nil {
		t.Fatalf("invoke failed: %v", err)
	}

	_, err = seq.Collect()
	if err == nil {
		t.Fatal("expected propagated panic, got nil")
	}
	var panicErr iterate.ErrPanic
	if !errors.As(err, &panicErr) {
		t.Fatalf("expected ErrPanic, got %T: %v", err, err)
	}
	if panicErr.Value != "unexpected state" {
		t.Errorf("panic value = %v, want %q", panicErr.Value, "unexpected state")
	}
}

func TestAllIterator(t *testing.T) {
	plan := mustConfigure(t, 2, iterate.Inputs{"n": intRange(5)},
		iterate.WithIgnoreValue(0))

	seq, err := iterate.Wrap(plan, func(a iterate.Args) (int, error) {
		return a.Get("n").(int) % 2, nil
	}).Invoke(context.Background())
	if err != nil {
		t.Fatalf("invoke failed: %v", err)
	}

	var got []int
	for v, err := range seq.All() {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, v)
	}
	// Positions 0, 2, 4 map to the ignored value 0.
	if len(got) != 2 {
		t.Fatalf("got %v, want two surviving values", got)
	}
	for _, v := range got {
		if v != 1 {
			t.Errorf("got %d, want 1", v)
		}
	}
}

func TestAllIteratorYieldsPropagatedError(t *testing.T) {
	errBoom := errors.New("boom")
	plan := mustConfigure(t, 2, iterate.Inputs{"n": intRange(4)})

	seq, err := iterate.Wrap(plan, func(a iterate.Args) (int, error) {
		if a.Get("n").(int) == 2 {
			return 0, errBoom
		}
		return a.Get("n").(int), nil
	}).Invoke(context.Background())
	if err != nil {
		t.Fatalf("invoke failed: %v", err)
	}

	var values []int
	var sawErr error
	for v, err := range seq.All() {
		if err != nil {
			sawErr = err
			continue
		}
		values = append(values, v)
	}
	if !errors.Is(sawErr, errBoom) {
		t.Fatalf("expected errBoom from iterator, got %v", sawErr)
	}
	if len(values) != 2 {
		t.Fatalf("expected positions 0 and 1 before the failure, got %v", values)
	}
}

func TestWithRateLimit(t *testing.T) {
	plan := mustConfigure(t, 4, iterate.Inputs{"n": intRange(8)},
		iterate.WithRateLimit(1000, 4))

	seq, err := iterate.Wrap(plan, func(a iterate.Args) (int, error) {
		return a.Get("n").(int), nil
	}).Invoke(context.Background())
	if err != nil {
		t.Fatalf("invoke failed: %v", err)
	}

	got, err := seq.Collect()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 8 {
		t.Fatalf("got %d values, want 8", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Errorf("got[%d] = %d, want %d", i, v, i)
		}
	}
}

func BenchmarkInvoke(b *testing.B) {
	inputs := iterate.Inputs{"n": intRange(256)}
	op := func(a iterate.Args) (int, error) {
		return a.Get("n").(int) * 2, nil
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		plan, err := iterate.Configure(8, inputs)
		if err != nil {
			b.Fatal(err)
		}
		seq, err := iterate.Wrap(plan, op).Invoke(context.Background())
		if err != nil {
			b.Fatal(err)
		}
		if _, err := seq.Collect(); err != nil {
			b.Fatal(err)
		}
	}
}
