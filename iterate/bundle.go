package iterate

import (
	"sort"
	"strconv"
	"strings"
)

// Inputs maps a parameter name to its finite input sequence. All sequences
// must have equal length K; position i across every sequence forms the
// arguments for invocation i.
type Inputs map[string][]any

// Args holds one invocation's named parameter values. It is built once per
// position by the run's configuration and must not be mutated by the
// target operation.
type Args map[string]any

// Get returns the value bound to name, or nil if name was not configured.
func (a Args) Get(name string) any {
	return a[name]
}

// Lookup returns the value bound to name and whether it was configured.
func (a Args) Lookup(name string) (any, bool) {
	v, ok := a[name]
	return v, ok
}

// Bundle pairs one invocation's arguments with its original position.
// Positions form a dense 0..K-1 range assigned in input order; the position
// is the ordering key for the run's output.
type Bundle struct {
	Position int
	Args     Args
}

// expand zips the named sequences in lock-step into K bundles. It is not a
// cartesian product: bundle i takes element i from every sequence.
func expand(inputs Inputs) ([]Bundle, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(inputs))
	for name := range inputs {
		names = append(names, name)
	}
	sort.Strings(names)

	k := len(inputs[names[0]])
	for _, name := range names[1:] {
		if len(inputs[name]) != k {
			return nil, configErrorf("input sequences have mismatched lengths (%s)", describeLengths(inputs, names))
		}
	}

	bundles := make([]Bundle, k)
	for i := 0; i < k; i++ {
		args := make(Args, len(names))
		for _, name := range names {
			args[name] = inputs[name][i]
		}
		bundles[i] = Bundle{Position: i, Args: args}
	}
	return bundles, nil
}

func describeLengths(inputs Inputs, names []string) string {
	var sb strings.Builder
	for i, name := range names {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(name)
		sb.WriteString("=")
		sb.WriteString(strconv.Itoa(len(inputs[name])))
	}
	return sb.String()
}
