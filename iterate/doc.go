// Package iterate fans a sequence of independent function invocations out
// across a fixed pool of workers and reassembles their outcomes into a
// single ordered, lazily-consumed sequence.
//
// A run is described by named, equal-length input sequences. Each position
// across the sequences becomes one invocation of the target operation, and
// the consumer observes surviving results strictly in input order no matter
// how completions interleave. Specific error kinds, or a designated sentinel
// value, can be declared ignorable: matching outcomes are silently dropped
// from the output rather than emitted or propagated.
//
// Construction and execution are separate steps:
//
//	plan, err := iterate.Configure(4, iterate.Inputs{
//	    "path": {"a.txt", "b.txt", "c.txt"},
//	}, iterate.WithIgnoreKinds(os.ErrNotExist))
//	if err != nil {
//	    // invalid worker count or mismatched sequence lengths
//	}
//	seq, err := iterate.Wrap(plan, loadFile).Invoke(ctx)
//	for v, err := range seq.All() {
//	    ...
//	}
//
// Each run owns its worker pool: the queue is fully seeded up front, exactly
// the configured number of workers drain it, and the pool is torn down when
// the queue empties. A Handle is single use; a Seq is single pass. There is
// no cancellation of already-dispatched work — once Invoke returns, all
// positions run to completion even if the consumer abandons the sequence.
package iterate
