package structdiff

import (
	"context"
	"encoding/json"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one root comparison: the root's label, the two
// root values, and the flattened, ordered list of leaf differences.
//
// While a comparison runs, a Result collects leaf pairs for its own level and
// holds the nested comparisons spawned at that level. Finalizing splices the
// nested comparisons' pairs in after the direct ones, in the order they were
// scheduled
type Result struct {
	Label string
	Left  interface{}
	Right interface{}

	diffs   []Pair
	pending []*Comparator
}

func newResult(label string, left, right interface{}) *Result {
	return &Result{Label: label, Left: left, Right: right}
}

// Diffs returns the flattened differences. The returned slice must not be
// modified
func (res *Result) Diffs() []Pair {
	return res.diffs
}

// Len is the number of differences
func (res *Result) Len() int {
	return len(res.diffs)
}

// Empty is true when the compared values had no differences
func (res *Result) Empty() bool {
	return len(res.diffs) == 0
}

// report is the serialized form of a Result
type report struct {
	Label string `json:"label" yaml:"label" msgpack:"label"`
	Diffs []Pair `json:"diffs" yaml:"diffs" msgpack:"diffs"`
}

func (res *Result) report() report {
	diffs := res.diffs
	if diffs == nil {
		diffs = []Pair{}
	}
	return report{Label: res.Label, Diffs: diffs}
}

// MarshalJSON implements json.Marshaler, encoding the label & differences
func (res *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(res.report())
}

func (res *Result) append(p Pair) {
	res.diffs = append(res.diffs, p)
}

func (res *Result) registerChild(c *Comparator) {
	res.pending = append(res.pending, c)
}

// finalize runs every pending nested comparison and appends its flattened
// pairs, in registration order. finalize isn't safe to call concurrently with
// append or registerChild
func (res *Result) finalize(ctx context.Context, r *run) error {
	pending := res.pending
	res.pending = nil
	if len(pending) == 0 {
		return nil
	}

	if r.cfg.Parallel > 1 && len(pending) > 1 {
		return res.finalizeParallel(ctx, r, pending)
	}

	for _, child := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := child.finalize(ctx); err != nil {
			return err
		}
		res.diffs = append(res.diffs, child.result.diffs...)
	}
	return nil
}

// finalizeParallel finalizes children concurrently. each child owns its own
// Result, so no locking is needed until the merge, which happens in
// registration order after all children are done
func (res *Result) finalizeParallel(ctx context.Context, r *run, pending []*Comparator) error {
	r.log.DebugContext(ctx, "finalizing nested comparisons in parallel",
		slog.String("label", res.Label),
		slog.Int("children", len(pending)),
		slog.Int("limit", r.cfg.Parallel),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(r.cfg.Parallel, len(pending)))
	for _, child := range pending {
		child := child
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			return child.finalize(gctx)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, child := range pending {
		res.diffs = append(res.diffs, child.result.diffs...)
	}
	return nil
}
