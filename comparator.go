package structdiff

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"sync"

	"github.com/google/go-cmp/cmp"
)

// Comparator compares one pair of values. It is single-use: construct it with
// New, call Diff once.
//
// If the two values are equal (by reference or value) Diff returns an empty
// Result without looking at any members
type Comparator struct {
	run *run

	left, right reflect.Value
	// name is the display name, and for nested comparisons the full path of
	// the member being compared
	name   string
	prefix string
	depth  int

	ancestors visitSet
	result    *Result
	used      bool
}

// New creates a Comparator for left and right
func New(left, right interface{}, opts ...Option) *Comparator {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	r := newRun(cfg)

	lv, rv := reflect.ValueOf(left), reflect.ValueOf(right)
	name := cfg.Label
	if strings.TrimSpace(name) == "" {
		subject := indirect(lv)
		if !subject.IsValid() {
			subject = indirect(rv)
		}
		name = r.names.typeName(subject)
	}

	c := &Comparator{
		run:    r,
		left:   lv,
		right:  rv,
		name:   name,
		prefix: cfg.PathPrefix,
		result: newResult(name, left, right),
	}
	if !cfg.DisableCycleCheck {
		c.ancestors = visitSet(nil).with(newVisit(indirect(lv), indirect(rv)))
	}
	return c
}

// Name is the comparator's display name
func (c *Comparator) Name() string {
	return c.name
}

// Diff runs the comparison and returns the flattened result. Any error is
// fatal to the whole comparison, no partial result is returned
func (c *Comparator) Diff(ctx context.Context) (*Result, error) {
	if c.used {
		return nil, ErrComparatorUsed
	}
	if err := c.finalize(ctx); err != nil {
		return nil, err
	}
	return c.result, nil
}

// child creates the nested comparator for a composite member at path,
// enforcing the depth bound & cycle check
func (c *Comparator) child(path string, l, r reflect.Value) (*Comparator, error) {
	depth := c.depth + 1
	if limit := c.run.cfg.MaxDepth; limit > 0 && depth > limit {
		return nil, fmt.Errorf("%w: %q is nested %d levels deep, limit is %d", ErrDepthExceeded, path, depth, limit)
	}

	child := &Comparator{
		run:    c.run,
		left:   l,
		right:  r,
		name:   path,
		depth:  depth,
		result: newResult(path, valueOf(l), valueOf(r)),
	}
	if !c.run.cfg.DisableCycleCheck {
		v := newVisit(l, r)
		if c.ancestors.has(v) {
			return nil, fmt.Errorf("%w: %q refers back to one of its ancestors", ErrCycleDetected, path)
		}
		child.ancestors = c.ancestors.with(v)
	}
	return child, nil
}

// finalize enumerates members, compares them & flattens nested comparisons
func (c *Comparator) finalize(ctx context.Context) error {
	c.used = true
	if err := ctx.Err(); err != nil {
		return err
	}

	l, r := indirect(c.left), indirect(c.right)
	if c.run.equal(l, r) {
		c.run.record(func(st *Stats) { st.Skipped++ })
		c.run.log.DebugContext(ctx, "values are equal, skipping", slog.String("label", c.name))
		return nil
	}
	c.run.record(func(st *Stats) { st.MaxDepth = max(st.MaxDepth, c.depth) })

	if c.enumerable(l, r) {
		c.run.record(func(st *Stats) { st.Composites++ })
		members, err := c.run.enum.Members(l, r)
		if err != nil {
			return fmt.Errorf("comparing %q: %w", c.name, err)
		}
		for _, m := range members {
			path := JoinPath(c.run.cfg.Delimiter, c.prefix, c.name, m.Label)
			if err := c.compare(path, m.Left, m.Right); err != nil {
				return err
			}
		}
	} else {
		// scalars, collections & mismatched types at the root compare as a
		// single member named after the root
		path := JoinPath(c.run.cfg.Delimiter, c.prefix, c.name)
		if path == "" {
			path = rootPath
		}
		if err := c.compare(path, l, r); err != nil {
			return err
		}
	}

	if err := c.result.finalize(ctx, c.run); err != nil {
		return err
	}
	c.run.log.DebugContext(ctx, "finalized comparison",
		slog.String("label", c.name),
		slog.Int("depth", c.depth),
		slog.Int("diffs", c.result.Len()),
	)
	return nil
}

// enumerable reports whether l & r should be compared member by member
func (c *Comparator) enumerable(l, r reflect.Value) bool {
	subject := l
	if !subject.IsValid() {
		subject = r
	}
	if !subject.IsValid() {
		return false
	}
	if l.IsValid() && r.IsValid() && l.Type() != r.Type() {
		return false
	}
	return kindOf(subject) == kindComposite
}

// run holds state shared by every comparator in one comparison tree
type run struct {
	cfg     *Config
	names   *Names
	enum    Enumerator
	cmpOpts []cmp.Option
	log     *slog.Logger

	mu    sync.Mutex
	stats *Stats
}

func newRun(cfg *Config) *run {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	enum := cfg.Enumerator
	if enum == nil {
		enum = newReflectEnumerator(cfg.Names, cfg.ExcludeFields)
	}
	opts := append([]cmp.Option{
		// members are only ever read through exported fields, but equality
		// has to look at everything a value holds
		cmp.Exporter(func(reflect.Type) bool { return true }),
	}, cfg.CmpOptions...)

	return &run{
		cfg:     cfg,
		names:   cfg.Names,
		enum:    enum,
		cmpOpts: opts,
		log:     logger.With(slog.String("component", "structdiff")),
		stats:   cfg.Stats,
	}
}

// equal is the universal short-circuit: two absent values, or two values of
// the same type that go-cmp considers equal
func (r *run) equal(l, rv reflect.Value) bool {
	if !l.IsValid() || !rv.IsValid() {
		return !l.IsValid() && !rv.IsValid()
	}
	if l.Type() != rv.Type() {
		return false
	}
	if !l.CanInterface() || !rv.CanInterface() {
		return false
	}
	return cmp.Equal(l.Interface(), rv.Interface(), r.cmpOpts...)
}

func (r *run) record(fn func(st *Stats)) {
	if r.stats == nil {
		return
	}
	r.mu.Lock()
	fn(r.stats)
	r.mu.Unlock()
}
