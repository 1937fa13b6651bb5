package structdiff

import (
	"context"
	"log/slog"
	"sort"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const (
	// DefaultDelimiter separates path segments unless OptionDelimiter says
	// otherwise
	DefaultDelimiter = "-"
	// DefaultMaxDepth caps how many composite levels a comparison may descend
	DefaultMaxDepth = 64
)

// Diff computes the flattened list of leaf differences between left and right.
// It is shorthand for New(left, right, opts...).Diff(ctx)
func Diff(ctx context.Context, left, right interface{}, opts ...Option) (*Result, error) {
	return New(left, right, opts...).Diff(ctx)
}

// Config are any possible configuration parameters for calculating diffs
type Config struct {
	// Label overrides the display name of the root value. When blank the
	// root's type name is resolved through Names
	Label string
	// PathPrefix is joined in front of every path produced by the root
	PathPrefix string
	// Delimiter joins path segments
	Delimiter string
	// Names supplies display name overrides for types & members
	Names *Names
	// ExcludeFields lists natural member names that are never compared. Must
	// be sorted, OptionExcludeFields takes care of that
	ExcludeFields []string
	// Enumerator replaces the default reflection-based member enumerator
	Enumerator Enumerator
	// IndexElements appends "[i]" to the path of collection elements
	IndexElements bool
	// StopAtEqualElement ends a collection walk at the first equal pair of
	// elements instead of skipping it
	StopAtEqualElement bool
	// MaxDepth bounds nesting of composite comparisons, 0 disables the bound
	MaxDepth int
	// DisableCycleCheck turns off reference-cycle detection
	DisableCycleCheck bool
	// Parallel sets how many nested comparisons may be finalized at once.
	// values < 2 finalize serially
	Parallel int
	// CmpOptions are passed to cmp.Equal when testing values for equality
	CmpOptions []cmp.Option
	// Logger receives debug records, defaults to slog.Default()
	Logger *slog.Logger
	// Provide a non-nil stats pointer & diff will populate it with data from
	// the diff process
	Stats *Stats
}

// DefaultConfig returns the configuration used when no options are given
func DefaultConfig() *Config {
	return &Config{
		Delimiter: DefaultDelimiter,
		MaxDepth:  DefaultMaxDepth,
	}
}

// Option is a function that adjusts a config, zero or more Options can be
// passed to Diff or New
type Option func(cfg *Config)

// OptionLabel sets the root display name, taking priority over any name
// derived from the root's type
func OptionLabel(label string) Option {
	return func(cfg *Config) {
		cfg.Label = label
	}
}

// OptionPathPrefix prepends prefix to every produced path
func OptionPathPrefix(prefix string) Option {
	return func(cfg *Config) {
		cfg.PathPrefix = prefix
	}
}

// OptionDelimiter sets the path segment delimiter
func OptionDelimiter(delim string) Option {
	return func(cfg *Config) {
		cfg.Delimiter = delim
	}
}

// OptionNames supplies type & member display name overrides
func OptionNames(names *Names) Option {
	return func(cfg *Config) {
		cfg.Names = names
	}
}

// OptionExcludeFields skips members whose natural name is one of names.
// Fields like "Password" or "UpdatedAt" are typical candidates
func OptionExcludeFields(names ...string) Option {
	return func(cfg *Config) {
		cfg.ExcludeFields = append(cfg.ExcludeFields, names...)
		sort.Strings(cfg.ExcludeFields)
	}
}

// OptionEnumerator replaces the default member enumerator
func OptionEnumerator(e Enumerator) Option {
	return func(cfg *Config) {
		cfg.Enumerator = e
	}
}

// OptionIndexElements appends the element index to collection element paths,
// "Phones[1]" instead of "Phones"
func OptionIndexElements() Option {
	return func(cfg *Config) {
		cfg.IndexElements = true
	}
}

// OptionStopAtEqualElement ends each collection walk at the first pair of
// equal elements. This reproduces the output of older releases, which
// stopped scanning early
func OptionStopAtEqualElement() Option {
	return func(cfg *Config) {
		cfg.StopAtEqualElement = true
	}
}

// OptionMaxDepth bounds composite nesting. 0 removes the bound
func OptionMaxDepth(depth int) Option {
	return func(cfg *Config) {
		cfg.MaxDepth = max(0, depth)
	}
}

// OptionDisableCycleCheck turns off reference-cycle detection. Callers that
// know their data is acyclic can skip the bookkeeping
func OptionDisableCycleCheck() Option {
	return func(cfg *Config) {
		cfg.DisableCycleCheck = true
	}
}

// OptionParallel finalizes up to n nested comparisons concurrently. Output
// order is the same as a serial run
func OptionParallel(n int) Option {
	return func(cfg *Config) {
		cfg.Parallel = n
	}
}

// OptionFloatTolerance treats floats as equal when they are within fraction
// (relative) or margin (absolute) of each other
func OptionFloatTolerance(fraction, margin float64) Option {
	return func(cfg *Config) {
		cfg.CmpOptions = append(cfg.CmpOptions, cmpopts.EquateApprox(fraction, margin))
	}
}

// OptionEquateEmpty treats nil and empty slices & maps as equal
func OptionEquateEmpty() Option {
	return func(cfg *Config) {
		cfg.CmpOptions = append(cfg.CmpOptions, cmpopts.EquateEmpty())
	}
}

// OptionCmpOptions adds raw go-cmp options to the equality test
func OptionCmpOptions(opts ...cmp.Option) Option {
	return func(cfg *Config) {
		cfg.CmpOptions = append(cfg.CmpOptions, opts...)
	}
}

// OptionLogger sets the logger debug records are written to
func OptionLogger(l *slog.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = l
	}
}

// OptionSetStats will set the passed-in stats pointer when Diff is called
func OptionSetStats(st *Stats) Option {
	return func(cfg *Config) {
		cfg.Stats = st
	}
}
