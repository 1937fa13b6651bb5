// Package structdiff is a field-level differ for Go values. Given two values
// of the same shape it produces a flat, ordered list of leaf differences,
// each carrying a human-readable path built from display names.
//
// structdiff is meant for audit trails, change reports and test assertions,
// where "these two objects differ" isn't enough & the reader needs to know
// exactly which leaf fields changed and what they changed from/to.
//
// Values are classified in a fixed priority order:
//
//	equal values    - nothing is reported, at any depth
//	arrays          - [N]T and []byte: one whole-sequence difference
//	scalars         - bool, numbers, strings: one difference
//	ordered values  - types with a Compare(T) int method, eg. time.Time
//	collections     - slices, compared element-by-element
//	composites      - structs & maps, compared member-by-member
//
// Structs without exported fields, like big.Int, can't be compared member by
// member and are reported whole, the same as scalars.
//
// Composites spawn nested comparisons whose differences are spliced into
// their parent's list once the parent is finalized. At each level the
// parent's own leaf differences come first, in member order, followed by the
// differences of each nested comparison in the order they were scheduled.
//
// Paths are built by joining display names with a delimiter ("-" by default).
// Display names come from, in order of precedence, a Names configuration
// (usually loaded from a YAML or TOML file), the `diff:"name"` struct tag, and
// finally the field's Go name. A field tagged `diff:"-"` is never compared:
//
//	type Person struct {
//		FirstName string `diff:"姓"`
//		Age       int    `diff:"年龄"`
//		Password  string `diff:"-"`
//	}
//
// Comparing two Persons with differing names & ages yields the paths "姓" and
// "年龄".
//
// structdiff assumes finite graphs, but guards against cycles & runaway depth
// by default, returning ErrCycleDetected or ErrDepthExceeded instead of
// recursing forever
package structdiff
