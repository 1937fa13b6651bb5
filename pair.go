package structdiff

import "fmt"

// Pair is a single leaf-level difference: the path to the differing value,
// and the value on each side. A side that's missing the value holds nil.
//
// Pairs are only ever produced for leaves. Differences inside nested structs
// or maps are reported as pairs of their own leaves, never as one boxed pair
type Pair struct {
	Path  string      `json:"path" yaml:"path" msgpack:"path"`
	Left  interface{} `json:"left" yaml:"left" msgpack:"left"`
	Right interface{} `json:"right" yaml:"right" msgpack:"right"`
}

// String renders the pair as "[path: left, right]"
func (p Pair) String() string {
	return fmt.Sprintf("[%s: %v, %v]", p.Path, p.Left, p.Right)
}
