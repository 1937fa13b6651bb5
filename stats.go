package structdiff

import "fmt"

// Stats holds statistical metadata about a diff
type Stats struct {
	Leaves      int `json:"leaves"`      // number of leaf differences reported
	Composites  int `json:"composites"`  // number of struct / map pairs enumerated
	Collections int `json:"collections"` // number of slice pairs walked
	Arrays      int `json:"arrays"`      // number of whole-sequence differences
	Skipped     int `json:"skipped"`     // number of pairs skipped as equal
	MaxDepth    int `json:"maxDepth"`    // deepest nested comparison reached
}

// Visited is the number of value pairs the diff looked at
func (s Stats) Visited() int {
	return s.Leaves + s.Composites + s.Collections + s.Skipped
}

// String gives a one-line summary
func (s Stats) String() string {
	return fmt.Sprintf("%d leaves, %d composites, %d collections, %d arrays, %d skipped, depth %d",
		s.Leaves, s.Composites, s.Collections, s.Arrays, s.Skipped, s.MaxDepth)
}
