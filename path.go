package structdiff

import "strings"

// JoinPath joins the non-empty segments with delim. Empty segments are
// skipped entirely, so the result never has leading, trailing or doubled
// delimiters
func JoinPath(delim string, segments ...string) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(delim)
		}
		b.WriteString(seg)
	}
	return b.String()
}

// rootPath is used as the path of a non-composite root that has no label
const rootPath = "$"
