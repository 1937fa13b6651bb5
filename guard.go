package structdiff

import "reflect"

// visit identifies a pair of composite values by address. Values without an
// address (structs passed by value, map entries) can't take part in a cycle
// and get a zero address
type visit struct {
	typ         reflect.Type
	left, right uintptr
}

func newVisit(l, r reflect.Value) visit {
	v := visit{left: address(l), right: address(r)}
	switch {
	case l.IsValid():
		v.typ = l.Type()
	case r.IsValid():
		v.typ = r.Type()
	}
	return v
}

func address(v reflect.Value) uintptr {
	switch {
	case !v.IsValid():
		return 0
	case v.Kind() == reflect.Map:
		return v.Pointer()
	case v.CanAddr():
		return v.UnsafeAddr()
	}
	return 0
}

func (v visit) anonymous() bool {
	return v.left == 0 && v.right == 0
}

// visitSet is the set of composite pairs on the path from the root to the
// current comparator. It is never mutated once built: descending copies it,
// which keeps sibling comparators, possibly running in parallel, independent
type visitSet map[visit]struct{}

func (s visitSet) has(v visit) bool {
	if v.anonymous() {
		return false
	}
	_, ok := s[v]
	return ok
}

func (s visitSet) with(v visit) visitSet {
	if v.anonymous() {
		return s
	}
	next := make(visitSet, len(s)+1)
	for k := range s {
		next[k] = struct{}{}
	}
	next[v] = struct{}{}
	return next
}
