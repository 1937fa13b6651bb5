package structdiff

import (
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
)

// valueKind is the classification compare dispatches on
type valueKind uint8

const (
	kindOpaque valueKind = iota
	kindArray
	kindScalar
	kindOrdered
	kindCollection
	kindComposite
)

func (k valueKind) String() string {
	switch k {
	case kindArray:
		return "array"
	case kindScalar:
		return "scalar"
	case kindOrdered:
		return "ordered"
	case kindCollection:
		return "collection"
	case kindComposite:
		return "composite"
	default:
		return "opaque"
	}
}

// kindOf classifies v, which must be valid & already indirected
func kindOf(v reflect.Value) valueKind {
	t := v.Type()
	switch t.Kind() {
	case reflect.Array:
		return kindArray
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return kindArray
		}
	}

	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return kindScalar
	}

	if _, ok := compareMethod(t); ok {
		return kindOrdered
	}

	switch t.Kind() {
	case reflect.Slice:
		return kindCollection
	case reflect.Struct:
		// structs with only unexported state can't be enumerated, so they
		// compare whole
		if !hasMembers(t, nil) && !implementsLister(t) {
			return kindOpaque
		}
		return kindComposite
	case reflect.Map:
		return kindComposite
	}
	return kindOpaque
}

var listerType = reflect.TypeOf((*Lister)(nil)).Elem()

func implementsLister(t reflect.Type) bool {
	return t.Implements(listerType) || reflect.PointerTo(t).Implements(listerType)
}

// compareMethod finds a Compare(T) int method in t's value method set
func compareMethod(t reflect.Type) (reflect.Method, bool) {
	m, ok := t.MethodByName("Compare")
	if !ok {
		return m, false
	}
	// method type from a reflect.Type includes the receiver as In(0)
	mt := m.Type
	if mt.NumIn() != 2 || mt.NumOut() != 1 || mt.In(1) != t || mt.Out(0).Kind() != reflect.Int {
		return m, false
	}
	return m, true
}

// indirect follows pointers & interfaces, returning the zero Value for nil
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// isNil reports whether v is absent or a nil slice / map
func isNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Map:
		return v.IsNil()
	}
	return false
}

// valueOf returns the interface value of v, nil for the zero Value
func valueOf(v reflect.Value) interface{} {
	if !v.IsValid() || !v.CanInterface() {
		return nil
	}
	return v.Interface()
}

// boxSequence converts an array or slice into a []interface{} so both sides
// of a whole-sequence difference share one representation
func boxSequence(v reflect.Value) interface{} {
	if isNil(v) {
		return nil
	}
	boxed := make([]interface{}, v.Len())
	for i := range boxed {
		boxed[i] = valueOf(v.Index(i))
	}
	return boxed
}

// compare classifies a pair of values at path and either records a leaf
// difference, walks a collection, or schedules a nested comparison. path must
// already include the current member's label
func (c *Comparator) compare(path string, left, right reflect.Value) error {
	if path == "" {
		return fmt.Errorf("%w: empty path in %q", ErrInvalidArgument, c.name)
	}

	l, r := indirect(left), indirect(right)
	if c.run.equal(l, r) {
		c.run.record(func(st *Stats) { st.Skipped++ })
		return nil
	}

	// either side may be nil, but not both: that would have been equal
	subject := l
	if !subject.IsValid() {
		subject = r
	}
	if l.IsValid() && r.IsValid() && l.Type() != r.Type() {
		c.leaf(path, valueOf(l), valueOf(r))
		return nil
	}

	switch kind := kindOf(subject); kind {
	case kindArray:
		c.run.record(func(st *Stats) { st.Arrays++ })
		c.leaf(path, boxSequence(l), boxSequence(r))
	case kindOrdered:
		if l.IsValid() && r.IsValid() && compareOrdered(l, r) == 0 {
			return nil
		}
		c.leaf(path, valueOf(l), valueOf(r))
	case kindCollection:
		return c.compareCollection(path, l, r)
	case kindComposite:
		child, err := c.child(path, l, r)
		if err != nil {
			return err
		}
		c.run.log.Debug("scheduling nested comparison",
			slog.String("path", path),
			slog.Int("depth", child.depth),
		)
		c.result.registerChild(child)
	default:
		// scalars & opaque kinds (funcs, chans, private-state structs) are
		// plain leaves
		c.leaf(path, valueOf(l), valueOf(r))
	}
	return nil
}

func (c *Comparator) leaf(path string, left, right interface{}) {
	c.run.record(func(st *Stats) { st.Leaves++ })
	c.result.append(Pair{Path: path, Left: left, Right: right})
}

// compareOrdered calls l.Compare(r). both values must be valid & interfaceable
func compareOrdered(l, r reflect.Value) int {
	m := l.MethodByName("Compare")
	out := m.Call([]reflect.Value{r})
	return int(out[0].Int())
}

// compareCollection walks two slices. A nil side reports every element of
// the other side against nil. Otherwise elements are paired by index, equal
// pairs skipped, and elements past the shorter length are reported against
// nil on the side that lacks them
func (c *Comparator) compareCollection(path string, l, r reflect.Value) error {
	c.run.record(func(st *Stats) { st.Collections++ })

	switch {
	case isNil(l):
		for i, n := 0, r.Len(); i < n; i++ {
			if err := c.compare(c.elementPath(path, i), reflect.Value{}, r.Index(i)); err != nil {
				return err
			}
		}
		return nil
	case isNil(r):
		for i, n := 0, l.Len(); i < n; i++ {
			if err := c.compare(c.elementPath(path, i), l.Index(i), reflect.Value{}); err != nil {
				return err
			}
		}
		return nil
	}

	n := min(l.Len(), r.Len())
	for i := 0; i < n; i++ {
		le, re := l.Index(i), r.Index(i)
		if c.run.equal(indirect(le), indirect(re)) {
			c.run.record(func(st *Stats) { st.Skipped++ })
			if c.run.cfg.StopAtEqualElement {
				return nil
			}
			continue
		}
		if err := c.compare(c.elementPath(path, i), le, re); err != nil {
			return err
		}
	}
	for i := n; i < l.Len(); i++ {
		if err := c.compare(c.elementPath(path, i), l.Index(i), reflect.Value{}); err != nil {
			return err
		}
	}
	for i := n; i < r.Len(); i++ {
		if err := c.compare(c.elementPath(path, i), reflect.Value{}, r.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Comparator) elementPath(path string, i int) string {
	if !c.run.cfg.IndexElements {
		return path
	}
	return path + "[" + strconv.Itoa(i) + "]"
}
