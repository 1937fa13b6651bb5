package structdiff

import (
	"fmt"
	"reflect"
	"sort"
)

// Member is one comparable member of a composite pair: its natural name, the
// display label used in paths, and the value on each side. A side that
// doesn't have the member holds the zero reflect.Value
type Member struct {
	Name        string
	Label       string
	Left, Right reflect.Value
}

// Enumerator lists the comparable members of a composite pair, in the order
// they should be compared. Implementations apply any exclusion policy before
// returning. Either side may be the zero reflect.Value when it is nil
type Enumerator interface {
	Members(left, right reflect.Value) ([]Member, error)
}

// EnumeratorFunc adapts a function to the Enumerator interface
type EnumeratorFunc func(left, right reflect.Value) ([]Member, error)

// Members calls f(left, right)
func (f EnumeratorFunc) Members(left, right reflect.Value) ([]Member, error) {
	return f(left, right)
}

// NamedValue is one member reported by a Lister
type NamedValue struct {
	Name  string
	Value interface{}
}

// Lister is implemented by types that enumerate their own comparable members
// instead of relying on reflection. Both sides of a comparison must list the
// same names in the same order
type Lister interface {
	DiffMembers() []NamedValue
}

// reflectEnumerator is the default Enumerator. structs yield their exported
// fields (embedded structs flattened), maps yield their keys sorted by string
// form, Listers yield whatever they list
type reflectEnumerator struct {
	names   *Names
	exclude []string
}

func newReflectEnumerator(names *Names, exclude []string) *reflectEnumerator {
	return &reflectEnumerator{names: names, exclude: exclude}
}

func (e *reflectEnumerator) Members(left, right reflect.Value) ([]Member, error) {
	subject := left
	if !subject.IsValid() {
		subject = right
	}
	if !subject.IsValid() {
		return nil, nil
	}

	if _, ok := asLister(subject); ok {
		return e.listerMembers(subject.Type(), left, right)
	}

	switch subject.Kind() {
	case reflect.Struct:
		return e.structMembers(subject.Type(), left, right)
	case reflect.Map:
		return e.mapMembers(subject.Type(), left, right), nil
	default:
		return nil, fmt.Errorf("%w: %s is not a composite type", ErrIntrospection, subject.Type())
	}
}

// excluded reports whether name is in the exclusion set, which must be sorted
func (e *reflectEnumerator) excluded(name string) bool {
	i := sort.SearchStrings(e.exclude, name)
	return i < len(e.exclude) && e.exclude[i] == name
}

func (e *reflectEnumerator) structMembers(t reflect.Type, left, right reflect.Value) ([]Member, error) {
	var members []Member
	for _, f := range reflect.VisibleFields(t) {
		if !memberField(f) {
			continue
		}
		if _, skip := parseTag(f.Tag.Get(TagName)); skip || e.excluded(f.Name) {
			continue
		}

		m := Member{Name: f.Name, Label: e.names.fieldName(t, f)}
		var err error
		if m.Left, err = readField(left, f); err != nil {
			return nil, err
		}
		if m.Right, err = readField(right, f); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, nil
}

// memberField reports whether a visible struct field is compared as a member.
// Embedded structs are flattened into their promoted fields, unless they
// don't promote any, like an embedded time.Time
func memberField(f reflect.StructField) bool {
	if !f.IsExported() {
		return false
	}
	if f.Anonymous && isStruct(f.Type) {
		return !hasMembers(f.Type, nil)
	}
	return true
}

// hasMembers reports whether struct type t has anything to enumerate. A
// struct that only holds unexported state, like big.Int, has not
func hasMembers(t reflect.Type, seen map[reflect.Type]bool) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if seen[t] {
		return false
	}
	var embeds []reflect.Type
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() {
			continue
		}
		if f.Anonymous && isStruct(f.Type) {
			embeds = append(embeds, f.Type)
			continue
		}
		return true
	}
	if len(embeds) == 0 {
		return false
	}

	if seen == nil {
		seen = map[reflect.Type]bool{}
	}
	seen[t] = true
	for _, e := range embeds {
		// an embed without members of its own is compared whole
		if !hasMembers(e, seen) {
			return true
		}
	}
	return false
}

func isStruct(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

// readField reads a visible field, returning the zero Value when v is nil or
// the field is promoted through a nil embedded pointer
func readField(v reflect.Value, f reflect.StructField) (reflect.Value, error) {
	if !v.IsValid() {
		return reflect.Value{}, nil
	}
	fv, err := v.FieldByIndexErr(f.Index)
	if err != nil {
		return reflect.Value{}, nil
	}
	if !fv.CanInterface() {
		return reflect.Value{}, fmt.Errorf("%w: field %s.%s is not readable", ErrIntrospection, v.Type(), f.Name)
	}
	return fv, nil
}

// mapKey is one key of the union of two maps' keys
type mapKey struct {
	name, typ string
	key       reflect.Value
}

func (e *reflectEnumerator) mapMembers(t reflect.Type, left, right reflect.Value) []Member {
	seen := map[interface{}]bool{}
	var keys []mapKey
	for _, side := range []reflect.Value{left, right} {
		if !side.IsValid() {
			continue
		}
		for _, k := range side.MapKeys() {
			ki := k.Interface()
			if seen[ki] {
				continue
			}
			seen[ki] = true
			name := fmt.Sprint(ki)
			if !e.excluded(name) {
				keys = append(keys, mapKey{name: name, typ: fmt.Sprintf("%T", ki), key: k})
			}
		}
	}

	// keys of different types can print the same, 1 & "1" in a
	// map[interface{}]T, so the dynamic type breaks ties
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].name != keys[j].name {
			return keys[i].name < keys[j].name
		}
		return keys[i].typ < keys[j].typ
	})

	members := make([]Member, 0, len(keys))
	for _, k := range keys {
		members = append(members, Member{
			Name:  k.name,
			Label: e.names.memberName(t, k.name),
			Left:  mapIndex(left, k.key),
			Right: mapIndex(right, k.key),
		})
	}
	return members
}

func mapIndex(m, key reflect.Value) reflect.Value {
	if !m.IsValid() || m.IsNil() {
		return reflect.Value{}
	}
	if !key.Type().AssignableTo(m.Type().Key()) {
		return reflect.Value{}
	}
	return m.MapIndex(key)
}

func (e *reflectEnumerator) listerMembers(t reflect.Type, left, right reflect.Value) ([]Member, error) {
	var l, r []NamedValue
	if lister, ok := asLister(left); ok {
		l = lister.DiffMembers()
	}
	if lister, ok := asLister(right); ok {
		r = lister.DiffMembers()
	}
	if left.IsValid() && right.IsValid() && len(l) != len(r) {
		return nil, fmt.Errorf("%w: %s listed %d members on the left and %d on the right", ErrIntrospection, t, len(l), len(r))
	}

	n := max(len(l), len(r))
	members := make([]Member, 0, n)
	for i := 0; i < n; i++ {
		var m Member
		switch {
		case l != nil && r != nil:
			if l[i].Name != r[i].Name {
				return nil, fmt.Errorf("%w: %s member %d is %q on the left and %q on the right", ErrIntrospection, t, i, l[i].Name, r[i].Name)
			}
			m = Member{Name: l[i].Name, Left: reflect.ValueOf(l[i].Value), Right: reflect.ValueOf(r[i].Value)}
		case l != nil:
			m = Member{Name: l[i].Name, Left: reflect.ValueOf(l[i].Value)}
		default:
			m = Member{Name: r[i].Name, Right: reflect.ValueOf(r[i].Value)}
		}
		if m.Name == "" {
			return nil, fmt.Errorf("%w: %s member %d has no name", ErrIntrospection, t, i)
		}
		if e.excluded(m.Name) {
			continue
		}
		m.Label = e.names.memberName(t, m.Name)
		members = append(members, m)
	}
	return members, nil
}

func asLister(v reflect.Value) (Lister, bool) {
	if !v.IsValid() {
		return nil, false
	}
	if v.CanInterface() {
		if l, ok := v.Interface().(Lister); ok {
			return l, true
		}
	}
	if v.CanAddr() && v.Addr().CanInterface() {
		if l, ok := v.Addr().Interface().(Lister); ok {
			return l, true
		}
	}
	return nil, false
}
