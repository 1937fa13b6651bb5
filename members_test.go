package structdiff

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type Base struct {
	ID int
}

type Doc struct {
	Base
	Title  string `diff:"title"`
	secret string
	Draft  bool   `diff:"-"`
}

type Linked struct {
	*Base
	Title string
}

type bag struct {
	members []NamedValue
}

func (b bag) DiffMembers() []NamedValue { return b.members }

// memberSummary drops reflect.Values, which don't compare
type memberSummary struct {
	Name, Label string
	Left, Right interface{}
}

func summarize(members []Member) []memberSummary {
	var out []memberSummary
	for _, m := range members {
		out = append(out, memberSummary{m.Name, m.Label, valueOf(m.Left), valueOf(m.Right)})
	}
	return out
}

func TestReflectEnumeratorStruct(t *testing.T) {
	e := newReflectEnumerator(nil, nil)
	l := Doc{Base: Base{ID: 1}, Title: "a", secret: "x", Draft: true}
	r := Doc{Base: Base{ID: 2}, Title: "b"}

	members, err := e.Members(reflect.ValueOf(l), reflect.ValueOf(r))
	if err != nil {
		t.Fatal(err)
	}
	expect := []memberSummary{
		{"ID", "ID", 1, 2},
		{"Title", "title", "a", "b"},
	}
	if diff := cmp.Diff(expect, summarize(members)); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}

	members, err = e.Members(reflect.Value{}, reflect.ValueOf(r))
	if err != nil {
		t.Fatal(err)
	}
	expect = []memberSummary{
		{"ID", "ID", nil, 2},
		{"Title", "title", nil, "b"},
	}
	if diff := cmp.Diff(expect, summarize(members)); diff != "" {
		t.Errorf("nil left mismatch (-want +got):\n%s", diff)
	}
}

func TestReflectEnumeratorNilEmbed(t *testing.T) {
	e := newReflectEnumerator(nil, []string{"Title"})
	members, err := e.Members(reflect.ValueOf(Linked{}), reflect.ValueOf(Linked{Base: &Base{ID: 3}}))
	if err != nil {
		t.Fatal(err)
	}
	expect := []memberSummary{{"ID", "ID", nil, 3}}
	if diff := cmp.Diff(expect, summarize(members)); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestReflectEnumeratorEmbeddedOpaque(t *testing.T) {
	e := newReflectEnumerator(nil, nil)
	t1 := time.Unix(0, 0).UTC()
	t2 := time.Unix(60, 0).UTC()
	members, err := e.Members(reflect.ValueOf(stamped{Time: t1, Note: "a"}), reflect.ValueOf(stamped{Time: t2, Note: "b"}))
	if err != nil {
		t.Fatal(err)
	}
	expect := []memberSummary{
		{"Time", "Time", t1, t2},
		{"Note", "Note", "a", "b"},
	}
	if diff := cmp.Diff(expect, summarize(members)); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestHasMembers(t *testing.T) {
	cases := []struct {
		value  interface{}
		expect bool
	}{
		{Address{}, true},
		{Doc{}, true},
		{time.Time{}, false},
		{sealed{}, false},
		{stamped{}, true},
		{struct{ time.Time }{}, true},
		{struct{ Base }{}, true},
		{struct{ sealed }{}, false},
	}
	for _, c := range cases {
		if got := hasMembers(reflect.TypeOf(c.value), nil); got != c.expect {
			t.Errorf("%T: expected %t, got %t", c.value, c.expect, got)
		}
	}
}

func TestReflectEnumeratorMap(t *testing.T) {
	names := &Names{Fields: map[string]string{"b": "bee"}}
	e := newReflectEnumerator(names, []string{"z"})
	l := map[string]int{"c": 3, "a": 1, "z": 0}
	r := map[string]int{"b": 2, "a": 4}

	members, err := e.Members(reflect.ValueOf(l), reflect.ValueOf(r))
	if err != nil {
		t.Fatal(err)
	}
	expect := []memberSummary{
		{"a", "a", 1, 4},
		{"b", "bee", nil, 2},
		{"c", "c", 3, nil},
	}
	if diff := cmp.Diff(expect, summarize(members)); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestReflectEnumeratorLister(t *testing.T) {
	e := newReflectEnumerator(nil, nil)
	l := bag{[]NamedValue{{"x", 1}, {"y", 2}}}
	r := bag{[]NamedValue{{"x", 1}, {"y", 3}}}

	members, err := e.Members(reflect.ValueOf(l), reflect.ValueOf(r))
	if err != nil {
		t.Fatal(err)
	}
	expect := []memberSummary{
		{"x", "x", 1, 1},
		{"y", "y", 2, 3},
	}
	if diff := cmp.Diff(expect, summarize(members)); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}

	cases := []struct {
		description string
		left, right bag
	}{
		{"length mismatch", bag{[]NamedValue{{"x", 1}}}, bag{[]NamedValue{{"x", 1}, {"y", 2}}}},
		{"name mismatch", bag{[]NamedValue{{"x", 1}}}, bag{[]NamedValue{{"y", 1}}}},
		{"empty name", bag{[]NamedValue{{"", 1}}}, bag{[]NamedValue{{"", 2}}}},
	}
	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			_, err := e.Members(reflect.ValueOf(c.left), reflect.ValueOf(c.right))
			if !errors.Is(err, ErrIntrospection) {
				t.Errorf("expected ErrIntrospection, got %v", err)
			}
		})
	}
}

func TestReflectEnumeratorNotComposite(t *testing.T) {
	e := newReflectEnumerator(nil, nil)
	if _, err := e.Members(reflect.ValueOf(1), reflect.ValueOf(2)); !errors.Is(err, ErrIntrospection) {
		t.Errorf("expected ErrIntrospection, got %v", err)
	}
	members, err := e.Members(reflect.Value{}, reflect.Value{})
	if err != nil || members != nil {
		t.Errorf("expected no members & no error, got %v, %v", members, err)
	}
}
