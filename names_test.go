package structdiff

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseNames(t *testing.T) {
	expect := &Names{
		Types:  map[string]string{"structdiff.Person": "person"},
		Fields: map[string]string{"Person.Surname": "family", "Age": "years"},
	}

	cases := []struct {
		description string
		format      string
		data        string
	}{
		{"yaml", "yaml", `
types:
  structdiff.Person: person
fields:
  Person.Surname: family
  Age: years
`},
		{"yml with dot", ".yml", `{types: {structdiff.Person: person}, fields: {Person.Surname: family, Age: years}}`},
		{"toml", "TOML", `
[types]
"structdiff.Person" = "person"

[fields]
"Person.Surname" = "family"
Age = "years"
`},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			got, err := ParseNames([]byte(c.data), c.format)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(expect, got); diff != "" {
				t.Errorf("result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseNamesErrors(t *testing.T) {
	cases := []struct {
		description string
		format      string
		data        string
	}{
		{"unknown yaml key", "yaml", "labels:\n  a: b\n"},
		{"unknown toml key", "toml", "[labels]\na = \"b\"\n"},
		{"bad yaml", "yaml", "types: [\n"},
		{"bad toml", "toml", "types = \n"},
		{"unsupported format", "json", `{}`},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			if _, err := ParseNames([]byte(c.data), c.format); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}

	if _, err := ParseNames(nil, "ini"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestParseNamesEmpty(t *testing.T) {
	got, err := ParseNames(nil, "yaml")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(&Names{}, got); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadNames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "names.toml")
	if err := os.WriteFile(path, []byte("[fields]\nSurname = \"姓氏\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	names, err := LoadNames(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := names.Fields["Surname"]; got != "姓氏" {
		t.Errorf("expected %q, got %q", "姓氏", got)
	}

	if _, err := LoadNames(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestFieldNamePrecedence(t *testing.T) {
	personType := reflect.TypeOf(Person{})
	surname, _ := personType.FieldByName("Surname")
	given, _ := personType.FieldByName("Given")
	phones, _ := reflect.TypeOf(Phone{}).FieldByName("Number")

	cases := []struct {
		description string
		names       *Names
		owner       reflect.Type
		field       reflect.StructField
		expect      string
	}{
		{"nil names uses tag", nil, personType, surname, "姓"},
		{"qualified", &Names{Fields: map[string]string{"Person.Surname": "a", "Surname": "b"}}, personType, surname, "a"},
		{"bare", &Names{Fields: map[string]string{"Surname": "b"}}, personType, surname, "b"},
		{"qualified for another type", &Names{Fields: map[string]string{"Phone.Given": "c"}}, personType, given, "名"},
		{"untagged falls back to field name", &Names{}, reflect.TypeOf(Phone{}), phones, "Number"},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			if got := c.names.fieldName(c.owner, c.field); got != c.expect {
				t.Errorf("expected %q, got %q", c.expect, got)
			}
		})
	}
}

func TestTypeName(t *testing.T) {
	var nilNames *Names
	if got := nilNames.typeName(reflect.ValueOf(Order{})); got != "order" {
		t.Errorf("expected namer name, got %q", got)
	}
	if got := nilNames.typeName(reflect.ValueOf(Person{})); got != "" {
		t.Errorf("expected no name, got %q", got)
	}
	names := &Names{Types: map[string]string{"structdiff.Person": "person"}}
	if got := names.typeName(reflect.ValueOf(Person{})); got != "person" {
		t.Errorf("expected configured name, got %q", got)
	}
	if got := names.typeName(reflect.Value{}); got != "" {
		t.Errorf("expected no name for invalid value, got %q", got)
	}
}

func TestParseTag(t *testing.T) {
	cases := []struct {
		tag     string
		label   string
		exclude bool
	}{
		{"", "", false},
		{"-", "", true},
		{"姓", "姓", false},
		{"name,omitempty", "name", false},
		{"-,", "-", false},
	}
	for _, c := range cases {
		label, exclude := parseTag(c.tag)
		if label != c.label || exclude != c.exclude {
			t.Errorf("tag %q: expected (%q, %t), got (%q, %t)", c.tag, c.label, c.exclude, label, exclude)
		}
	}
}
