package structdiff

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// TagName is the struct tag structdiff reads display names from.
// `diff:"label"` renames a field, `diff:"-"` excludes it
const TagName = "diff"

// Names holds display name overrides. Names always win over struct tags
type Names struct {
	// Types maps a type's reflect string ("main.Person") to its display name
	Types map[string]string `json:"types,omitempty" yaml:"types,omitempty" toml:"types,omitempty"`
	// Fields maps either a qualified member name ("Person.FirstName") or a
	// bare member name ("FirstName", or a map key) to its display name.
	// Qualified entries take precedence
	Fields map[string]string `json:"fields,omitempty" yaml:"fields,omitempty" toml:"fields,omitempty"`
}

// Namer is implemented by types that supply their own display name
type Namer interface {
	DiffName() string
}

// LoadNames reads a names file. The format is picked from the file
// extension: .yaml, .yml or .toml
func LoadNames(path string) (*Names, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading names file: %w", err)
	}
	names, err := ParseNames(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return names, nil
}

// ParseNames decodes names data. format is a file extension, with or without
// the leading dot
func ParseNames(data []byte, format string) (*Names, error) {
	names := &Names{}
	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(names); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case "toml":
		meta, err := toml.Decode(string(data), names)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown names key %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("%w: unsupported names format %q", ErrInvalidArgument, format)
	}
	return names, nil
}

// typeName resolves the display name of a composite value, or "" if none is
// declared
func (n *Names) typeName(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	if n != nil {
		if name, ok := n.Types[v.Type().String()]; ok {
			return name
		}
	}
	if namer, ok := asNamer(v); ok {
		return namer.DiffName()
	}
	return ""
}

func asNamer(v reflect.Value) (Namer, bool) {
	if v.CanInterface() {
		if namer, ok := v.Interface().(Namer); ok {
			return namer, true
		}
	}
	if v.CanAddr() && v.Addr().CanInterface() {
		if namer, ok := v.Addr().Interface().(Namer); ok {
			return namer, true
		}
	}
	return nil, false
}

// fieldName resolves the display name of a struct field, falling back to the
// field's own name
func (n *Names) fieldName(owner reflect.Type, f reflect.StructField) string {
	if n != nil {
		if name, ok := n.Fields[owner.Name()+"."+f.Name]; ok {
			return name
		}
		if name, ok := n.Fields[f.Name]; ok {
			return name
		}
	}
	if label, _ := parseTag(f.Tag.Get(TagName)); label != "" {
		return label
	}
	return f.Name
}

// memberName resolves the display name of a map key or a Lister member
func (n *Names) memberName(owner reflect.Type, name string) string {
	if n != nil {
		if owner != nil && owner.Name() != "" {
			if label, ok := n.Fields[owner.Name()+"."+name]; ok {
				return label
			}
		}
		if label, ok := n.Fields[name]; ok {
			return label
		}
	}
	return name
}

// parseTag splits a diff struct tag into its label & whether the field is
// excluded
func parseTag(tag string) (label string, exclude bool) {
	if tag == "-" {
		return "", true
	}
	label, _, _ = strings.Cut(tag, ",")
	return label, false
}
