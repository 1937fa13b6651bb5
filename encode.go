package structdiff

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Encoding names a serialization format for results
type Encoding string

const (
	// EncodingJSON is indented JSON
	EncodingJSON = Encoding("json")
	// EncodingYAML is YAML with two-space indentation
	EncodingYAML = Encoding("yaml")
	// EncodingMsgpack is MessagePack
	EncodingMsgpack = Encoding("msgpack")
)

// ParseEncoding maps a format name to an Encoding. "yml" & "mp" are accepted
// as aliases
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(s) {
	case "json":
		return EncodingJSON, nil
	case "yaml", "yml":
		return EncodingYAML, nil
	case "msgpack", "mp":
		return EncodingMsgpack, nil
	}
	return "", fmt.Errorf("%w: unknown encoding %q", ErrInvalidArgument, s)
}

// Encode writes res to w as {label, diffs: [{path, left, right}...]}
func Encode(w io.Writer, res *Result, enc Encoding) error {
	rep := res.report()
	switch enc {
	case EncodingJSON:
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		return e.Encode(rep)
	case EncodingYAML:
		e := yaml.NewEncoder(w)
		e.SetIndent(2)
		if err := e.Encode(rep); err != nil {
			return err
		}
		return e.Close()
	case EncodingMsgpack:
		return msgpack.NewEncoder(w).Encode(rep)
	}
	return fmt.Errorf("%w: unknown encoding %q", ErrInvalidArgument, enc)
}
