package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// decodeFile reads a document into generic maps, slices & scalars, picking
// the decoder from the file extension
func decodeFile(path string) (interface{}, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".toml" {
		doc := map[string]interface{}{}
		if _, err := toml.DecodeFile(path, &doc); err != nil {
			return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
		return doc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc interface{}
	switch ext {
	case ".json":
		err = json.Unmarshal(data, &doc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	case ".msgpack", ".mp":
		err = msgpack.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("%s: unsupported document format %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse %s: %w", path, strings.TrimPrefix(ext, "."), err)
	}
	return doc, nil
}
