// Package codec provides the serialization boundary for the configfile
// locator. A Codec turns a config value into bytes and back; JSON, YAML and
// TOML implementations are provided, and ForPath selects one from a file
// extension. Alternate formats are a drop-in: any type with Encode/Decode
// methods of the right shape satisfies Codec.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFileType is returned by ForPath when the file extension maps
// to no known codec.
var ErrUnsupportedFileType = errors.New("unsupported config file type")

// Codec encodes config values to bytes and decodes bytes into config values.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}

// JSON encodes with two-space indented pretty printing and no trailing
// newline.
type JSON struct{}

func (JSON) Encode(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func (JSON) Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// YAML encodes and decodes using gopkg.in/yaml.v3.
type YAML struct{}

// Encode marshals v to YAML. The yaml package panics on unsupported kinds
// such as funcs; the panic is converted into an error.
func (YAML) Encode(v any) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("marshal yaml: %v", r)
		}
	}()
	return yaml.Marshal(v)
}

func (YAML) Decode(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// TOML encodes and decodes using pelletier/go-toml.
type TOML struct{}

func (TOML) Encode(v any) ([]byte, error) {
	return toml.Marshal(v)
}

func (TOML) Decode(data []byte, v any) error {
	return toml.Unmarshal(data, v)
}

// ForPath returns the codec matching the extension of path: .json, .yaml,
// .yml or .toml. Any other extension yields ErrUnsupportedFileType.
func ForPath(path string) (Codec, error) {
	switch ext := filepath.Ext(path); ext {
	case ".json":
		return JSON{}, nil
	case ".yaml", ".yml":
		return YAML{}, nil
	case ".toml":
		return TOML{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFileType, ext)
	}
}
