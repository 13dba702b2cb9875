package binding

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned by LoadFile for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported property file format")

// LoadFile reads a property file, choosing the parser by extension:
// .yaml and .yml, .toml, .env.
func LoadFile(fs afero.Fs, path string) (Properties, error) {
	var parse func([]byte) (Properties, error)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		parse = ParseYAML
	case ".toml":
		parse = ParseTOML
	case ".env":
		parse = ParseEnv
	default:
		return nil, fmt.Errorf("%s: %w %q", path, ErrUnsupportedFormat, ext)
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read properties: %w", err)
	}

	props, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return props, nil
}

// ParseYAML reads a YAML mapping document.
func ParseYAML(data []byte) (Properties, error) {
	var nested map[string]any
	if err := yaml.Unmarshal(data, &nested); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return Flatten(nested), nil
}

// ParseTOML reads a TOML document.
func ParseTOML(data []byte) (Properties, error) {
	var nested map[string]any
	if err := toml.Unmarshal(data, &nested); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return Flatten(nested), nil
}

// ParseEnv reads a dotenv document. Values stay strings.
func ParseEnv(data []byte) (Properties, error) {
	env, err := godotenv.UnmarshalBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dotenv: %w", err)
	}

	props := make(Properties, len(env))
	for k, v := range env {
		props[k] = v
	}

	return props, nil
}

// ParseQuery reads URI query parameters ("a=1&b=x", a leading "?" is
// allowed). Values stay strings; a repeated key keeps all its values joined
// with commas in order of appearance.
func ParseQuery(rawQuery string) (Properties, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse query: %w", err)
	}

	props := make(Properties, len(values))
	for k, vs := range values {
		props[k] = strings.Join(vs, ",")
	}

	return props, nil
}
