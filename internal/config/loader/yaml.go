package loader

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLoader loads configuration from YAML files.
type YAMLLoader struct {
	fs   FileSystem
	path string
}

// NewYAMLLoader creates a YAML loader reading from the OS file system.
func NewYAMLLoader(path string) *YAMLLoader {
	return NewYAMLLoaderWithFS(DefaultFS(), path)
}

// NewYAMLLoaderWithFS creates a YAML loader with a custom file system.
func NewYAMLLoaderWithFS(fs FileSystem, path string) *YAMLLoader {
	return &YAMLLoader{fs: fs, path: path}
}

// Load reads configuration from the configured path.
func (l *YAMLLoader) Load() (map[string]any, error) {
	data, err := readOptional(l.fs, l.path)
	if err != nil || data == nil {
		return nil, err
	}
	return ParseYAML(l.path, data)
}

// ParseYAML parses YAML data into a map. Nested mappings must use string keys.
func ParseYAML(source string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := yaml.Unmarshal(data, &config); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) && len(typeErr.Errors) > 0 {
			pe.Message = typeErr.Errors[0]
		}
		return nil, pe
	}
	if err := normalizeYAML(config); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return config, nil
}

// normalizeYAML converts integer values to int64 so YAML and TOML maps
// carry the same numeric types.
func normalizeYAML(m map[string]any) error {
	for k, v := range m {
		switch val := v.(type) {
		case map[string]any:
			if err := normalizeYAML(val); err != nil {
				return err
			}
		case map[any]any:
			return fmt.Errorf("key %q: mapping keys must be strings", k)
		case int:
			m[k] = int64(val)
		}
	}
	return nil
}
