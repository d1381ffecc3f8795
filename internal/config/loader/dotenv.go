package loader

import (
	"bytes"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// DotEnv reads KEY=VALUE pairs from a .env file into the process
// environment. Variables that are already set keep their value.
type DotEnv struct {
	fs     FileSystem
	path   string
	lookup func(string) (string, bool)
	setenv func(string, string) error
}

// NewDotEnv creates a .env reader using the OS file system and environment.
func NewDotEnv(path string) *DotEnv {
	return NewDotEnvWithFS(DefaultFS(), path)
}

// NewDotEnvWithFS creates a .env reader with a custom file system.
func NewDotEnvWithFS(fs FileSystem, path string) *DotEnv {
	return &DotEnv{fs: fs, path: path, lookup: os.LookupEnv, setenv: os.Setenv}
}

// Read parses the file. A missing file yields an empty map.
func (d *DotEnv) Read() (map[string]string, error) {
	data, err := readOptional(d.fs, d.path)
	if err != nil || data == nil {
		return map[string]string{}, err
	}
	values, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Path: d.path, Message: err.Error(), Err: err}
	}
	return values, nil
}

// Apply exports every variable from the file that is not already set
// and returns the names it exported.
func (d *DotEnv) Apply() ([]string, error) {
	values, err := d.Read()
	if err != nil {
		return nil, err
	}
	var applied []string
	for name, value := range values {
		if _, set := d.lookup(name); set {
			continue
		}
		if err := d.setenv(name, value); err != nil {
			return applied, fmt.Errorf("setting %s: %w", name, err)
		}
		applied = append(applied, name)
	}
	return applied, nil
}
