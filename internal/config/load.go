package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/dshills/mousemark/internal/config/loader"
)

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	fs      loader.FileSystem
	path    string
	dotenv  string
	environ []string
	noEnv   bool
}

// WithFile sets the config file. Its extension selects the format.
// A missing file is not an error.
func WithFile(path string) Option {
	return func(o *loadOptions) {
		o.path = path
	}
}

// WithFS replaces the file system used to read the config and .env files.
func WithFS(fs loader.FileSystem) Option {
	return func(o *loadOptions) {
		if fs != nil {
			o.fs = fs
		}
	}
}

// WithDotEnv sets the .env file exported before the environment layer.
func WithDotEnv(path string) Option {
	return func(o *loadOptions) {
		o.dotenv = path
	}
}

// WithEnviron replaces the process environment with a fixed KEY=VALUE list.
// The .env layer then extends the list instead of the real environment.
func WithEnviron(environ []string) Option {
	return func(o *loadOptions) {
		o.environ = environ
	}
}

// WithoutEnv disables the .env and environment layers.
func WithoutEnv() Option {
	return func(o *loadOptions) {
		o.noEnv = true
	}
}

// Load merges every layer and returns a validated Config.
func Load(opts ...Option) (*Config, error) {
	o := loadOptions{fs: loader.DefaultFS()}
	for _, opt := range opts {
		opt(&o)
	}

	data := Defaults().toMap()

	if o.path != "" {
		l, err := loader.ForFile(o.fs, o.path)
		if err != nil {
			return nil, err
		}
		file, err := l.Load()
		if err != nil {
			return nil, err
		}
		data = loader.DeepMerge(data, file)
	}

	if !o.noEnv {
		env, err := o.envLayer()
		if err != nil {
			return nil, err
		}
		data = loader.DeepMerge(data, env)
	}

	c, unknown, err := decode(data)
	if err != nil {
		return nil, err
	}
	c.path = o.path
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.warnings = append(unknown, c.warnings...)
	return c, nil
}

func (o *loadOptions) envLayer() (map[string]any, error) {
	var env *loader.EnvLoader
	if o.environ == nil {
		if o.dotenv != "" {
			if _, err := loader.NewDotEnvWithFS(o.fs, o.dotenv).Apply(); err != nil {
				return nil, err
			}
		}
		env = loader.NewEnvLoader(loader.DefaultEnvPrefix)
	} else {
		environ, err := o.mergeDotEnv()
		if err != nil {
			return nil, err
		}
		env = loader.NewEnvLoaderFrom(loader.DefaultEnvPrefix, environ)
	}
	env.Skip(EnvConfigPath)
	return env.Load()
}

// mergeDotEnv appends .env entries missing from the fixed environment.
func (o *loadOptions) mergeDotEnv() ([]string, error) {
	environ := append([]string(nil), o.environ...)
	if o.dotenv == "" {
		return environ, nil
	}
	values, err := loader.NewDotEnvWithFS(o.fs, o.dotenv).Read()
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(environ))
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		set[name] = true
	}
	for name, value := range values {
		if !set[name] {
			environ = append(environ, fmt.Sprintf("%s=%s", name, value))
		}
	}
	return environ, nil
}

// PathFromEnv returns $MOUSEMARK_CONFIG, or DefaultPath when unset.
func PathFromEnv() string {
	if p, ok := os.LookupEnv(EnvConfigPath); ok && p != "" {
		return p
	}
	return DefaultPath()
}
