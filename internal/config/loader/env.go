package loader

import (
	"os"
	"strconv"
	"strings"
)

// DefaultEnvPrefix is the prefix of recognized environment variables.
const DefaultEnvPrefix = "MOUSEMARK_"

// EnvLoader loads configuration from environment variables.
//
// MOUSEMARK_MARK_LINE_WIDTH maps to mark.lineWidth: the first word names
// the section and the rest form a camelCase key.
type EnvLoader struct {
	prefix  string
	environ func() []string
	skip    map[string]bool
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{prefix: prefix, environ: os.Environ, skip: make(map[string]bool)}
}

// NewEnvLoaderFrom creates a loader reading from a fixed KEY=VALUE list.
func NewEnvLoaderFrom(prefix string, environ []string) *EnvLoader {
	l := NewEnvLoader(prefix)
	l.environ = func() []string { return environ }
	return l
}

// Skip excludes a variable from the result. Used for variables that are
// consumed elsewhere, like the config file path.
func (l *EnvLoader) Skip(name string) {
	l.skip[name] = true
}

// Load reads the prefixed variables and returns a configuration map.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) || l.skip[name] {
			continue
		}
		path := l.envToPath(name)
		if path == "" {
			continue
		}
		Set(config, path, parseValue(value))
	}
	return config, nil
}

// envToPath converts MOUSEMARK_SHORTCUTS_CLEAR_ALL to shortcuts.clearAll.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.TrimPrefix(env, l.prefix)
	parts := strings.Split(name, "_")
	if len(parts) < 2 || parts[0] == "" {
		return ""
	}

	var key strings.Builder
	key.WriteString(strings.ToLower(parts[1]))
	for _, part := range parts[2:] {
		if part == "" {
			continue
		}
		key.WriteString(strings.ToUpper(part[:1]))
		key.WriteString(strings.ToLower(part[1:]))
	}
	return strings.ToLower(parts[0]) + "." + key.String()
}

// parseValue converts a variable value to bool, int64, float64 or string.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}
