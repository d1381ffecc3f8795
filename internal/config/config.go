package config

import (
	"errors"
	"fmt"
	"image/color"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dshills/mousemark/internal/input/key"
	"github.com/dshills/mousemark/internal/mark"
	"github.com/dshills/mousemark/internal/renderer/backend"
)

// EnvConfigPath names the environment variable holding the config file path.
const EnvConfigPath = "MOUSEMARK_CONFIG"

// LogLevels lists the accepted log.level values.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Config is a validated configuration snapshot. Treat it as read-only;
// reloads produce a new Config.
type Config struct {
	Mark      MarkConfig
	Freedraw  ModifierConfig
	Arrowdraw ModifierConfig
	Shortcuts ShortcutsConfig
	Log       LogConfig

	path      string
	color     color.RGBA
	clearAll  key.Combo
	clearLast key.Combo
	warnings  []string
}

// MarkConfig holds drawing settings.
type MarkConfig struct {
	// LineWidth is the stroke width in logical pixels.
	LineWidth int

	// Color is a hex or CSS keyword color.
	Color string

	// TouchDrawEnabled lets touch input draw.
	TouchDrawEnabled bool
}

// ModifierConfig is the exact modifier set that selects a drawing mode.
type ModifierConfig struct {
	Shift   bool
	Alt     bool
	Control bool
	Meta    bool
}

// Modifiers converts the set to a key.Modifier mask.
func (m ModifierConfig) Modifiers() key.Modifier {
	return key.FromFlags(m.Shift, m.Alt, m.Control, m.Meta)
}

// ShortcutsConfig holds the action key combos. Empty means unbound.
type ShortcutsConfig struct {
	ClearAll  string
	ClearLast string
}

// LogConfig controls the application logger.
type LogConfig struct {
	Level string
	File  string
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	c := &Config{
		Mark: MarkConfig{
			LineWidth:        3,
			Color:            "#ff0000",
			TouchDrawEnabled: true,
		},
		Freedraw:  ModifierConfig{Shift: true, Meta: true},
		Arrowdraw: ModifierConfig{Control: true, Meta: true},
		Shortcuts: ShortcutsConfig{
			ClearAll:  "Shift+Meta+F11",
			ClearLast: "Shift+Meta+F12",
		},
		Log: LogConfig{Level: "info"},
	}
	if err := c.Validate(); err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return c
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mousemark", "config.toml")
}

// Validate checks every setting and caches the parsed color and shortcuts.
// Warnings are recomputed as a side effect.
func (c *Config) Validate() error {
	var errs []error

	if c.Mark.LineWidth < 1 {
		errs = append(errs, &ValidationError{
			Path:    "mark.lineWidth",
			Message: "must be at least 1",
			Value:   c.Mark.LineWidth,
			Code:    ErrCodeOutOfRange,
		})
	}

	if rgba, err := ParseColor(c.Mark.Color); err != nil {
		errs = append(errs, &ValidationError{
			Path:    "mark.color",
			Message: err.Error(),
			Value:   c.Mark.Color,
			Code:    ErrCodePatternMismatch,
		})
	} else {
		c.color = rgba
	}

	for _, sc := range []struct {
		path string
		text string
		dst  *key.Combo
	}{
		{"shortcuts.clearAll", c.Shortcuts.ClearAll, &c.clearAll},
		{"shortcuts.clearLast", c.Shortcuts.ClearLast, &c.clearLast},
	} {
		if strings.TrimSpace(sc.text) == "" {
			*sc.dst = key.Combo{}
			continue
		}
		combo, err := key.ParseCombo(sc.text)
		if err != nil {
			errs = append(errs, &ValidationError{
				Path:    sc.path,
				Message: err.Error(),
				Value:   sc.text,
				Code:    ErrCodePatternMismatch,
			})
			continue
		}
		*sc.dst = combo
	}

	if !slices.Contains(LogLevels, strings.ToLower(c.Log.Level)) {
		errs = append(errs, &ValidationError{
			Path:    "log.level",
			Message: "must be one of " + strings.Join(LogLevels, ", "),
			Value:   c.Log.Level,
			Code:    ErrCodeInvalidEnum,
		})
	}

	c.warnings = c.lint()
	return errors.Join(errs...)
}

// lint reports settings that are valid but probably unintended.
func (c *Config) lint() []string {
	var warnings []string
	free, arrow := c.Freedraw.Modifiers(), c.Arrowdraw.Modifiers()
	if free.IsEmpty() {
		warnings = append(warnings, "freedraw has no modifiers: plain pointer motion will draw")
	}
	if arrow.IsEmpty() {
		warnings = append(warnings, "arrowdraw has no modifiers: plain pointer motion will draw arrows")
	}
	if free == arrow {
		warnings = append(warnings, fmt.Sprintf("freedraw and arrowdraw are both %s: arrows cannot be drawn", free))
	}
	if !c.clearAll.IsZero() && c.clearAll == c.clearLast {
		warnings = append(warnings, fmt.Sprintf("clearAll and clearLast share %s: clearLast is unreachable", c.clearAll))
	}
	return warnings
}

// Warnings returns non-fatal problems found by the last Validate.
func (c *Config) Warnings() []string {
	return slices.Clone(c.warnings)
}

// Path returns the file the config was loaded from, if any.
func (c *Config) Path() string {
	return c.path
}

// Color returns the parsed, opaque mark color.
func (c *Config) Color() color.RGBA {
	return c.color
}

// ClearAll returns the clear-all shortcut. Zero means unbound.
func (c *Config) ClearAll() key.Combo {
	return c.clearAll
}

// ClearLast returns the clear-last shortcut. Zero means unbound.
func (c *Config) ClearLast() key.Combo {
	return c.clearLast
}

// MarkSettings returns the tracker settings.
func (c *Config) MarkSettings() mark.Settings {
	return mark.Settings{
		LineWidth: c.Mark.LineWidth,
		Classifier: mark.Classifier{
			Freehand: c.Freedraw.Modifiers(),
			Arrow:    c.Arrowdraw.Modifiers(),
		},
		TouchDrawEnabled: c.Mark.TouchDrawEnabled,
	}
}

// Style returns the render style for the given device scale.
func (c *Config) Style(scale float64) backend.Style {
	return backend.Style{
		Color: c.color,
		Width: float64(c.Mark.LineWidth),
		Scale: scale,
	}
}

// toMap renders the settings as a layer map.
func (c *Config) toMap() map[string]any {
	mods := func(m ModifierConfig) map[string]any {
		return map[string]any{"shift": m.Shift, "alt": m.Alt, "control": m.Control, "meta": m.Meta}
	}
	return map[string]any{
		"mark": map[string]any{
			"lineWidth":        int64(c.Mark.LineWidth),
			"color":            c.Mark.Color,
			"touchDrawEnabled": c.Mark.TouchDrawEnabled,
		},
		"freedraw":  mods(c.Freedraw),
		"arrowdraw": mods(c.Arrowdraw),
		"shortcuts": map[string]any{
			"clearAll":  c.Shortcuts.ClearAll,
			"clearLast": c.Shortcuts.ClearLast,
		},
		"log": map[string]any{
			"level": c.Log.Level,
			"file":  c.Log.File,
		},
	}
}

// setting binds a dotted path to a Config field.
type setting struct {
	path  string
	apply func(c *Config, v any) error
}

func intSetting(path string, dst func(*Config) *int) setting {
	return setting{path, func(c *Config, v any) error {
		switch n := v.(type) {
		case int:
			*dst(c) = n
		case int64:
			*dst(c) = int(n)
		case uint64:
			*dst(c) = int(n)
		case float64:
			if n != float64(int(n)) {
				return typeMismatch(path, "integer", v)
			}
			*dst(c) = int(n)
		default:
			return typeMismatch(path, "integer", v)
		}
		return nil
	}}
}

func boolSetting(path string, dst func(*Config) *bool) setting {
	return setting{path, func(c *Config, v any) error {
		b, ok := v.(bool)
		if !ok {
			return typeMismatch(path, "bool", v)
		}
		*dst(c) = b
		return nil
	}}
}

func stringSetting(path string, dst func(*Config) *string) setting {
	return setting{path, func(c *Config, v any) error {
		switch s := v.(type) {
		case string:
			*dst(c) = s
		case int64:
			*dst(c) = fmt.Sprint(s)
		default:
			return typeMismatch(path, "string", v)
		}
		return nil
	}}
}

func modifierSettings(section string, dst func(*Config) *ModifierConfig) []setting {
	return []setting{
		boolSetting(section+".shift", func(c *Config) *bool { return &dst(c).Shift }),
		boolSetting(section+".alt", func(c *Config) *bool { return &dst(c).Alt }),
		boolSetting(section+".control", func(c *Config) *bool { return &dst(c).Control }),
		boolSetting(section+".meta", func(c *Config) *bool { return &dst(c).Meta }),
	}
}

var settings = slices.Concat(
	[]setting{
		intSetting("mark.lineWidth", func(c *Config) *int { return &c.Mark.LineWidth }),
		stringSetting("mark.color", func(c *Config) *string { return &c.Mark.Color }),
		boolSetting("mark.touchDrawEnabled", func(c *Config) *bool { return &c.Mark.TouchDrawEnabled }),
		stringSetting("shortcuts.clearAll", func(c *Config) *string { return &c.Shortcuts.ClearAll }),
		stringSetting("shortcuts.clearLast", func(c *Config) *string { return &c.Shortcuts.ClearLast }),
		stringSetting("log.level", func(c *Config) *string { return &c.Log.Level }),
		stringSetting("log.file", func(c *Config) *string { return &c.Log.File }),
	},
	modifierSettings("freedraw", func(c *Config) *ModifierConfig { return &c.Freedraw }),
	modifierSettings("arrowdraw", func(c *Config) *ModifierConfig { return &c.Arrowdraw }),
)

// decode builds a Config from a merged layer map. Unknown keys are
// returned as warnings.
func decode(data map[string]any) (*Config, []string, error) {
	c := &Config{}
	known := make(map[string]bool, len(settings))
	var errs []error

	for _, s := range settings {
		known[s.path] = true
		v, ok := lookup(data, s.path)
		if !ok {
			continue
		}
		if err := s.apply(c, v); err != nil {
			errs = append(errs, err)
		}
	}

	var unknown []string
	for _, section := range slices.Sorted(maps.Keys(data)) {
		values, ok := data[section].(map[string]any)
		if !ok {
			unknown = append(unknown, fmt.Sprintf("unknown setting %q ignored", section))
			continue
		}
		for _, name := range slices.Sorted(maps.Keys(values)) {
			if path := section + "." + name; !known[path] {
				unknown = append(unknown, fmt.Sprintf("unknown setting %q ignored", path))
			}
		}
	}

	return c, unknown, errors.Join(errs...)
}

func lookup(data map[string]any, path string) (any, bool) {
	section, name, _ := strings.Cut(path, ".")
	values, ok := data[section].(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := values[name]
	return v, ok
}
