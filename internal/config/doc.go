// Package config provides the configuration system for mousemark.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Environment Variables   │  ← MOUSEMARK_<SECTION>_<KEY>
//	├─────────────────────────────┤
//	│  3. .env File               │  ← never overrides set variables
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ~/.config/mousemark/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// The config file may be TOML or YAML, selected by extension:
//
//	[mark]
//	lineWidth = 3
//	color = "#ff0000"
//	touchDrawEnabled = true
//
//	[freedraw]
//	shift = true
//	meta = true
//
//	[arrowdraw]
//	control = true
//	meta = true
//
//	[shortcuts]
//	clearAll = "Shift+Meta+F11"
//	clearLast = "Shift+Meta+F12"
//
// Load returns a validated *Config. Problems that make a value unusable
// are returned as *ValidationError (joined when there are several).
// Suspicious but usable settings, such as identical freehand and arrow
// modifier sets, are reported by Config.Warnings.
//
// # Sub-packages
//
//   - loader: TOML, YAML, .env and environment variable sources
//   - watcher: fsnotify based live reload
package config
