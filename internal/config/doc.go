// Package config loads delegator settings.
//
// Settings come from three layers, later layers winning:
//
//  1. Built-in defaults (Default).
//  2. A configuration file, TOML or YAML depending on its extension.
//  3. DELEGATOR_* environment variables.
//
// Example delegator.toml:
//
//	container = "app"
//	events = ["click", "focus", "blur"]
//	default_events = false
//	script = "listeners.lua"
//
//	[log]
//	level = "debug"
//	format = "console"
//
//	[terminal]
//	double_click_ms = 400
//	double_click_distance = 2
package config
