// Package config handles configuration loading and merging for spectrace.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--level, --no-color, --ci, --theme, etc.)
//  2. Environment variables (SPECTRACE_LOG_LEVEL, LOG_LEVEL, NO_COLOR, CI, ...)
//  3. YAML config file (.spectrace.yaml in the working directory or
//     $XDG_CONFIG_HOME/spectrace/.spectrace.yaml)
//  4. Hardcoded defaults
//
// When a higher-priority source sets a value, it overrides any lower-priority values.
//
// # CI Mode Behavior
//
// CI mode (--ci, CI=true or ci: true) disables color so the trace reads
// cleanly in log files.
//
// # Environment Variables
//
//   - SPECTRACE_LOG_LEVEL or LOG_LEVEL: trace, debug, info, warn, error
//   - SPECTRACE_NO_COLOR: "true" or "1" disables colors; NO_COLOR disables
//     them when set to any non-empty value
//   - SPECTRACE_CI or CI: "true" or "1" enables CI mode
//   - SPECTRACE_THEME: default, orca, mono
//   - SPECTRACE_FORMAT: text, json, logfmt
//   - SPECTRACE_TIMESTAMPS: "true" or "1" prefixes records with a timestamp
package config
