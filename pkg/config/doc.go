// Package config loads gamerepo configuration from embedded defaults, a
// TOML file, GAMEREPO_* environment variables and command line overrides.
//
// The result is an explicit value passed to whatever needs it. Nothing in
// this module reads configuration from process-wide state.
package config
