// Package config loads, normalizes, and validates tubeprobe configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// OPENROUTER_API_KEY and YT_DLP_PATH. The Config type centralizes every knob
// the chat and video probes need so that downstream packages receive sanitized
// paths and clear validation errors.
//
// Always obtain settings through this package rather than reading environment
// variables directly.
package config
