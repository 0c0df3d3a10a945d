// Package config loads, normalizes, and validates kodisubs configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI needs: the Kodi video database location, the preferred language,
// inspector settings, scan mode defaults, and the watch socket address.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
