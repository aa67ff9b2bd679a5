// Package config loads, normalizes, and validates reelfx configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the REELFX_DATA_DIR environment
// fallback. Engine limits start from a named profile (basic, pro, dev) and
// individual fields may be overridden.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
