// Package config loads, normalizes, and validates reelist configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TMDB_TOKEN (including values sourced from a .env file). The Config type
// centralizes every knob the CLI needs, so the database location, lookup
// credentials, and output preferences are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
