// Package config loads, normalizes, and validates spiritlog configuration data.
//
// It supplies repository defaults that reproduce the historical behaviour
// (one BGG user, the Spirit Island game id, catalogs under public/), expands
// user paths including tilde shortcuts, and reads TOML files. The Config type
// centralizes every knob the CLI needs so the fetcher, parser and synthetic
// generator receive sanitized values and clear validation errors.
package config
