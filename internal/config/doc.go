// Package config loads, validates, and normalizes StarSound configuration
// from TOML files with sensible defaults for every setting.
package config
