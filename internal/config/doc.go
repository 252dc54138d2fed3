// Package config loads and validates murmur configuration from TOML.
//
// Configuration resolution order: an explicit --config path, then
// ~/.config/murmur/config.toml, then ./murmur.toml in the working
// directory. Missing files fall back to repository defaults so the daemon
// can run without any configuration at all.
//
// All path fields are tilde-expanded and normalized during Load; callers
// never see unexpanded paths.
package config
