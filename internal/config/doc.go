// Package config loads and validates the run configuration.
//
// Configuration is a YAML file with ${VAR} environment substitution, so
// secrets like the database password can stay out of the file itself.
// Precedence is file < environment; there is no interactive prompting,
// silent automation receives every decision through the config.
package config
