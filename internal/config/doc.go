// Package config loads and validates conversion settings from YAML files.
//
// Files are decoded strictly: unknown keys are errors. Keys missing from a
// file keep the values of DefaultConfig, so a file containing only
// "type: html" is a complete configuration.
package config
