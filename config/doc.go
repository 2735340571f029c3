// Package config loads process configuration from environment
// variables into one struct with defaults for anything unset, and
// provides DefinitionWatcher, which watches a directory with fsnotify
// and reports changed files to a callback. No binary in this module
// starts a DefinitionWatcher.
package config
