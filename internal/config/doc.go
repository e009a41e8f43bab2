// Package config loads the framework's module configuration (by default
// ./src/core/module.yaml). Built-in defaults are deep-merged under the file so
// a project only needs to override what it changes, and values can be read by
// dotted path the way the rest of the CLI addresses them.
package config
