// Package cli defines the Cobra command tree for the n8n-bmad CLI. Each file
// in this package registers one top-level command (agent, validate,
// template, config, version) with the root command. Command implementations
// delegate to internal packages for business logic and only handle flag
// parsing and output formatting.
package cli
