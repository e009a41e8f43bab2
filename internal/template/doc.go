// Package template manages the markdown template library: listing templates
// by category, reading a template with its {{variable}} placeholders,
// filling placeholders in, and full-text search across the library.
package template
