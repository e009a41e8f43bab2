// Package workflow holds n8n workflow documents in their raw JSON shape.
// Workflows are authored outside the framework, so nothing is defaulted or
// coerced: callers see exactly what the file contains, in document order.
package workflow
