// Package validate is the workflow rule engine. Four independent checkers
// (structure, expressions, naming, credentials) each read a raw workflow
// document and emit issues; Run concatenates them in that fixed order and
// Summarize turns the list into a pass/fail report.
//
// The checks are textual heuristics over the document, not an evaluation of
// n8n expressions, so a false positive here is a rule to tune rather than a
// parser to write.
package validate
