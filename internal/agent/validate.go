package agent

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/agent.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// ValidationResult is the outcome of checking one agent document.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Agent    *Agent   `json:"agent,omitempty"`
}

// SchemaIssue is a single schema violation in an agent document.
type SchemaIssue struct {
	Path    string // instance location such as "/menu/sections/0/commands/1/key"
	Message string
	Keyword string
}

func (i SchemaIssue) String() string {
	path := i.Path
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("%s: %s", path, i.Message)
}

// Validate reloads an agent, bypassing the cache, and checks it. Load
// failures, schema violations and missing identity fields are errors;
// missing description, empty expertise and a version that is not semantic
// are warnings. The agent is only returned when there are no errors.
func (l *Loader) Validate(id string) *ValidationResult {
	a, err := l.Reload(id)
	if err != nil {
		return &ValidationResult{Errors: []string{err.Error()}, Warnings: []string{}}
	}

	result := &ValidationResult{Errors: []string{}, Warnings: []string{}}

	if a.ID == "" {
		result.Errors = append(result.Errors, "Missing agent.id")
	}
	if a.Name == "" {
		result.Errors = append(result.Errors, "Missing agent.name")
	}
	if a.Role == "" {
		result.Errors = append(result.Errors, "Missing agent.role")
	}

	issues, err := ValidateSchema(a.Raw)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
	}
	for _, issue := range issues {
		result.Errors = append(result.Errors, "Schema "+issue.String())
	}

	if a.Description == "" {
		result.Warnings = append(result.Warnings, "Missing identity.description")
	}
	if len(a.Expertise) == 0 {
		result.Warnings = append(result.Warnings, "No expertise defined")
	}
	if _, err := semver.NewVersion(a.Version); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Version %q is not a semantic version", a.Version))
	}

	result.Valid = len(result.Errors) == 0
	if result.Valid {
		result.Agent = a
	}
	return result
}

// getSchema compiles the embedded agent schema once.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("agent.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("agent.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// ValidateSchema checks a decoded agent document against the embedded JSON
// schema. The error return is for schema or conversion failures only.
func ValidateSchema(raw map[string]any) ([]SchemaIssue, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	data, err := json.Marshal(jsonCompatible(raw))
	if err != nil {
		return nil, fmt.Errorf("converting agent to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("preparing agent for validation: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil, nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	var issues []SchemaIssue
	collectSchemaIssues(ve, &issues)
	if len(issues) == 0 {
		return []SchemaIssue{{Message: ve.Error()}}, nil
	}
	return dedupe(issues), nil
}

// collectSchemaIssues walks the error tree and keeps the leaves.
func collectSchemaIssues(ve *jsonschema.ValidationError, issues *[]SchemaIssue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectSchemaIssues(cause, issues)
		}
		return
	}
	if ve.ErrorKind == nil {
		return
	}

	keyword := ""
	if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
		keyword = kw[len(kw)-1]
	}
	if keyword == "" || keyword == "$ref" || keyword == "allOf" {
		return
	}

	path := ""
	if len(ve.InstanceLocation) > 0 {
		path = "/" + strings.Join(ve.InstanceLocation, "/")
	}

	*issues = append(*issues, SchemaIssue{
		Path:    path,
		Message: ve.ErrorKind.LocalizedString(printer),
		Keyword: keyword,
	})
}

func dedupe(issues []SchemaIssue) []SchemaIssue {
	seen := make(map[string]bool)
	var result []SchemaIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Path < result[j].Path })
	return result
}

// jsonCompatible converts YAML-decoded values into types encoding/json
// accepts, turning non-string map keys into strings.
func jsonCompatible(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = jsonCompatible(item)
		}
		return m
	case map[any]any:
		return jsonCompatible(asMap(val))
	case []any:
		a := make([]any, len(val))
		for i, item := range val {
			a[i] = jsonCompatible(item)
		}
		return a
	default:
		return val
	}
}
