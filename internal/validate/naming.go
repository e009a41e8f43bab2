package validate

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/crystalmyth/n8n-bmad/internal/config"
	"github.com/crystalmyth/n8n-bmad/internal/workflow"
	"github.com/tidwall/gjson"
)

const (
	fallbackWorkflowPrefix   = "wf_"
	fallbackCredentialPrefix = "cred_"
)

var (
	snakeCasePattern     = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	numberedGenericName  = regexp.MustCompile(`^(Set|Code|HTTP Request|If|Switch|Function)\d+$`)
	whitespacePattern    = regexp.MustCompile(`\s+`)
	nonSnakeCharsPattern = regexp.MustCompile(`[^a-z0-9_]`)

	genericNodeNames = []string{"Set", "Code", "HTTP Request", "If", "Switch", "Function"}
)

// Kinds of names accepted by CheckName.
const (
	KindWorkflow   = "workflow"
	KindCredential = "credential"
	KindNode       = "node"
)

// CheckNaming applies the workflow naming conventions to the workflow name
// and flags generic node names.
func CheckNaming(wf *workflow.Workflow, conv config.NamingConvention) []Issue {
	var issues []Issue

	if name, ok := wf.Name(); ok && name != "" {
		prefix := conv.WorkflowPrefix

		if prefix != "" && !strings.HasPrefix(name, prefix) {
			issues = append(issues, Issue{
				Level:      LevelWarning,
				Rule:       RuleWorkflowPrefix,
				Message:    fmt.Sprintf(`Workflow name should start with "%s"`, prefix),
				Location:   "name",
				Current:    name,
				Suggestion: prefix + name,
			})
		}

		if conv.UseSnakeCase && !isSnakeCase(stripPrefix(name, prefix)) {
			issues = append(issues, Issue{
				Level:    LevelWarning,
				Rule:     RuleWorkflowSnakeCase,
				Message:  "Workflow name should use snake_case",
				Location: "name",
				Current:  name,
			})
		}
	}

	for _, node := range wf.Nodes() {
		name := node.Name()
		if name.Type != gjson.String || name.Str == "" {
			continue
		}
		issues = append(issues, checkNodeName(name.Str, fmt.Sprintf("nodes[%d].name", node.Index))...)
	}

	return issues
}

func checkNodeName(name, location string) []Issue {
	var issues []Issue

	if slices.Contains(genericNodeNames, name) {
		issues = append(issues, Issue{
			Level:    LevelInfo,
			Rule:     RuleGenericNodeName,
			Message:  fmt.Sprintf(`Node "%s" has a generic name - consider making it more descriptive`, name),
			Location: location,
		})
	}

	if numberedGenericName.MatchString(name) {
		issues = append(issues, Issue{
			Level:    LevelWarning,
			Rule:     RuleNumberedNodeName,
			Message:  fmt.Sprintf(`Node "%s" should have a descriptive name`, name),
			Location: location,
		})
	}

	return issues
}

// stripPrefix removes the first occurrence of prefix anywhere in name. The
// match is deliberately not anchored, so "my_wf_x" with prefix "wf_" becomes
// "my_x".
func stripPrefix(name, prefix string) string {
	return strings.Replace(name, prefix, "", 1)
}

// isSnakeCase treats an empty remainder as conforming.
func isSnakeCase(s string) bool {
	return s == "" || snakeCasePattern.MatchString(s)
}

// NameIssue is a naming convention finding for a standalone name.
type NameIssue struct {
	Rule       string `json:"rule"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// CheckName checks a single workflow, credential or node name against the
// conventions. Unlike CheckNaming an empty prefix falls back to the built-in
// one, since a name checked on its own has no document to anchor it.
func CheckName(name, kind string, conv config.NamingConvention) []NameIssue {
	var issues []NameIssue

	switch kind {
	case KindWorkflow:
		prefix := WorkflowPrefix(conv)
		if issue, ok := checkPrefix(name, prefix); ok {
			issues = append(issues, issue)
		}
		if rest := stripPrefix(name, prefix); conv.UseSnakeCase && !isSnakeCase(rest) {
			issues = append(issues, NameIssue{
				Rule:       "snake_case",
				Message:    "Should use snake_case format",
				Suggestion: toSnakeCase(rest),
			})
		}
	case KindCredential:
		if issue, ok := checkPrefix(name, CredentialPrefix(conv)); ok {
			issues = append(issues, issue)
		}
	case KindNode:
		for _, issue := range checkNodeName(name, "") {
			issues = append(issues, NameIssue{Rule: issue.Rule, Message: issue.Message})
		}
	}

	return issues
}

// WorkflowPrefix returns the configured workflow prefix or "wf_".
func WorkflowPrefix(conv config.NamingConvention) string {
	if conv.WorkflowPrefix != "" {
		return conv.WorkflowPrefix
	}
	return fallbackWorkflowPrefix
}

// CredentialPrefix returns the configured credential prefix or "cred_".
func CredentialPrefix(conv config.NamingConvention) string {
	if conv.CredentialPrefix != "" {
		return conv.CredentialPrefix
	}
	return fallbackCredentialPrefix
}

func checkPrefix(name, prefix string) (NameIssue, bool) {
	if strings.HasPrefix(name, prefix) {
		return NameIssue{}, false
	}
	return NameIssue{
		Rule:       "prefix",
		Message:    fmt.Sprintf(`Should start with "%s"`, prefix),
		Suggestion: prefix + name,
	}, true
}

func toSnakeCase(s string) string {
	s = whitespacePattern.ReplaceAllString(strings.ToLower(s), "_")
	return nonSnakeCharsPattern.ReplaceAllString(s, "")
}
