package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/crystalmyth/n8n-bmad/internal/workflow"
)

// Parameters are scanned as compact JSON, so a key is followed by its closing
// quote before the colon.
var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)api[_-]?key"?\s*[=:]\s*['"][^'"]+['"]`),
	regexp.MustCompile(`(?i)password"?\s*[=:]\s*['"][^'"]+['"]`),
	regexp.MustCompile(`(?i)secret"?\s*[=:]\s*['"][^'"]+['"]`),
	regexp.MustCompile(`(?i)token"?\s*[=:]\s*['"][^'"]+['"]`),
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9_-]+`),
}

// credentialNodeTypes are matched by substring against the node type.
var credentialNodeTypes = []string{
	"httpRequest",
	"postgres",
	"mysql",
	"mongodb",
	"redis",
	"slack",
	"github",
}

// CheckCredentials flags parameters that look like inline secrets and nodes
// of credential-backed types with no credentials configured.
func CheckCredentials(wf *workflow.Workflow) []Issue {
	var issues []Issue

	for _, node := range wf.Nodes() {
		if params := node.Parameters(); workflow.Present(params) && looksSensitive(workflow.Compact(params)) {
			issues = append(issues, Issue{
				Level:    LevelError,
				Rule:     RuleHardcodedCredential,
				Message:  fmt.Sprintf(`Node "%s" may contain hardcoded credentials`, node.Label()),
				Location: fmt.Sprintf("nodes[%d].parameters", node.Index),
			})
		}

		if needsCredentials(node) {
			creds := node.Credentials()
			if !workflow.Present(creds) || workflow.KeyCount(creds) == 0 {
				issues = append(issues, Issue{
					Level:    LevelInfo,
					Rule:     RuleMissingCredentials,
					Message:  fmt.Sprintf(`Node "%s" may need credentials configured`, node.Label()),
					Location: fmt.Sprintf("nodes[%d]", node.Index),
				})
			}
		}
	}

	return issues
}

// looksSensitive stops at the first matching pattern.
func looksSensitive(params string) bool {
	params = strings.ToLower(params)
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(params) {
			return true
		}
	}
	return false
}

func needsCredentials(node workflow.Node) bool {
	t, ok := node.TypeString()
	if !ok {
		return false
	}
	for _, ct := range credentialNodeTypes {
		if strings.Contains(t, ct) {
			return true
		}
	}
	return false
}
