package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/crystalmyth/n8n-bmad/internal/workflow"
	"github.com/tidwall/gjson"
)

var (
	expressionPattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)
	nodeRefPattern    = regexp.MustCompile(`\$\(['"]([^'"]+)['"]\)`)
)

// CheckExpressions scans every string inside each node's parameters for
// {{ ... }} expressions that reference unknown nodes or dereference without
// null-safe operators.
func CheckExpressions(wf *workflow.Workflow) []Issue {
	var issues []Issue

	for _, node := range wf.Nodes() {
		params := node.Parameters()
		if !workflow.Present(params) {
			continue
		}
		walkStrings(params, "parameters", func(value, path string) {
			issues = append(issues, checkExpressionString(wf, value, fmt.Sprintf("nodes[%d].%s", node.Index, path))...)
		})
	}

	return issues
}

func checkExpressionString(wf *workflow.Workflow, value, location string) []Issue {
	var issues []Issue

	for _, match := range expressionPattern.FindAllStringSubmatch(value, -1) {
		expr := match[1]

		if ref := nodeRefPattern.FindStringSubmatch(expr); ref != nil {
			if !wf.HasNodeNamed(stringValue(ref[1])) {
				issues = append(issues, Issue{
					Level:      LevelError,
					Rule:       RuleExpressionNodeRef,
					Message:    fmt.Sprintf(`Expression references non-existent node: "%s"`, ref[1]),
					Location:   location,
					Expression: match[0],
				})
			}
		}

		if strings.Contains(expr, ".") && !strings.Contains(expr, "??") && !strings.Contains(expr, "?.") {
			issues = append(issues, Issue{
				Level:      LevelInfo,
				Rule:       RuleExpressionNullSafe,
				Message:    "Expression may need null-safe access (?. or ??)",
				Location:   location,
				Expression: match[0],
			})
		}
	}

	return issues
}

// walkStrings calls fn for every string reachable from v, depth first, with
// its path: object members as ".key", array elements as "[i]".
func walkStrings(v gjson.Result, path string, fn func(value, path string)) {
	switch {
	case v.Type == gjson.String:
		fn(v.Str, path)
	case v.IsArray():
		for i, item := range v.Array() {
			walkStrings(item, fmt.Sprintf("%s[%d]", path, i), fn)
		}
	case v.IsObject():
		v.ForEach(func(key, value gjson.Result) bool {
			walkStrings(value, path+"."+key.Str, fn)
			return true
		})
	}
}
