package validate

import (
	"fmt"
	"strings"

	"github.com/crystalmyth/n8n-bmad/internal/workflow"
	"github.com/tidwall/gjson"
)

var requiredFields = []string{"name", "nodes", "connections"}

// triggerTypes are trigger nodes whose type does not mention "trigger".
var triggerTypes = []string{
	"n8n-nodes-base.webhook",
	"n8n-nodes-base.manualTrigger",
}

// CheckStructure validates required fields, node shape, node name uniqueness,
// connection endpoints and the presence of a trigger node.
func CheckStructure(wf *workflow.Workflow) []Issue {
	var issues []Issue

	for _, field := range requiredFields {
		if !workflow.Present(wf.Field(field)) {
			issues = append(issues, Issue{
				Level:    LevelError,
				Rule:     RuleRequiredField,
				Message:  "Missing required field: " + field,
				Location: "root",
			})
		}
	}

	nodesField := wf.Field("nodes")
	if workflow.Present(nodesField) {
		if !nodesField.IsArray() {
			issues = append(issues, Issue{
				Level:    LevelError,
				Rule:     RuleNodesArray,
				Message:  "Nodes must be an array",
				Location: "nodes",
			})
		} else {
			issues = append(issues, checkNodes(wf.Nodes())...)
		}
	}

	if conns := wf.Field("connections"); workflow.Present(conns) {
		issues = append(issues, checkConnections(wf)...)
	}

	if nodesField.IsArray() && !hasTrigger(wf.Nodes()) {
		issues = append(issues, Issue{
			Level:    LevelWarning,
			Rule:     RuleNoTrigger,
			Message:  "Workflow has no trigger node",
			Location: "nodes",
		})
	}

	return issues
}

func checkNodes(nodes []workflow.Node) []Issue {
	var issues []Issue

	for _, node := range nodes {
		loc := fmt.Sprintf("nodes[%d]", node.Index)

		if !workflow.Present(node.Type()) {
			issues = append(issues, Issue{
				Level:    LevelError,
				Rule:     RuleNodeType,
				Message:  fmt.Sprintf("Node at index %d missing type", node.Index),
				Location: loc,
			})
		}

		if !workflow.Present(node.Name()) {
			issues = append(issues, Issue{
				Level:    LevelError,
				Rule:     RuleNodeName,
				Message:  fmt.Sprintf("Node at index %d missing name", node.Index),
				Location: loc,
			})
		}

		if !workflow.Present(node.Position()) {
			label := fmt.Sprint(node.Index)
			if workflow.Present(node.Name()) {
				label = node.Name().String()
			}
			issues = append(issues, Issue{
				Level:    LevelWarning,
				Rule:     RuleNodePosition,
				Message:  fmt.Sprintf(`Node "%s" missing position`, label),
				Location: loc,
			})
		}

		// Every node sharing a name is reported, so a pair yields two issues.
		for _, other := range nodes {
			if other.Index != node.Index && workflow.StrictEqual(other.Name(), node.Name()) {
				issues = append(issues, Issue{
					Level:    LevelError,
					Rule:     RuleDuplicateNodeName,
					Message:  fmt.Sprintf(`Duplicate node name: "%s"`, node.Label()),
					Location: loc,
				})
				break
			}
		}
	}

	return issues
}

func checkConnections(wf *workflow.Workflow) []Issue {
	var issues []Issue

	wf.Connections(func(source string, outputs gjson.Result) {
		if !wf.HasNodeNamed(stringValue(source)) {
			issues = append(issues, Issue{
				Level:    LevelError,
				Rule:     RuleConnectionSource,
				Message:  fmt.Sprintf(`Connection references non-existent node: "%s"`, source),
				Location: "connections." + source,
			})
		}

		main := workflow.Member(outputs, "main")
		if !workflow.Present(main) || !main.IsArray() {
			return
		}
		for outputIndex, list := range main.Array() {
			if !list.IsArray() {
				continue
			}
			for connIndex, conn := range list.Array() {
				target := workflow.Member(conn, "node")
				if !workflow.Present(target) {
					continue
				}
				if !wf.HasNodeNamed(target) {
					issues = append(issues, Issue{
						Level:    LevelError,
						Rule:     RuleConnectionTarget,
						Message:  fmt.Sprintf(`Connection from "%s" targets non-existent node: "%s"`, source, target.String()),
						Location: fmt.Sprintf("connections.%s.main[%d][%d]", source, outputIndex, connIndex),
					})
				}
			}
		}
	})

	return issues
}

func hasTrigger(nodes []workflow.Node) bool {
	for _, node := range nodes {
		t, ok := node.TypeString()
		if !ok {
			continue
		}
		if strings.Contains(t, "trigger") || strings.Contains(t, "Trigger") {
			return true
		}
		for _, tt := range triggerTypes {
			if t == tt {
				return true
			}
		}
	}
	return false
}

// stringValue wraps a Go string as a JSON string value for strict comparison.
func stringValue(s string) gjson.Result {
	return gjson.Result{Type: gjson.String, Str: s, Raw: fmt.Sprintf("%q", s)}
}
