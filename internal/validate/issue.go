package validate

// Level is the severity of an issue.
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// Rule identifiers emitted by the checkers.
const (
	RuleRequiredField       = "required-field"
	RuleNodesArray          = "nodes-array"
	RuleNodeType            = "node-type"
	RuleNodeName            = "node-name"
	RuleNodePosition        = "node-position"
	RuleDuplicateNodeName   = "duplicate-node-name"
	RuleConnectionSource    = "connection-source"
	RuleConnectionTarget    = "connection-target"
	RuleNoTrigger           = "no-trigger"
	RuleExpressionNodeRef   = "expression-node-ref"
	RuleExpressionNullSafe  = "expression-null-safety"
	RuleWorkflowPrefix      = "workflow-prefix"
	RuleWorkflowSnakeCase   = "workflow-snake-case"
	RuleGenericNodeName     = "generic-node-name"
	RuleNumberedNodeName    = "numbered-node-name"
	RuleHardcodedCredential = "hardcoded-credential"
	RuleMissingCredentials  = "missing-credentials"
)

// Issue is one finding about a workflow document. Location is a path into the
// document such as "nodes[2].parameters.url".
type Issue struct {
	Level      Level  `json:"level"`
	Rule       string `json:"rule"`
	Message    string `json:"message"`
	Location   string `json:"location"`
	Suggestion string `json:"suggestion,omitempty"`
	Expression string `json:"expression,omitempty"`
	Current    string `json:"current,omitempty"`
}
