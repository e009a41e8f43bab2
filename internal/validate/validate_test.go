package validate

import (
	"testing"

	"github.com/crystalmyth/n8n-bmad/internal/config"
	"github.com/crystalmyth/n8n-bmad/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultConventions = config.NamingConvention{
	WorkflowPrefix:       "wf_",
	CredentialPrefix:     "cred_",
	EnvironmentSeparator: "_",
	UseSnakeCase:         true,
}

func parse(t *testing.T, doc string) *workflow.Workflow {
	t.Helper()
	wf, err := workflow.Parse([]byte(doc))
	require.NoError(t, err)
	return wf
}

func rules(issues []Issue) []string {
	out := []string{}
	for _, issue := range issues {
		out = append(out, issue.Rule)
	}
	return out
}

func locations(issues []Issue) []string {
	out := []string{}
	for _, issue := range issues {
		out = append(out, issue.Location)
	}
	return out
}

func TestCheckStructure_RequiredFields(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{"empty document", `{}`, []string{"Missing required field: name", "Missing required field: nodes", "Missing required field: connections"}},
		{"falsy values count as missing", `{"name":"","nodes":0,"connections":false}`, []string{"Missing required field: name", "Missing required field: nodes", "Missing required field: connections"}},
		{"null connections", `{"name":"wf_a","nodes":[{"name":"T","type":"webhookTrigger","position":[0,0]}],"connections":null}`, []string{"Missing required field: connections"}},
		{"empty containers are present", `{"name":"wf_a","nodes":[{"name":"T","type":"webhookTrigger","position":[0,0]}],"connections":{}}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, issue := range CheckStructure(parse(t, tt.doc)) {
				if issue.Rule == RuleRequiredField {
					assert.Equal(t, LevelError, issue.Level)
					assert.Equal(t, "root", issue.Location)
					got = append(got, issue.Message)
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckStructure_NodesMustBeArray(t *testing.T) {
	issues := CheckStructure(parse(t, `{"name":"wf_a","nodes":{"name":"A"},"connections":{}}`))
	assert.Equal(t, []string{RuleNodesArray}, rules(issues))
	assert.Equal(t, "nodes", issues[0].Location)
}

func TestCheckStructure_EmptyNodesHasNoTrigger(t *testing.T) {
	issues := CheckStructure(parse(t, `{"name":"wf_a","nodes":[],"connections":{}}`))
	require.Len(t, issues, 1)
	assert.Equal(t, Issue{
		Level:    LevelWarning,
		Rule:     RuleNoTrigger,
		Message:  "Workflow has no trigger node",
		Location: "nodes",
	}, issues[0])
}

func TestCheckStructure_NodeFields(t *testing.T) {
	issues := CheckStructure(parse(t, `{
		"name": "wf_a",
		"nodes": [
			{"name": "Start", "type": "n8n-nodes-base.manualTrigger", "position": [0, 0]},
			{"type": "n8n-nodes-base.set"},
			{"name": "Lonely", "position": [1, 1]}
		],
		"connections": {}
	}`))

	assert.Equal(t, []string{RuleNodeName, RuleNodePosition, RuleNodeType}, rules(issues))
	assert.Equal(t, []string{"nodes[1]", "nodes[1]", "nodes[2]"}, locations(issues))
	assert.Equal(t, `Node "1" missing position`, issues[1].Message)
	assert.Equal(t, "Node at index 2 missing type", issues[2].Message)
}

func TestCheckStructure_DuplicateNamesArePairwise(t *testing.T) {
	issues := CheckStructure(parse(t, `{
		"name": "wf_a",
		"nodes": [
			{"name": "A", "type": "x", "position": [0, 0]},
			{"name": "B", "type": "manualTrigger", "position": [0, 0]},
			{"name": "A", "type": "x", "position": [0, 0]},
			{"name": "A", "type": "x", "position": [0, 0]}
		],
		"connections": {}
	}`))

	require.Len(t, issues, 3)
	for _, issue := range issues {
		assert.Equal(t, RuleDuplicateNodeName, issue.Rule)
		assert.Equal(t, `Duplicate node name: "A"`, issue.Message)
	}
	assert.Equal(t, []string{"nodes[0]", "nodes[2]", "nodes[3]"}, locations(issues))
}

func TestCheckStructure_UnnamedNodesAreDuplicates(t *testing.T) {
	issues := CheckStructure(parse(t, `{
		"name": "wf_a",
		"nodes": [
			{"type": "manualTrigger", "position": [0, 0]},
			{"type": "x", "position": [0, 0]}
		],
		"connections": {}
	}`))

	assert.Equal(t, []string{RuleNodeName, RuleDuplicateNodeName, RuleNodeName, RuleDuplicateNodeName}, rules(issues))
	assert.Equal(t, `Duplicate node name: "undefined"`, issues[1].Message)
}

func TestCheckStructure_Connections(t *testing.T) {
	issues := CheckStructure(parse(t, `{
		"name": "wf_a",
		"nodes": [{"name": "A", "type": "n8n-nodes-base.webhook", "position": [0, 0]}],
		"connections": {
			"Ghost": {"main": [[{"node": "A"}]]},
			"A": {"main": [[{"node": "A"}, {"node": "B", "type": "main", "index": 0}], "skip", [{"node": "C"}]]}
		}
	}`))

	require.Len(t, issues, 3)
	assert.Equal(t, Issue{
		Level:    LevelError,
		Rule:     RuleConnectionSource,
		Message:  `Connection references non-existent node: "Ghost"`,
		Location: "connections.Ghost",
	}, issues[0])
	assert.Equal(t, Issue{
		Level:    LevelError,
		Rule:     RuleConnectionTarget,
		Message:  `Connection from "A" targets non-existent node: "B"`,
		Location: "connections.A.main[0][1]",
	}, issues[1])
	assert.Equal(t, "connections.A.main[2][0]", issues[2].Location)
}

func TestCheckStructure_TriggerDetection(t *testing.T) {
	tests := []struct {
		nodeType string
		trigger  bool
	}{
		{"n8n-nodes-base.scheduleTrigger", true},
		{"custom.trigger", true},
		{"n8n-nodes-base.webhook", true},
		{"n8n-nodes-base.manualTrigger", true},
		{"n8n-nodes-base.webhookResponse", false},
		{"n8n-nodes-base.set", false},
	}

	for _, tt := range tests {
		t.Run(tt.nodeType, func(t *testing.T) {
			wf := parse(t, `{"name":"wf_a","nodes":[{"name":"N","type":"`+tt.nodeType+`","position":[0,0]}],"connections":{}}`)
			got := rules(CheckStructure(wf))
			if tt.trigger {
				assert.NotContains(t, got, RuleNoTrigger)
			} else {
				assert.Contains(t, got, RuleNoTrigger)
			}
		})
	}
}

func TestCheckExpressions(t *testing.T) {
	wf := parse(t, `{
		"name": "wf_a",
		"nodes": [
			{
				"name": "Fetch",
				"parameters": {
					"url": "={{ $('Missing').item.json.id }}",
					"list": ["{{ $json.a ?? 'x' }}", "{{ $(\"Fetch\").first()?.json }}"],
					"nested": {"deep": "{{ $json.x }} and {{ $json.y }}"},
					"plain": "no expressions here",
					"count": 3
				}
			},
			{"name": "NoParams"}
		],
		"connections": {}
	}`)

	issues := CheckExpressions(wf)
	require.Len(t, issues, 4)

	assert.Equal(t, Issue{
		Level:      LevelError,
		Rule:       RuleExpressionNodeRef,
		Message:    `Expression references non-existent node: "Missing"`,
		Location:   "nodes[0].parameters.url",
		Expression: "{{ $('Missing').item.json.id }}",
	}, issues[0])
	assert.Equal(t, RuleExpressionNullSafe, issues[1].Rule)
	assert.Equal(t, LevelInfo, issues[1].Level)
	assert.Equal(t, "nodes[0].parameters.url", issues[1].Location)

	assert.Equal(t, []string{"nodes[0].parameters.nested.deep", "nodes[0].parameters.nested.deep"}, locations(issues[2:]))
	assert.Equal(t, "{{ $json.x }}", issues[2].Expression)
	assert.Equal(t, "{{ $json.y }}", issues[3].Expression)
}

func TestCheckExpressions_ArrayPaths(t *testing.T) {
	wf := parse(t, `{"nodes":[{"name":"A"},{"name":"B","parameters":{"rules":[{"v":"x"},{"v":"{{ $('Nope') }}"}]}}]}`)
	issues := CheckExpressions(wf)
	require.Len(t, issues, 1)
	assert.Equal(t, "nodes[1].parameters.rules[1].v", issues[0].Location)
}

func TestCheckNaming(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		conv  config.NamingConvention
		rules []string
	}{
		{"conforming", `{"name":"wf_daily_sync"}`, defaultConventions, []string{}},
		{"missing prefix and case", `{"name":"Test"}`, defaultConventions, []string{RuleWorkflowPrefix, RuleWorkflowSnakeCase}},
		{"prefix stripped anywhere", `{"name":"my_wf_x"}`, defaultConventions, []string{RuleWorkflowPrefix}},
		{"empty prefix skips prefix rule", `{"name":"Test"}`, config.NamingConvention{UseSnakeCase: true}, []string{RuleWorkflowSnakeCase}},
		{"snake case disabled", `{"name":"wf_Daily"}`, config.NamingConvention{WorkflowPrefix: "wf_"}, []string{}},
		{"prefix only", `{"name":"wf_"}`, defaultConventions, []string{}},
		{"non-string name", `{"name":42}`, defaultConventions, []string{}},
		{
			"generic node names",
			`{"name":"wf_a","nodes":[{"name":"Set"},{"name":"HTTP Request2"},{"name":"Set up"},{"name":"Code"},{"name":7}]}`,
			defaultConventions,
			[]string{RuleGenericNodeName, RuleNumberedNodeName, RuleGenericNodeName},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.rules, rules(CheckNaming(parse(t, tt.doc), tt.conv)))
		})
	}
}

func TestCheckNaming_PrefixSuggestion(t *testing.T) {
	issues := CheckNaming(parse(t, `{"name":"Test"}`), defaultConventions)
	require.NotEmpty(t, issues)
	assert.Equal(t, Issue{
		Level:      LevelWarning,
		Rule:       RuleWorkflowPrefix,
		Message:    `Workflow name should start with "wf_"`,
		Location:   "name",
		Current:    "Test",
		Suggestion: "wf_Test",
	}, issues[0])
}

func TestCheckCredentials(t *testing.T) {
	tests := []struct {
		name   string
		node   string
		rules  []string
		levels []Level
	}{
		{
			"api key in parameters",
			`{"name":"Call","type":"n8n-nodes-base.set","parameters":{"apiKey":"abc123secret"}}`,
			[]string{RuleHardcodedCredential},
			[]Level{LevelError},
		},
		{
			"bearer literal",
			`{"name":"Call","type":"n8n-nodes-base.set","parameters":{"header":"Authorization: Bearer abc.def"}}`,
			[]string{RuleHardcodedCredential},
			[]Level{LevelError},
		},
		{
			"password inside a string",
			`{"name":"Call","type":"n8n-nodes-base.set","parameters":{"body":"password='hunter2'"}}`,
			[]string{RuleHardcodedCredential},
			[]Level{LevelError},
		},
		{
			"secret field",
			`{"name":"Call","type":"n8n-nodes-base.set","parameters":{"clientSecret":"s3cr3t"}}`,
			[]string{RuleHardcodedCredential},
			[]Level{LevelError},
		},
		{
			"api key assignment in code",
			`{"name":"Code","type":"n8n-nodes-base.code","parameters":{"jsCode":"const api_key = 'abc123';"}}`,
			[]string{RuleHardcodedCredential},
			[]Level{LevelError},
		},
		{
			"unicode escaped key",
			`{"name":"Call","type":"n8n-nodes-base.set","parameters":{"api\u004bey":"abc123"}}`,
			[]string{RuleHardcodedCredential},
			[]Level{LevelError},
		},
		{
			"clean parameters",
			`{"name":"Call","type":"n8n-nodes-base.set","parameters":{"url":"https://example.com"}}`,
			[]string{},
			nil,
		},
		{
			"credential node without credentials",
			`{"name":"Query","type":"n8n-nodes-base.postgres","parameters":{"query":"select 1"}}`,
			[]string{RuleMissingCredentials},
			[]Level{LevelInfo},
		},
		{
			"credential node with empty credentials",
			`{"name":"Post","type":"n8n-nodes-base.slack","credentials":{}}`,
			[]string{RuleMissingCredentials},
			[]Level{LevelInfo},
		},
		{
			"credential node configured",
			`{"name":"Post","type":"n8n-nodes-base.slack","credentials":{"slackApi":{"id":"1"}}}`,
			[]string{},
			nil,
		},
		{
			"both findings",
			`{"name":"Call","type":"n8n-nodes-base.httpRequest","parameters":{"token":"t0k3n"}}`,
			[]string{RuleHardcodedCredential, RuleMissingCredentials},
			[]Level{LevelError, LevelInfo},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := CheckCredentials(parse(t, `{"nodes":[`+tt.node+`]}`))
			assert.Equal(t, tt.rules, rules(issues))
			for i, level := range tt.levels {
				assert.Equal(t, level, issues[i].Level)
			}
		})
	}
}

func TestCheckCredentials_Message(t *testing.T) {
	issues := CheckCredentials(parse(t, `{"nodes":[{"type":"x"},{"name":"Call","parameters":{"apiKey":"abc123secret"}}]}`))
	require.Len(t, issues, 1)
	assert.Equal(t, `Node "Call" may contain hardcoded credentials`, issues[0].Message)
	assert.Equal(t, "nodes[1].parameters", issues[0].Location)
}

func TestRun_ManualTriggerScenario(t *testing.T) {
	wf := parse(t, `{"name":"wf_test","nodes":[{"name":"A","type":"manualTrigger"}],"connections":{}}`)
	report := Run(wf, Options{Conventions: defaultConventions})

	assert.Zero(t, report.ErrorCount)
	assert.True(t, report.Passed)
	assert.NotContains(t, rules(report.Issues), RuleNoTrigger)
	assert.Equal(t, []string{RuleNodePosition}, rules(report.Warnings()))
}

func TestRun_UnprefixedEmptyWorkflow(t *testing.T) {
	wf := parse(t, `{"name":"Test","nodes":[],"connections":{}}`)
	report := Run(wf, Options{Conventions: defaultConventions})

	assert.Equal(t, []string{RuleNoTrigger, RuleWorkflowPrefix, RuleWorkflowSnakeCase}, rules(report.Warnings()))
	assert.True(t, report.Passed)
	assert.Equal(t, 0, report.ExitCode(false))
	assert.Equal(t, 1, report.ExitCode(true))
}

func TestRun_CheckerOrderAndSkips(t *testing.T) {
	wf := parse(t, `{
		"name": "Bad Name",
		"nodes": [{"name": "Set", "type": "n8n-nodes-base.httpRequest", "parameters": {"url": "{{ $json.a }}", "apiKey": "k"}}],
		"connections": {}
	}`)

	report := Run(wf, Options{Conventions: defaultConventions})
	assert.Equal(t, []string{
		RuleNodePosition, RuleNoTrigger,
		RuleExpressionNullSafe,
		RuleWorkflowPrefix, RuleWorkflowSnakeCase, RuleGenericNodeName,
		RuleHardcodedCredential, RuleMissingCredentials,
	}, rules(report.Issues))

	skipped := Run(wf, Options{SkipStructure: true, SkipNaming: true, Conventions: defaultConventions})
	assert.Equal(t, []string{RuleExpressionNullSafe, RuleHardcodedCredential, RuleMissingCredentials}, rules(skipped.Issues))

	none := Run(wf, Options{SkipStructure: true, SkipExpressions: true, SkipNaming: true, SkipCredentials: true})
	assert.NotNil(t, none.Issues)
	assert.Zero(t, none.TotalCount)
	assert.True(t, none.Passed)
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions(config.New())
	assert.Equal(t, Options{Conventions: defaultConventions}, opts)
}

func TestSummarize(t *testing.T) {
	report := Summarize([]Issue{
		{Level: LevelWarning, Rule: "w1"},
		{Level: LevelError, Rule: "e1"},
		{Level: LevelInfo, Rule: "i1"},
		{Level: LevelWarning, Rule: "w2"},
	})

	assert.Equal(t, 4, report.TotalCount)
	assert.Equal(t, 1, report.ErrorCount)
	assert.Equal(t, 2, report.WarningCount)
	assert.Equal(t, 1, report.InfoCount)
	assert.False(t, report.Passed)
	assert.Equal(t, 1, report.ExitCode(false))

	doc := report.Document("/tmp/wf.json", "wf_a")
	assert.Equal(t, []string{"w1", "w2"}, rules(doc.Warnings))
	assert.Equal(t, []string{"e1"}, rules(doc.Errors))
	assert.Equal(t, report.Issues, doc.Issues)
	assert.Equal(t, "wf_a", doc.Workflow)
}

func TestCheckName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  string
		conv  config.NamingConvention
		want  []NameIssue
	}{
		{"conforming workflow", "wf_sync_orders", KindWorkflow, defaultConventions, nil},
		{
			"workflow without prefix",
			"My Workflow",
			KindWorkflow,
			defaultConventions,
			[]NameIssue{
				{Rule: "prefix", Message: `Should start with "wf_"`, Suggestion: "wf_My Workflow"},
				{Rule: "snake_case", Message: "Should use snake_case format", Suggestion: "my_workflow"},
			},
		},
		{
			"empty prefix falls back",
			"sync",
			KindWorkflow,
			config.NamingConvention{},
			[]NameIssue{{Rule: "prefix", Message: `Should start with "wf_"`, Suggestion: "wf_sync"}},
		},
		{
			"credential prefix",
			"prod_api_creds",
			KindCredential,
			defaultConventions,
			[]NameIssue{{Rule: "prefix", Message: `Should start with "cred_"`, Suggestion: "cred_prod_api_creds"}},
		},
		{"credential ok", "cred_slack", KindCredential, defaultConventions, nil},
		{
			"numbered node",
			"Set1",
			KindNode,
			defaultConventions,
			[]NameIssue{{Rule: RuleNumberedNodeName, Message: `Node "Set1" should have a descriptive name`}},
		},
		{"unknown kind", "whatever", "environment", defaultConventions, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckName(tt.input, tt.kind, tt.conv))
		})
	}
}
