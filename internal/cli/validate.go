package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/crystalmyth/n8n-bmad/internal/display"
	"github.com/crystalmyth/n8n-bmad/internal/log"
	"github.com/crystalmyth/n8n-bmad/internal/validate"
	"github.com/crystalmyth/n8n-bmad/internal/workflow"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	noStructure   bool
	noExpressions bool
	noNaming      bool
	noCredentials bool
	strictMode    bool
	reportFormat  string
	nameKind      string
)

func init() {
	flags := validateWorkflowCmd.Flags()
	flags.BoolVar(&noStructure, "no-structure", false, "Skip structure validation")
	flags.BoolVar(&noExpressions, "no-expressions", false, "Skip expression validation")
	flags.BoolVar(&noNaming, "no-naming", false, "Skip naming convention validation")
	flags.BoolVar(&noCredentials, "no-credentials", false, "Skip credential validation")
	flags.BoolVar(&strictMode, "strict", false, "Treat warnings as errors")
	flags.StringVarP(&reportFormat, "format", "f", "text", "Output format (text, json)")

	validateNamingCmd.Flags().StringVarP(&nameKind, "type", "t", validate.KindWorkflow, "Name type (workflow, credential, node)")

	validateCmd.AddCommand(validateWorkflowCmd, validateNamingCmd)
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate n8n workflows and names",
	Example: `  n8n-bmad validate workflow my-workflow.json
  n8n-bmad validate workflow my-workflow.json --strict
  n8n-bmad validate workflow my-workflow.json -f json
  n8n-bmad validate naming "My Workflow" -t workflow`,
}

var validateWorkflowCmd = &cobra.Command{
	Use:   "workflow <file>",
	Short: "Validate an n8n workflow JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidateWorkflow,
}

func runValidateWorkflow(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving %s: %w", args[0], err)
	}

	wf, err := workflow.Load(path)
	if err != nil {
		if errors.Is(err, workflow.ErrNotFound) {
			return fmt.Errorf("file not found: %s", path)
		}
		return err
	}

	opts := validate.DefaultOptions(cfg)
	opts.SkipStructure = opts.SkipStructure || noStructure
	opts.SkipExpressions = opts.SkipExpressions || noExpressions
	opts.SkipNaming = opts.SkipNaming || noNaming
	opts.SkipCredentials = opts.SkipCredentials || noCredentials

	report := validate.Run(wf, opts)
	log.L().Debug("workflow validated",
		zap.String("file", path),
		zap.Int("errors", report.ErrorCount),
		zap.Int("warnings", report.WarningCount))

	if reportFormat == "json" {
		data, err := json.MarshalIndent(report.Document(path, wf.Field("name").Value()), "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	} else {
		printReport(newPrinter(cmd), path, report)
	}

	if report.Failed(strictMode) {
		return errValidationFailed
	}
	return nil
}

func printReport(p *display.Printer, path string, report *validate.Report) {
	p.Header("Validating: " + filepath.Base(path))

	if errs := report.Errors(); len(errs) > 0 {
		p.Section(fmt.Sprintf("Errors (%d)", len(errs)))
		for _, issue := range errs {
			p.Error("%s", issue.Message)
			printIssueDetail(p, issue)
		}
	}

	if warnings := report.Warnings(); len(warnings) > 0 {
		p.Section(fmt.Sprintf("Warnings (%d)", len(warnings)))
		for _, issue := range warnings {
			p.Warning("%s", issue.Message)
			printIssueDetail(p, issue)
		}
	}

	if infos := report.Infos(); verbose && len(infos) > 0 {
		p.Section(fmt.Sprintf("Info (%d)", len(infos)))
		for _, issue := range infos {
			p.Info("%s", issue.Message)
			printIssueDetail(p, issue)
		}
	}

	status := display.Good("PASSED")
	if report.Failed(strictMode) {
		status = display.Bad("FAILED")
	}
	p.Blank()
	p.Box("Summary", []string{
		fmt.Sprintf("Errors:   %d", report.ErrorCount),
		fmt.Sprintf("Warnings: %d", report.WarningCount),
		fmt.Sprintf("Info:     %d", report.InfoCount),
		"",
		"Status: " + status,
	})
}

func printIssueDetail(p *display.Printer, issue validate.Issue) {
	p.Muted("    Rule: %s | Location: %s", issue.Rule, issue.Location)
	if issue.Suggestion != "" {
		p.Line("    %s %s", display.Notice("Suggestion:"), issue.Suggestion)
	}
	if issue.Expression != "" {
		p.Muted("    Expression: %s", issue.Expression)
	}
}

var validateNamingCmd = &cobra.Command{
	Use:   "naming <name>",
	Short: "Check a name against the naming conventions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		switch nameKind {
		case validate.KindWorkflow, validate.KindCredential, validate.KindNode:
		default:
			return fmt.Errorf("unknown name type %q (want workflow, credential or node)", nameKind)
		}

		p := newPrinter(cmd)
		conv := cfg.NamingConvention()

		p.Header("Naming Convention Check")
		p.KeyValue("Name", name)
		p.KeyValue("Type", nameKind)
		p.Blank()

		issues := validate.CheckName(name, nameKind, conv)
		if len(issues) == 0 {
			p.Success("Name follows conventions")
		} else {
			p.Warning("Name has %d issue(s):", len(issues))
			for _, issue := range issues {
				p.Line("  - %s", issue.Message)
				if issue.Suggestion != "" {
					p.Line("    %s %s", display.Notice("Suggestion:"), issue.Suggestion)
				}
			}
		}

		p.Section("Convention Settings")
		p.KeyValue("Workflow prefix", validate.WorkflowPrefix(conv))
		p.KeyValue("Credential prefix", validate.CredentialPrefix(conv))
		p.KeyValue("Use snake_case", fmt.Sprint(conv.UseSnakeCase))
		return nil
	},
}
