package validate

import (
	"github.com/crystalmyth/n8n-bmad/internal/config"
	"github.com/crystalmyth/n8n-bmad/internal/workflow"
)

// Options selects which checkers run. The zero value runs all of them with
// the zero naming convention; use DefaultOptions for configured behavior.
type Options struct {
	SkipStructure   bool
	SkipExpressions bool
	SkipNaming      bool
	SkipCredentials bool

	Conventions config.NamingConvention
}

// DefaultOptions derives checker switches and naming conventions from a
// project configuration. Structure checks always run by default;
// defaults.validation.check_connections has no separate checker.
func DefaultOptions(cfg *config.Config) Options {
	defaults := cfg.ValidationDefaults()
	return Options{
		SkipExpressions: !defaults.Expressions,
		SkipNaming:      !defaults.Naming,
		SkipCredentials: !defaults.Credentials,
		Conventions:     cfg.NamingConvention(),
	}
}

// Run applies the enabled checkers in order (structure, expressions, naming,
// credentials) and summarizes the result.
func Run(wf *workflow.Workflow, opts Options) *Report {
	var issues []Issue

	if !opts.SkipStructure {
		issues = append(issues, CheckStructure(wf)...)
	}
	if !opts.SkipExpressions {
		issues = append(issues, CheckExpressions(wf)...)
	}
	if !opts.SkipNaming {
		issues = append(issues, CheckNaming(wf, opts.Conventions)...)
	}
	if !opts.SkipCredentials {
		issues = append(issues, CheckCredentials(wf)...)
	}

	return Summarize(issues)
}
