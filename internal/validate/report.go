package validate

// Report is the aggregated outcome of a validation run.
type Report struct {
	Issues       []Issue `json:"issues"`
	TotalCount   int     `json:"totalCount"`
	ErrorCount   int     `json:"errorCount"`
	WarningCount int     `json:"warningCount"`
	InfoCount    int     `json:"infoCount"`
	Passed       bool    `json:"passed"`
}

// Summarize counts issues by level. Passed means no errors.
func Summarize(issues []Issue) *Report {
	r := &Report{Issues: issues, TotalCount: len(issues)}
	if r.Issues == nil {
		r.Issues = []Issue{}
	}
	for _, issue := range issues {
		switch issue.Level {
		case LevelError:
			r.ErrorCount++
		case LevelWarning:
			r.WarningCount++
		case LevelInfo:
			r.InfoCount++
		}
	}
	r.Passed = r.ErrorCount == 0
	return r
}

// Errors returns the error-level issues in order.
func (r *Report) Errors() []Issue { return r.byLevel(LevelError) }

// Warnings returns the warning-level issues in order.
func (r *Report) Warnings() []Issue { return r.byLevel(LevelWarning) }

// Infos returns the info-level issues in order.
func (r *Report) Infos() []Issue { return r.byLevel(LevelInfo) }

func (r *Report) byLevel(level Level) []Issue {
	out := []Issue{}
	for _, issue := range r.Issues {
		if issue.Level == level {
			out = append(out, issue)
		}
	}
	return out
}

// Failed reports whether the run fails under the given policy. In strict
// mode warnings fail the run as well.
func (r *Report) Failed(strict bool) bool {
	if strict {
		return r.ErrorCount+r.WarningCount > 0
	}
	return r.ErrorCount > 0
}

// ExitCode maps Failed to a process exit status.
func (r *Report) ExitCode(strict bool) int {
	if r.Failed(strict) {
		return 1
	}
	return 0
}

// Document is the machine-readable form of a report for one file.
type Document struct {
	File         string  `json:"file"`
	Workflow     any     `json:"workflow,omitempty"`
	Errors       []Issue `json:"errors"`
	Warnings     []Issue `json:"warnings"`
	Infos        []Issue `json:"infos"`
	TotalCount   int     `json:"totalCount"`
	ErrorCount   int     `json:"errorCount"`
	WarningCount int     `json:"warningCount"`
	InfoCount    int     `json:"infoCount"`
	Passed       bool    `json:"passed"`
	Issues       []Issue `json:"issues"`
}

// Document builds the JSON document for file. workflowName is the decoded
// "name" value, or nil when the document has none.
func (r *Report) Document(file string, workflowName any) Document {
	return Document{
		File:         file,
		Workflow:     workflowName,
		Errors:       r.Errors(),
		Warnings:     r.Warnings(),
		Infos:        r.Infos(),
		TotalCount:   r.TotalCount,
		ErrorCount:   r.ErrorCount,
		WarningCount: r.WarningCount,
		InfoCount:    r.InfoCount,
		Passed:       r.Passed,
		Issues:       r.Issues,
	}
}
