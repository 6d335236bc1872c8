package output

// LintDiagnostic is one finding in machine-readable lint output.
// Positions are one-based, the way editors display them; the engine's
// zero-based spans are converted at this boundary.
type LintDiagnostic struct {
	Code      string `json:"code,omitempty"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"endLine"`
	EndColumn int    `json:"endColumn"`
}

// LintFileResult groups findings by input.
type LintFileResult struct {
	Path        string           `json:"path"`
	Diagnostics []LintDiagnostic `json:"diagnostics"`
}

// LintSummary aggregates finding counts for one run.
type LintSummary struct {
	FilesAnalyzed int `json:"filesAnalyzed"`
	TotalIssues   int `json:"totalIssues"`
	Errors        int `json:"errors"`
	Warnings      int `json:"warnings"`
	Info          int `json:"info"`
	Hints         int `json:"hints"`
}

// LintOutput is the lint command's JSON document.
type LintOutput struct {
	Summary LintSummary      `json:"summary"`
	Files   []LintFileResult `json:"files"`
}
