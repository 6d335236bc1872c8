package lsp

import (
	"github.com/hqltools/hqlint/pkg/lint"
	"github.com/hqltools/hqlint/pkg/token"
)

// diagnosticSource tags findings in the client UI.
const diagnosticSource = "hqlint"

// publishDiagnostics lints the document under the current snapshot and
// pushes the findings to the client.
func (s *Server) publishDiagnostics(uri string) {
	doc := s.documents.Get(uri)
	if doc == nil {
		return
	}

	cfg := s.snapshot()
	findings := lint.Run(doc.Content, cfg.Linting.RuleConfig())

	diagnostics := make([]Diagnostic, 0, len(findings))
	for _, d := range findings {
		diagnostics = append(diagnostics, Diagnostic{
			Range:    spanToRange(d.Span),
			Severity: severityCode(d.Severity, cfg.Linting.Threshold()),
			Code:     d.Code,
			Source:   diagnosticSource,
			Message:  d.Message,
		})
	}

	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         uri,
		Version:     doc.Version,
		Diagnostics: diagnostics,
	})
}

// spanToRange converts an engine span, already zero-based, into a
// protocol range.
func spanToRange(span token.Span) Range {
	return Range{
		Start: Position{
			Line:      uint32(max(0, span.Start.Line)),   //nolint:gosec // G115: engine spans are clamped non-negative
			Character: uint32(max(0, span.Start.Column)), //nolint:gosec // G115: engine spans are clamped non-negative
		},
		End: Position{
			Line:      uint32(max(0, span.End.Line)),   //nolint:gosec // G115: engine spans are clamped non-negative
			Character: uint32(max(0, span.End.Column)), //nolint:gosec // G115: engine spans are clamped non-negative
		},
	}
}

var severityCodes = map[lint.Severity]DiagnosticSeverity{
	lint.SeverityError:   DiagnosticSeverityError,
	lint.SeverityWarning: DiagnosticSeverityWarning,
	lint.SeverityInfo:    DiagnosticSeverityInformation,
	lint.SeverityHint:    DiagnosticSeverityHint,
}

// severityCode maps an engine severity onto the protocol's 1..4 code.
// A value outside the known range takes the configured threshold
// severity instead.
func severityCode(sev, fallback lint.Severity) DiagnosticSeverity {
	if code, ok := severityCodes[sev]; ok {
		return code
	}
	return severityCodes[fallback]
}
