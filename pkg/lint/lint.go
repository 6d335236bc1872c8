// Package lint implements the HQL diagnostic engine.
//
// The engine is a pipeline of independent rule passes over (a) the raw
// source text and (b) a flat token stream produced by pkg/hql. Rules
// share no state: every pass re-reads the same immutable inputs and
// appends to one result list, so passes can be reordered or run alone
// without changing any individual finding. Run is the entry point.
//
// Positions in emitted diagnostics are zero-based (line and column),
// matching editor protocols. The lexer reports one-based coordinates;
// the conversion happens here and nowhere else.
package lint

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hqltools/hqlint/pkg/token"
)

// Severity indicates the importance of a diagnostic.
type Severity int

// Severity levels, ordered most to least severe.
const (
	// SeverityError indicates a structural problem such as unbalanced
	// parentheses or untokenizable input.
	SeverityError Severity = iota
	// SeverityWarning indicates a probable mistake worth reviewing.
	SeverityWarning
	// SeverityInfo indicates low-confidence findings like a missing
	// trailing semicolon.
	SeverityInfo
	// SeverityHint indicates a cosmetic suggestion.
	SeverityHint
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "information"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the severity as its string form.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// ParseSeverity converts a configuration string into a Severity.
// Matching is case-insensitive; "info" is accepted for "information".
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, nil
	case "warning":
		return SeverityWarning, nil
	case "information", "info":
		return SeverityInfo, nil
	case "hint":
		return SeverityHint, nil
	default:
		return SeverityWarning, fmt.Errorf("unknown severity %q", s)
	}
}

// AtLeast reports whether s is at or above the given threshold
// (equally or more severe).
func (s Severity) AtLeast(threshold Severity) bool {
	return s <= threshold
}

// Diagnostic represents a single lint finding.
type Diagnostic struct {
	// Span locates the finding using zero-based line/column
	// coordinates. A zero-width span marks a point, for example the
	// place a missing semicolon belongs.
	Span     token.Span `json:"span"`
	Severity Severity   `json:"severity"`
	// Code is a stable identifier for rules that define one.
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// zeroBased converts a lexer span (one-based) into the diagnostic
// coordinate system (zero-based), clamping at zero.
func zeroBased(s token.Span) token.Span {
	return token.Span{
		Start: zeroBasedPos(s.Start),
		End:   zeroBasedPos(s.End),
	}
}

func zeroBasedPos(p token.Position) token.Position {
	return token.Position{
		Line:   max(0, p.Line-1),
		Column: max(0, p.Column-1),
		Offset: p.Offset,
	}
}

// pointAt returns a zero-width zero-based span at the given lexer
// position.
func pointAt(p token.Position) token.Span {
	return token.PointSpan(zeroBasedPos(p))
}
