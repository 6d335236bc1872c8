package token

// Position represents a location in HQL source text. The lexer
// produces one-based lines and columns; diagnostics reuse the type
// with zero-based coordinates after conversion at the lint boundary.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"` // byte-based
	Offset int `json:"-"`      // 0-based byte offset, internal
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Span represents a half-open [Start, End) range in source text.
// End may equal Start for a zero-width marker.
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// IsValid returns true if both start and end positions are valid.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid()
}

// IsZeroWidth returns true if the span marks a point rather than a region.
func (s Span) IsZeroWidth() bool {
	return s.Start == s.End
}

// PointSpan returns a zero-width span at the given position.
func PointSpan(p Position) Span {
	return Span{Start: p, End: p}
}
