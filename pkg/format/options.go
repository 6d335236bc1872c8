package format

import "fmt"

// KeywordCase selects how recognized keywords are rewritten.
type KeywordCase int

const (
	KeywordCaseUpper KeywordCase = iota
	KeywordCaseLower
	KeywordCasePreserve
)

func (k KeywordCase) String() string {
	switch k {
	case KeywordCaseUpper:
		return "upper"
	case KeywordCaseLower:
		return "lower"
	case KeywordCasePreserve:
		return "preserve"
	}
	return fmt.Sprintf("KeywordCase(%d)", int(k))
}

// ParseKeywordCase maps a configuration string to a KeywordCase.
func ParseKeywordCase(s string) (KeywordCase, error) {
	switch s {
	case "upper", "":
		return KeywordCaseUpper, nil
	case "lower":
		return KeywordCaseLower, nil
	case "preserve":
		return KeywordCasePreserve, nil
	}
	return KeywordCaseUpper, fmt.Errorf("invalid keyword case %q (want upper, lower or preserve)", s)
}

// Options controls formatting. The zero value uppercases keywords and
// puts no blank line between statements.
type Options struct {
	// Indent is reserved for clients that send tab preferences. The
	// formatter does not re-indent statements today, so it is carried
	// but unused.
	Indent string

	KeywordCase KeywordCase

	// LinesBetweenQueries is the number of blank lines separating
	// top-level statements.
	LinesBetweenQueries int
}

// DefaultOptions mirrors the stock formatting configuration.
func DefaultOptions() Options {
	return Options{
		Indent:              "  ",
		KeywordCase:         KeywordCaseUpper,
		LinesBetweenQueries: 1,
	}
}
