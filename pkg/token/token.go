// Package token defines the lexical token model shared by the HQL
// lexer, the lint rules, and the formatter.
package token

import "fmt"

// Kind classifies a lexical token.
type Kind int

const (
	// Word is a bare or quoted identifier/keyword.
	Word Kind = iota
	// LeftParen is "(".
	LeftParen
	// RightParen is ")".
	RightParen
	// Semicolon is ";".
	Semicolon
	// Whitespace is a run of spaces, tabs, or newlines. Comments are
	// also classified as Whitespace: no rule treats them as significant.
	Whitespace
	// Other covers everything else: string literals, numbers,
	// operators, commas, and any rune the lexer does not classify.
	Other
)

var kindNames = map[Kind]string{
	Word:       "Word",
	LeftParen:  "LeftParen",
	RightParen: "RightParen",
	Semicolon:  "Semicolon",
	Whitespace: "Whitespace",
	Other:      "Other",
}

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token represents a lexical token with position information.
// Tokens are produced once per scan and never mutated afterwards;
// every consumer walks the same read-only slice.
type Token struct {
	Kind Kind
	Text string
	// Quoted marks a Word that was written as a quoted identifier
	// (backticks or double quotes). A quoted word is never a keyword.
	Quoted bool
	Span   Span
}

// Significant returns true for tokens that rules must not skip.
// Whitespace (including comments) is insignificant.
func (t Token) Significant() bool {
	return t.Kind != Whitespace
}
