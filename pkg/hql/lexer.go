// Package hql tokenizes Hive SQL (HQL) source text.
//
// The lexer is deliberately flat: it classifies words, parentheses,
// semicolons, whitespace, and "everything else" with byte-accurate
// spans, and leaves all structure to its consumers. Comments are
// emitted as Whitespace tokens so downstream scans can skip them
// uniformly.
package hql

import (
	"fmt"
	"unicode"

	"github.com/hqltools/hqlint/pkg/token"
)

// Error is a positioned tokenizer failure, such as an unterminated
// string literal. Pos points at the opening delimiter.
type Error struct {
	Pos token.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// Lexer tokenizes HQL input.
type Lexer struct {
	input string
	pos   int  // byte offset of the current unread character
	ch    byte // byte at pos; ASCII NUL at end of input
	line  int  // line of the current unread character (1-based)
	col   int  // column of the current unread character (1-based, bytes)
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1, col: 1}
	l.ch = l.byteAt(0)
	return l
}

func (l *Lexer) byteAt(i int) byte {
	if i >= len(l.input) {
		return 0
	}
	return l.input[i]
}

// readChar consumes the current character.
func (l *Lexer) readChar() {
	if l.pos >= len(l.input) {
		return
	}
	if l.ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
	l.ch = l.byteAt(l.pos)
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	return l.byteAt(l.pos + 1)
}

// currentPos returns the position of the current unread character.
// Because columns are byte-based and half-open spans end one past the
// last byte of a token, this is also the End position of whatever was
// just consumed.
func (l *Lexer) currentPos() token.Position {
	return token.Position{Line: l.line, Column: l.col, Offset: l.pos}
}

// Next returns the next token. ok is false at end of input.
func (l *Lexer) Next() (tok token.Token, ok bool, err error) {
	if l.pos >= len(l.input) {
		return token.Token{}, false, nil
	}

	start := l.currentPos()

	switch {
	case isSpace(l.ch):
		l.readWhitespace()
		tok.Kind = token.Whitespace

	case l.ch == '-' && l.peekChar() == '-':
		l.readLineComment()
		tok.Kind = token.Whitespace

	case l.ch == '/' && l.peekChar() == '*':
		if !l.readBlockComment() {
			return token.Token{}, false, &Error{Pos: start, Msg: "unterminated block comment"}
		}
		tok.Kind = token.Whitespace

	case l.ch == '(':
		l.readChar()
		tok.Kind = token.LeftParen

	case l.ch == ')':
		l.readChar()
		tok.Kind = token.RightParen

	case l.ch == ';':
		l.readChar()
		tok.Kind = token.Semicolon

	case l.ch == '\'':
		if !l.readDelimited('\'') {
			return token.Token{}, false, &Error{Pos: start, Msg: "unterminated string literal"}
		}
		tok.Kind = token.Other

	case l.ch == '"', l.ch == '`':
		inner, closed := l.readQuotedIdentifier(l.ch)
		if !closed {
			return token.Token{}, false, &Error{Pos: start, Msg: "unterminated quoted identifier"}
		}
		end := l.currentPos()
		return token.Token{
			Kind:   token.Word,
			Text:   inner,
			Quoted: true,
			Span:   token.Span{Start: start, End: end},
		}, true, nil

	case isLetter(l.ch) || l.ch == '_':
		l.readWord()
		tok.Kind = token.Word

	case isDigit(l.ch):
		l.readNumber()
		tok.Kind = token.Other

	default:
		l.readChar()
		tok.Kind = token.Other
	}

	end := l.currentPos()
	tok.Span = token.Span{Start: start, End: end}
	tok.Text = l.input[start.Offset:end.Offset]
	return tok, true, nil
}

// readWhitespace consumes a run of spaces, tabs, and line breaks.
func (l *Lexer) readWhitespace() {
	for isSpace(l.ch) {
		l.readChar()
	}
}

// readLineComment consumes "--" up to (not including) the newline.
func (l *Lexer) readLineComment() {
	for l.ch != '\n' && l.pos < len(l.input) {
		l.readChar()
	}
}

// readBlockComment consumes "/* ... */" and reports whether the
// closing delimiter was found.
func (l *Lexer) readBlockComment() bool {
	l.readChar() // skip '/'
	l.readChar() // skip '*'
	for {
		if l.pos >= len(l.input) {
			return false
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			return true
		}
		l.readChar()
	}
}

// readDelimited consumes a quoted region including both delimiters.
// Doubled delimiters and backslash escapes continue the region.
// Reports whether the closing delimiter was found.
func (l *Lexer) readDelimited(quote byte) bool {
	l.readChar() // skip opening quote
	for {
		if l.pos >= len(l.input) {
			return false
		}
		switch l.ch {
		case '\\':
			l.readChar()
			l.readChar() // skip the escaped character
		case quote:
			if l.peekChar() == quote {
				l.readChar()
				l.readChar() // doubled quote escape
			} else {
				l.readChar() // closing quote
				return true
			}
		default:
			l.readChar()
		}
	}
}

// readQuotedIdentifier consumes a quoted identifier and returns its
// inner text with doubled-quote escapes collapsed.
func (l *Lexer) readQuotedIdentifier(quote byte) (string, bool) {
	l.readChar() // skip opening quote

	var out []byte
	for {
		if l.pos >= len(l.input) {
			return "", false
		}
		if l.ch == quote {
			if l.peekChar() == quote {
				out = append(out, quote)
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar() // closing quote
			return string(out), true
		}
		out = append(out, l.ch)
		l.readChar()
	}
}

// readWord consumes an unquoted identifier or keyword.
func (l *Lexer) readWord() {
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
}

// readNumber consumes a numeric literal (integer, decimal, or scientific).
func (l *Lexer) readNumber() {
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isLetter(ch byte) bool {
	return unicode.IsLetter(rune(ch))
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// Tokenize returns all tokens from the input, or a positioned *Error
// if the input cannot be tokenized. The returned slice is complete up
// to the point of failure.
func Tokenize(input string) ([]token.Token, error) {
	l := NewLexer(input)
	var tokens []token.Token
	for {
		tok, ok, err := l.Next()
		if err != nil {
			return tokens, err
		}
		if !ok {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}
