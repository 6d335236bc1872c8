// Package format normalizes HQL text: keyword casing, blank lines
// between top-level statements, trailing whitespace, and the final
// newline. Everything the options do not name, including the author's
// line breaks and indentation, passes through verbatim.
package format

import (
	"regexp"
	"strings"

	"github.com/hqltools/hqlint/pkg/hql"
	"github.com/hqltools/hqlint/pkg/token"
)

// Format rewrites text according to opts. On tokenize failure the
// input comes back unchanged along with the error, so callers never
// apply edits derived from text the lexer cannot read.
//
// Format is idempotent: running it over its own output changes
// nothing.
func Format(text string, opts Options) (string, error) {
	toks, err := hql.Tokenize(text)
	if err != nil {
		return text, err
	}

	w := &writer{src: text, opts: opts}
	for _, tok := range toks {
		w.token(tok)
	}
	return w.finish(), nil
}

// writer replays the token stream into a buffer, rewriting keyword
// case and replacing the blank space after each top-level semicolon
// with the configured statement separator.
type writer struct {
	src  string
	opts Options
	out  strings.Builder

	parenDepth int
	// sepPending is set after a top-level semicolon until the next
	// statement text arrives. Blank space seen in between collects in
	// gap and is dropped in favor of the separator.
	sepPending bool
	gap        string
}

func (w *writer) token(tok token.Token) {
	raw := w.src[tok.Span.Start.Offset:tok.Span.End.Offset]

	switch tok.Kind {
	case token.LeftParen:
		w.emit(raw)
		w.parenDepth++

	case token.RightParen:
		w.emit(raw)
		if w.parenDepth > 0 {
			w.parenDepth--
		}

	case token.Semicolon:
		w.emit(raw)
		if w.parenDepth == 0 {
			w.sepPending = true
			w.gap = ""
		}

	case token.Whitespace:
		if isBlank(raw) {
			if w.sepPending {
				w.gap += raw
				return
			}
			w.out.WriteString(stripBeforeNewline(raw))
			return
		}
		w.comment(raw)

	case token.Word:
		w.emit(w.word(tok, raw))

	default:
		w.emit(raw)
	}
}

// emit writes s, flushing the statement separator first when one is
// pending.
func (w *writer) emit(s string) {
	if w.sepPending {
		w.out.WriteString(w.separator())
		w.sepPending = false
		w.gap = ""
	}
	w.out.WriteString(s)
}

func (w *writer) separator() string {
	blank := w.opts.LinesBetweenQueries
	if blank < 0 {
		blank = 0
	}
	return strings.Repeat("\n", 1+blank)
}

// comment handles a comment token. A comment on the same line as a
// just-closed statement stays attached to it; a comment on its own
// line belongs to the next statement and the separator goes in front.
func (w *writer) comment(raw string) {
	text := raw
	if strings.HasPrefix(text, "--") {
		text = strings.TrimRight(text, " \t")
	}
	if w.sepPending && !strings.ContainsRune(w.gap, '\n') {
		w.out.WriteString(w.gap)
		w.out.WriteString(text)
		w.gap = ""
		return
	}
	w.emit(text)
}

func (w *writer) word(tok token.Token, raw string) string {
	if tok.Quoted || w.opts.KeywordCase == KeywordCasePreserve || !hql.IsKeyword(raw) {
		return raw
	}
	if w.opts.KeywordCase == KeywordCaseLower {
		return strings.ToLower(raw)
	}
	return strings.ToUpper(raw)
}

// finish trims blank space from the end and terminates non-empty
// output with exactly one newline.
func (w *writer) finish() string {
	out := strings.TrimRight(w.out.String(), " \t\r\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}

var trailingBlank = regexp.MustCompile(`[ \t]+(\r?\n)`)

// stripBeforeNewline removes spaces and tabs that sit directly before
// a line break. Only whitespace tokens go through here, so string and
// comment contents are never touched.
func stripBeforeNewline(s string) string {
	return trailingBlank.ReplaceAllString(s, "$1")
}

func isBlank(s string) bool {
	return strings.TrimLeft(s, " \t\r\n") == ""
}
