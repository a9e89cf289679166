package helpers

import (
	"strings"
	"unicode"

	"github.com/ava12/pegx/parser"
)

// Whitespace matches a non-empty run of Unicode white space.
func Whitespace(s parser.State) parser.Result[parser.StringView] {
	return spaceRun(s, unicode.IsSpace)
}

// ASCIIWhitespace matches a non-empty run of space, \t, \n, \f, \r.
func ASCIIWhitespace(s parser.State) parser.Result[parser.StringView] {
	return spaceRun(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\f' || r == '\r'
	})
}

func spaceRun(s parser.State, isSpace func(rune) bool) parser.Result[parser.StringView] {
	rest := s.Rest()
	n := strings.IndexFunc(rest, func(r rune) bool { return !isSpace(r) })
	if n < 0 {
		n = len(rest)
	}
	if n == 0 {
		return parser.Stop[parser.StringView](parser.MissingCharacterAt(s.Offset(), ' '))
	}

	next, view := s.AdvanceView(n)
	return parser.Continue(next, view)
}

// ParagraphBreak matches white space containing at least two line breaks.
// Trailing spaces after the last line break are left unconsumed.
func ParagraphBreak(s parser.State) parser.Result[parser.StringView] {
	rest := s.Rest()
	n := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsSpace(r) })
	if n < 0 {
		n = len(rest)
	}
	text := rest[:n]
	n = len(strings.TrimRight(text, " "))

	if n == 0 {
		return parser.Stop[parser.StringView](parser.MissingStringAt(s.Offset(), "PARAGRAPH_LINE"))
	}
	if strings.Count(text, "\n") <= 1 {
		return parser.Stop[parser.StringView](parser.MissingStringAt(s.Offset(), "PARAGRAPH_BREAK"))
	}

	next, view := s.AdvanceView(n)
	return parser.Continue(next, view)
}

// Ignore returns parser skipping any mix of white space and comments, never failing.
// Suitable as the ignore parser of Bracket and parser.Padded.
func Ignore(comments ...parser.Parser[parser.SurroundPair]) parser.Parser[parser.StringView] {
	return func(s parser.State) parser.Result[parser.StringView] {
		start := s
		for {
			if r := Whitespace(s); r.IsSuccess() {
				s = r.State()
				continue
			}

			matched := false
			for _, c := range comments {
				if r := c(s); r.IsSuccess() {
					s = r.State()
					matched = true
					break
				}
			}
			if !matched {
				return parser.Continue(s, start.Slice(start.Offset(), s.Offset()))
			}
		}
	}
}
