package parser

import (
	"strings"
	"unicode/utf8"
)

// Pattern is a textual pattern anchored at the start of the text.
// package pattern contains regular expression implementations.
type Pattern interface {
	// MatchPrefix returns length of the match at the start of text in bytes or -1 if there is no match.
	MatchPrefix(text string) int
}

// FalliblePattern is a Pattern whose engine may fail, e.g. on a match timeout.
// MatchPattern reports such failures as Custom reasons covering the rest of the text
// instead of a missing match.
type FalliblePattern interface {
	Pattern
	MatchPrefixError(text string) (int, error)
}

// PatternFunc adapts a function to Pattern.
type PatternFunc func(text string) int

func (f PatternFunc) MatchPrefix(text string) int {
	return f(text)
}

// AnyLabel is the label used by MatchCharAny.
const AnyLabel = "ANY"

// MatchChar matches the character c.
func (s State) MatchChar(c rune) Result[rune] {
	r, size := s.Peek()
	if size > 0 && r == c {
		return Continue(s.Advance(size), r)
	}
	return Stop[rune](MissingCharacterAt(s.offset, c))
}

// MatchCharRange matches a character in inclusive range [lo, hi].
func (s State) MatchCharRange(lo, hi rune) Result[rune] {
	r, size := s.Peek()
	if size > 0 && r >= lo && r <= hi {
		return Continue(s.Advance(size), r)
	}
	return Stop[rune](MissingCharacterRangeAt(s.offset, lo, hi))
}

// MatchCharIf matches a character satisfying predicate, label names the expected character class.
func (s State) MatchCharIf(predicate func(rune) bool, label string) Result[rune] {
	r, size := s.Peek()
	if size > 0 && predicate(r) {
		return Continue(s.Advance(size), r)
	}
	return Stop[rune](MustBeAt(s.offset, label))
}

// MatchCharAny matches any character, fails only at the end of text.
func (s State) MatchCharAny() Result[rune] {
	return s.MatchCharIf(func(rune) bool { return true }, AnyLabel)
}

// MatchEOF succeeds without consuming anything if all the text is consumed.
func (s State) MatchEOF() Result[struct{}] {
	if s.IsEmpty() {
		return Continue(s, struct{}{})
	}
	return Stop[struct{}](ExpectEOFAt(s.offset))
}

// MatchStr matches literal text byte by byte.
func (s State) MatchStr(literal string) Result[string] {
	if strings.HasPrefix(s.Rest(), literal) {
		return Continue(s.Advance(len(literal)), literal)
	}
	return Stop[string](MissingStringAt(s.offset, literal))
}

// MatchStrInsensitive matches literal text ignoring ASCII letter case.
// Returns matched input text, not the literal.
func (s State) MatchStrInsensitive(literal string) Result[string] {
	rest := s.Rest()
	if len(rest) >= len(literal) && equalFoldASCII(rest[:len(literal)], literal) {
		return Continue(s.Advance(len(literal)), rest[:len(literal)])
	}
	return Stop[string](MissingStringAt(s.offset, literal))
}

// MatchStrIf matches the longest non-empty run of characters satisfying predicate.
func (s State) MatchStrIf(predicate func(rune) bool, label string) Result[string] {
	n := runLength(s.Rest(), predicate, true)
	if n == 0 {
		return Stop[string](MissingStringAt(s.offset, label))
	}
	return Continue(s.Advance(n), s.Rest()[:n])
}

// MatchStrUntil matches the longest non-empty run of characters not satisfying predicate.
func (s State) MatchStrUntil(predicate func(rune) bool, label string) Result[string] {
	n := runLength(s.Rest(), predicate, false)
	if n == 0 {
		return Stop[string](MissingStringAt(s.offset, label))
	}
	return Continue(s.Advance(n), s.Rest()[:n])
}

// MatchPattern matches pattern at the current offset, never searching forward.
// Errors of a FalliblePattern stop parsing with a Custom reason.
func (s State) MatchPattern(p Pattern, label string) Result[string] {
	rest := s.Rest()
	var n int
	if fp, ok := p.(FalliblePattern); ok {
		var e error
		n, e = fp.MatchPrefixError(rest)
		if e != nil {
			return Stop[string](FromError(e, s.offset, s.offset+len(rest)))
		}
	} else {
		n = p.MatchPrefix(rest)
	}
	if n < 0 {
		return Stop[string](MissingStringAt(s.offset, label))
	}
	return Continue(s.Advance(n), rest[:n])
}

func runLength(text string, predicate func(rune) bool, expected bool) int {
	n := 0
	for n < len(text) {
		r, size := utf8.DecodeRuneInString(text[n:])
		if predicate(r) != expected {
			break
		}
		n += size
	}
	return n
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca == cb {
			continue
		}

		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
