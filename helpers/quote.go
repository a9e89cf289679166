package helpers

import (
	"strings"
	"unicode/utf8"

	"github.com/ava12/pegx/parser"
)

// SurroundPairWithEscaper parses text enclosed in bound characters, e.g. 'it\'s'.
// The escaper consumes any following character, its meaning is not checked.
// Fails with MissingCharacterRange if the text does not start with bound,
// and with MissingCharacterSet at the end of text if it ends before
// the escaped character or the closing bound.
func SurroundPairWithEscaper(s parser.State, bound, escaper rune) parser.Result[parser.SurroundPair] {
	rest := s.Rest()
	r, size := utf8.DecodeRuneInString(rest)
	if size == 0 || r != bound {
		return parser.Stop[parser.SurroundPair](parser.MissingCharacterAt(s.Offset(), bound))
	}

	offset := size
	for offset < len(rest) {
		c, n := utf8.DecodeRuneInString(rest[offset:])
		switch c {
		case bound:
			return parser.Continue(s.Advance(offset+n), parser.SurroundPair{
				Head: parser.NewView(s.Offset(), rest[:size]),
				Body: parser.NewView(s.Offset()+size, rest[size:offset]),
				Tail: parser.NewView(s.Offset()+offset, rest[offset:offset+n]),
			})

		case escaper:
			offset += n
			if offset >= len(rest) {
				return parser.Stop[parser.SurroundPair](parser.MissingCharacterSetAt(s.Offset()+offset, parser.AnyLabel))
			}
			_, n = utf8.DecodeRuneInString(rest[offset:])
		}
		offset += n
	}

	return parser.Stop[parser.SurroundPair](parser.MissingCharacterSetAt(s.Offset()+offset, string(bound)))
}

// QuotationPairEscaped is SurroundPairWithEscaper with backslash escaper.
func QuotationPairEscaped(s parser.State, bound rune) parser.Result[parser.SurroundPair] {
	return SurroundPairWithEscaper(s, bound, '\\')
}

// QuotationPair parses lhs, any text without rhs (possibly empty), and rhs. No escapes.
func QuotationPair(s parser.State, lhs, rhs rune) parser.Result[parser.SurroundPair] {
	head := s.MatchChar(lhs)
	if head.IsFailure() {
		return parser.Propagate[parser.SurroundPair](head)
	}

	bodyState := head.State()
	bodyLen := strings.IndexRune(bodyState.Rest(), rhs)
	if bodyLen < 0 {
		return parser.Stop[parser.SurroundPair](parser.MissingCharacterAt(bodyState.EndOffset(), rhs))
	}

	tailState, body := bodyState.AdvanceView(bodyLen)
	next, tail := tailState.AdvanceView(utf8.RuneLen(rhs))
	return parser.Continue(next, parser.SurroundPair{
		Head: s.Slice(s.Offset(), bodyState.Offset()),
		Body: body,
		Tail: tail,
	})
}

// QuotationPairNested parses fenced raw text like ```text``` or ""text"".
// Fence width is the length of the opening delimiter run, the body ends at the
// first identical fence. A run of exactly two delimiters is an empty string.
func QuotationPairNested(s parser.State, delimiter rune) parser.Result[parser.SurroundPair] {
	run := s.MatchStrIf(func(c rune) bool { return c == delimiter }, string(delimiter))
	if run.IsFailure() {
		return parser.Stop[parser.SurroundPair](parser.MissingCharacterAt(s.Offset(), delimiter))
	}

	fence := run.Value()
	width := utf8.RuneLen(delimiter)
	if len(fence) == width*2 {
		return parser.Continue(run.State(), parser.SurroundPair{
			Head: parser.NewView(s.Offset(), fence[:width]),
			Body: parser.NewView(s.Offset()+width, ""),
			Tail: parser.NewView(s.Offset()+width, fence[width:]),
		})
	}

	bodyState := run.State()
	bodyLen := strings.Index(bodyState.Rest(), fence)
	if bodyLen < 0 {
		return parser.Stop[parser.SurroundPair](parser.MissingStringAt(bodyState.EndOffset(), fence))
	}

	tailState, body := bodyState.AdvanceView(bodyLen)
	next, tail := tailState.AdvanceView(len(fence))
	return parser.Continue(next, parser.SurroundPair{
		Head: parser.NewView(s.Offset(), fence),
		Body: body,
		Tail: tail,
	})
}

// SurroundPattern parses literal head, any text, and the first occurrence of literal tail,
// e.g. r#"text"# or """text""".
type SurroundPattern struct {
	LHS, RHS string

	// LHSName and RHSName are failure labels, LHS and RHS are used if empty.
	LHSName, RHSName string
}

func (sp SurroundPattern) Parse(s parser.State) parser.Result[parser.SurroundPair] {
	if !strings.HasPrefix(s.Rest(), sp.LHS) {
		return parser.Stop[parser.SurroundPair](parser.MissingStringAt(s.Offset(), label(sp.LHSName, sp.LHS)))
	}

	bodyState, head := s.AdvanceView(len(sp.LHS))
	bodyLen := strings.Index(bodyState.Rest(), sp.RHS)
	if bodyLen < 0 {
		return parser.Stop[parser.SurroundPair](parser.MissingStringAt(bodyState.EndOffset(), label(sp.RHSName, sp.RHS)))
	}

	tailState, body := bodyState.AdvanceView(bodyLen)
	next, tail := tailState.AdvanceView(len(sp.RHS))
	return parser.Continue(next, parser.SurroundPair{Head: head, Body: body, Tail: tail})
}

func label(name, def string) string {
	if name == "" {
		return def
	}
	return name
}
