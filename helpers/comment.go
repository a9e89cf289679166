package helpers

import (
	"strings"
	"unicode/utf8"

	"github.com/ava12/pegx/parser"
)

// CommentLine parses Head and the rest of the line up to (not including) \r, \n, or the end of text.
// Tail of the result is always empty.
type CommentLine struct {
	Head string
}

func (cl CommentLine) Parse(s parser.State) parser.Result[parser.SurroundPair] {
	if !strings.HasPrefix(s.Rest(), cl.Head) {
		return parser.Stop[parser.SurroundPair](parser.MissingStringAt(s.Offset(), cl.Head))
	}

	bodyState, head := s.AdvanceView(len(cl.Head))
	next, body := bodyState.AdvanceView(lineLength(bodyState.Rest()))
	return parser.Continue(next, parser.SurroundPair{
		Head: head,
		Body: body,
		Tail: parser.NewView(next.Offset(), ""),
	})
}

// RestOfLine matches text up to (not including) line break or the end of text. Never fails.
func RestOfLine(s parser.State) parser.Result[parser.StringView] {
	next, line := s.AdvanceView(lineLength(s.Rest()))
	return parser.Continue(next, line)
}

func lineLength(text string) int {
	n := strings.IndexAny(text, "\r\n")
	if n < 0 {
		return len(text)
	}
	return n
}

// CommentBlock parses Head, any text, and Tail, e.g. /* comment */.
// Nested blocks require balanced Head and Tail inside the comment.
// Tail must not be empty, nor Head of a nested block.
type CommentBlock struct {
	Head, Tail string
	Nested     bool
}

func (cb CommentBlock) Parse(s parser.State) parser.Result[parser.SurroundPair] {
	if cb.Tail == "" || cb.Nested && cb.Head == "" {
		return parser.Stop[parser.SurroundPair](parser.CustomAt(s.Offset(), s.Offset(), "comment block markers must not be empty"))
	}
	if !strings.HasPrefix(s.Rest(), cb.Head) {
		return parser.Stop[parser.SurroundPair](parser.MissingStringAt(s.Offset(), cb.Head))
	}

	bodyState, head := s.AdvanceView(len(cb.Head))
	var bodyLen int
	if cb.Nested {
		bodyLen = cb.nestedLength(bodyState.Rest())
	} else {
		bodyLen = strings.Index(bodyState.Rest(), cb.Tail)
	}
	if bodyLen < 0 {
		return parser.Stop[parser.SurroundPair](parser.MissingStringAt(bodyState.Offset(), cb.Tail))
	}

	tailState, body := bodyState.AdvanceView(bodyLen)
	next, tail := tailState.AdvanceView(len(cb.Tail))
	return parser.Continue(next, parser.SurroundPair{Head: head, Body: body, Tail: tail})
}

// nestedLength returns offset of the tail closing the outermost block or -1.
func (cb CommentBlock) nestedLength(text string) int {
	depth := 1
	for i := 0; i < len(text); {
		switch {
		case strings.HasPrefix(text[i:], cb.Tail):
			depth--
			if depth == 0 {
				return i
			}
			i += len(cb.Tail)

		case strings.HasPrefix(text[i:], cb.Head):
			depth++
			i += len(cb.Head)

		default:
			_, size := utf8.DecodeRuneInString(text[i:])
			i += size
		}
	}
	return -1
}
