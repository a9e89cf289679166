package parser

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) in the original text.
type Span struct {
	Start, End int
}

func (s Span) Len() int {
	return s.End - s.Start
}

// Contains tells whether byte offset pos is inside the span.
func (s Span) Contains(pos int) bool {
	return pos >= s.Start && pos < s.End
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// StringView is a matched part of the text with its absolute byte offset.
type StringView struct {
	start int
	text  string
}

// NewView creates a view of text starting at byte offset start.
func NewView(start int, text string) StringView {
	return StringView{start, text}
}

// Start returns byte offset of the view.
func (v StringView) Start() int {
	return v.start
}

// End returns byte offset just past the view.
func (v StringView) End() int {
	return v.start + len(v.text)
}

func (v StringView) Span() Span {
	return Span{v.start, v.start + len(v.text)}
}

func (v StringView) Len() int {
	return len(v.text)
}

func (v StringView) IsEmpty() bool {
	return v.text == ""
}

// String returns viewed text.
func (v StringView) String() string {
	return v.text
}

// SurroundPair is a delimited construct: opening delimiter, content, and closing delimiter.
type SurroundPair struct {
	Head, Body, Tail StringView
}

// Span returns byte range covering all three parts.
func (p SurroundPair) Span() Span {
	return Span{p.Head.start, p.Tail.End()}
}
