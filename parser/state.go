/*
Package parser defines the parse state, parse result, stop reasons, and combinators
used to write PEG parsers as plain Go functions.

A rule is a function of type Parser[T]: it receives an immutable State and returns
either Continue(next, value) or Stop(reason). States never change: every successful
match returns a new state advanced past the consumed bytes, so backtracking is simply
calling another parser with the same state.

All offsets are byte offsets into the original text.
*/
package parser

import (
	"fmt"
	"unicode/utf8"
)

// State is an immutable cursor over the parsed text.
// Copying a state is cheap: the text is shared, never copied.
type State struct {
	text     string
	offset   int
	reason   StopReason
	observer Observer
}

// New creates initial state at offset 0.
func New(text string) State {
	return State{text: text}
}

// Text returns the whole original text.
func (s State) Text() string {
	return s.text
}

// Rest returns the remaining (not yet consumed) text.
func (s State) Rest() string {
	return s.text[s.offset:]
}

// Offset returns byte offset of the first remaining byte in the original text.
func (s State) Offset() int {
	return s.offset
}

// EndOffset returns byte offset of the end of the original text.
func (s State) EndOffset() int {
	return len(s.text)
}

// Len returns number of remaining bytes.
func (s State) Len() int {
	return len(s.text) - s.offset
}

// IsEmpty tells whether all the text is consumed.
func (s State) IsEmpty() bool {
	return s.offset >= len(s.text)
}

// Reason returns the last recorded stop reason, Uninitialized if none.
func (s State) Reason() StopReason {
	return s.reason
}

// WithReason returns a copy of the state with recorded stop reason.
func (s State) WithReason(r StopReason) State {
	s.reason = r
	return s
}

// Observer returns rule event observer or nil.
func (s State) Observer() Observer {
	return s.observer
}

// WithObserver returns a copy of the state reporting rule events to o; o may be nil.
// All the states derived from the result share the same observer.
func (s State) WithObserver(o Observer) State {
	s.observer = o
	return s
}

// Advance returns the state moved n bytes forward.
// Panics if n exceeds remaining length or the new offset splits a UTF-8 sequence.
func (s State) Advance(n int) State {
	rest := s.Rest()
	if n < 0 || n > len(rest) {
		panic(fmt.Sprintf("parser: cannot advance by %d at offset %d, %d bytes remaining", n, s.offset, len(rest)))
	}
	if splitsRune(rest, n) {
		panic(fmt.Sprintf("parser: offset %d is not on a character boundary", s.offset+n))
	}

	s.offset += n
	return s
}

// AdvanceView returns the state moved n bytes forward and the view of consumed bytes.
func (s State) AdvanceView(n int) (State, StringView) {
	next := s.Advance(n)
	return next, StringView{s.offset, s.text[s.offset:next.offset]}
}

// Peek returns the next character and its encoded length; size is 0 at the end of text.
// Invalid UTF-8 byte is returned as utf8.RuneError with size 1.
func (s State) Peek() (r rune, size int) {
	return utf8.DecodeRuneInString(s.Rest())
}

// CharAt returns n-th (0-based) remaining character and its byte offset in the original text.
// ok is false if there are not enough characters.
func (s State) CharAt(n int) (r rune, offset int, ok bool) {
	offset = s.offset
	for {
		var size int
		r, size = utf8.DecodeRuneInString(s.text[offset:])
		if size == 0 {
			return utf8.RuneError, offset, false
		}

		if n == 0 {
			return r, offset, true
		}

		n--
		offset += size
	}
}

// Slice returns the text between two absolute offsets as a view.
func (s State) Slice(start, end int) StringView {
	return StringView{start, s.text[start:end]}
}

func (s State) String() string {
	rest := s.Rest()
	if len(rest) > 32 {
		rest = rest[:32] + "..."
	}
	return fmt.Sprintf("State(offset=%d, rest=%q)", s.offset, rest)
}

// splitsRune tells whether rest[:n] ends in the middle of a valid UTF-8 sequence.
// Bytes of invalid sequences are treated as separate characters.
func splitsRune(rest string, n int) bool {
	if n <= 0 || n >= len(rest) || utf8.RuneStart(rest[n]) {
		return false
	}

	for i := n - 1; i >= 0 && i > n-utf8.UTFMax; i-- {
		if utf8.RuneStart(rest[i]) {
			r, size := utf8.DecodeRuneInString(rest[i:])
			if r == utf8.RuneError && size == 1 {
				return false
			}
			return i+size > n
		}
	}
	return false
}
