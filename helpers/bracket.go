// Package helpers contains ready-made parsers for common literal shapes:
// bracketed lists, quoted strings, escapes, comments, colors, and numbers.
package helpers

import (
	"github.com/ava12/pegx/parser"
)

// DanglingPolicy tells whether a delimiter may follow the last list element.
type DanglingPolicy int

const (
	DanglingOptional DanglingPolicy = iota
	DanglingRequired
	DanglingForbidden
)

// BracketPattern describes a delimited list like [a, b, c] or <| a; b |>.
type BracketPattern struct {
	Open, Close, Delimiter string
	Dangling               DanglingPolicy

	// OneTailing requires the delimiter after a single element, e.g. one-tuple (x,).
	OneTailing bool
}

// NewBracket returns comma-delimited bracket pattern.
func NewBracket(open, close string) BracketPattern {
	return BracketPattern{Open: open, Close: close, Delimiter: ","}
}

// BracketPair is a parsed bracketed list.
type BracketPair[T any] struct {
	Lhs, Rhs parser.StringView
	Body     []T
}

// Span returns byte range from the opening to the closing bracket.
func (bp BracketPair[T]) Span() parser.Span {
	return parser.Span{Start: bp.Lhs.Start(), End: bp.Rhs.End()}
}

// ConsumeBracket parses either an empty list or one or more terms:
//
//	open ~ close
//	open ~ term (~ delimiter ~ term)* (~ delimiter)? ~ close
//
// where ~ is ignore (may be nil).
func ConsumeBracket[T, I any](b BracketPattern, s parser.State, ignore parser.Parser[I], term parser.Parser[T]) parser.Result[BracketPair[T]] {
	return parser.BeginChoice[BracketPair[T]](s).
		Choose(func(s parser.State) parser.Result[BracketPair[T]] {
			return consumeEmpty[T](b, s, ignore)
		}).
		Choose(func(s parser.State) parser.Result[BracketPair[T]] {
			return consumeMany(b, s, ignore, term)
		}).
		EndChoice()
}

// Bracket returns parser form of ConsumeBracket.
func Bracket[T, I any](b BracketPattern, ignore parser.Parser[I], term parser.Parser[T]) parser.Parser[BracketPair[T]] {
	return func(s parser.State) parser.Result[BracketPair[T]] {
		return ConsumeBracket(b, s, ignore, term)
	}
}

func skip[I any](s parser.State, ignore parser.Parser[I]) parser.State {
	if ignore == nil {
		return s
	}
	return parser.Skip(s, ignore)
}

func consumeEmpty[T, I any](b BracketPattern, s parser.State, ignore parser.Parser[I]) parser.Result[BracketPair[T]] {
	r := s.MatchStr(b.Open)
	if r.IsFailure() {
		return parser.Propagate[BracketPair[T]](r)
	}

	lhs := parser.NewView(s.Offset(), r.Value())
	return matchClose(b, skip(r.State(), ignore), lhs, []T{})
}

func matchClose[T any](b BracketPattern, s parser.State, lhs parser.StringView, body []T) parser.Result[BracketPair[T]] {
	r := s.MatchStr(b.Close)
	if r.IsFailure() {
		return parser.Propagate[BracketPair[T]](r)
	}

	return parser.Continue(r.State(), BracketPair[T]{
		Lhs:  lhs,
		Rhs:  parser.NewView(s.Offset(), r.Value()),
		Body: body,
	})
}

func consumeMany[T, I any](b BracketPattern, s parser.State, ignore parser.Parser[I], term parser.Parser[T]) parser.Result[BracketPair[T]] {
	r := s.MatchStr(b.Open)
	if r.IsFailure() {
		return parser.Propagate[BracketPair[T]](r)
	}
	lhs := parser.NewView(s.Offset(), r.Value())

	first := term(skip(r.State(), ignore))
	if first.IsFailure() {
		return parser.Propagate[BracketPair[T]](first)
	}

	delimiterTerm := func(s parser.State) parser.Result[T] {
		d := skip(s, ignore).MatchStr(b.Delimiter)
		if d.IsFailure() {
			return parser.Propagate[T](d)
		}
		return term(skip(d.State(), ignore))
	}
	rest := parser.MatchRepeats(first.State(), delimiterTerm)
	terms := append([]T{first.Value()}, rest.Value()...)
	state := rest.State()

	dangling := b.Dangling
	if b.OneTailing && len(terms) == 1 {
		dangling = DanglingRequired
	}

	switch dangling {
	case DanglingRequired:
		d := skip(state, ignore).MatchStr(b.Delimiter)
		if d.IsFailure() {
			return parser.Propagate[BracketPair[T]](d)
		}
		state = d.State()
	case DanglingOptional:
		if d := skip(state, ignore).MatchStr(b.Delimiter); d.IsSuccess() {
			state = d.State()
		}
	}

	return matchClose(b, skip(state, ignore), lhs, terms)
}
